// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical reads. Polling clients tend to request the same
// battle at the same moment; only one load hits the database per key
// while the other callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// BattleGroup deduplicates battle loads keyed by "battle:<key>".
var BattleGroup singleflight.Group

// LeaderboardGroup deduplicates leaderboard queries keyed by "top:<limit>".
var LeaderboardGroup singleflight.Group
