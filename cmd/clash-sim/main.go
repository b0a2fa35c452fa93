package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ericogr/clash-of-gods/internal/config"
	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/dice"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/keys"
	"github.com/ericogr/clash-of-gods/internal/logging"
	"github.com/ericogr/clash-of-gods/internal/roster"
)

func main() {
	var rosterPath, cfgPath, teamA, teamB, out string
	var seed int64
	var n, workers int
	var storm, saveLog bool
	flag.StringVar(&rosterPath, "roster", "assets/characters.json", "character file (JSON or YAML)")
	flag.StringVar(&cfgPath, "config", "", "optional server config for special rules and hazards")
	flag.StringVar(&teamA, "a", "", "comma-separated ids for team A (default: first four ids)")
	flag.StringVar(&teamB, "b", "", "comma-separated ids for team B (default: next four ids)")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&workers, "workers", 8, "parallel simulations in batch mode")
	flag.BoolVar(&storm, "storm", false, "start with the thunderstorm active")
	flag.StringVar(&out, "out", "sim.json", "output file (single) or summary file (batch)")
	flag.BoolVar(&saveLog, "log", true, "keep the full battle log when n==1")
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			logging.Fatal("invalid config", err, logging.Fields{"config_path": cfgPath})
		}
		cfg = loaded
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		logging.Fatal("invalid engine configuration", err, nil)
	}

	chars, err := config.LoadRoster(rosterPath)
	if err != nil {
		logging.Fatal("failed to load roster", err, logging.Fields{"roster_path": rosterPath})
	}
	lib, err := roster.New(chars)
	if err != nil {
		logging.Fatal("invalid roster", err, logging.Fields{"roster_path": rosterPath})
	}
	a, b, err := teams(lib, teamA, teamB)
	if err != nil {
		logging.Fatal("invalid teams", err, nil)
	}
	matchup := keys.MatchupKey(a, b)

	if n <= 1 {
		eng := engine.New(dice.New(seed), opts...)
		battle, err := runMatch(eng, lib, a, b, storm, rand.New(rand.NewSource(seed)))
		if battle == nil {
			logging.Fatal("simulation failed", err, logging.Fields{"matchup": matchup})
		}
		if err != nil {
			logging.Error("simulation ended early", err, logging.Fields{"matchup": matchup})
		}
		if !saveLog {
			battle.Log = nil
		}
		writeJSON(out, battle)
		fmt.Printf("Single sim finished. Winner=%q, rounds=%d -> %s\n", battle.Winner, battle.Round, out)
		return
	}

	var st tally
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < max(workers, 1); w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				s := seed + int64(workerID)*7919 + int64(i)
				eng := engine.New(dice.New(s), opts...)
				battle, err := runMatch(eng, lib, a, b, storm, rand.New(rand.NewSource(s)))
				mu.Lock()
				st.add(battle, err)
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	writeJSON(out, st.summary(matchup))
	fmt.Printf("Batch %d done (%s) -> %s\n", n, matchup, filepath.Base(out))
}

// teams parses the -a and -b flags, defaulting to the first eight
// library ids in alphabetical order.
func teams(lib *roster.Library, a, b string) ([]string, []string, error) {
	ids := lib.IDs()
	split := func(s string, from int) ([]string, error) {
		if strings.TrimSpace(s) == "" {
			if len(ids) < from+4 {
				return nil, fmt.Errorf("roster has %d characters, need %d", len(ids), from+4)
			}
			return ids[from : from+4], nil
		}
		var out []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
	ta, err := split(a, 0)
	if err != nil {
		return nil, nil, err
	}
	tb, err := split(b, 4)
	if err != nil {
		return nil, nil, err
	}
	return ta, tb, nil
}

func writeJSON(path string, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logging.Fatal("failed to encode output", err, nil)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		logging.Fatal("failed to write output", err, logging.Fields{constants.LogFieldPath: path})
	}
}
