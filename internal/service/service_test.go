package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ericogr/clash-of-gods/internal/dice"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/roster"
	"github.com/ericogr/clash-of-gods/internal/storage"
)

type mockRepo struct {
	battles     map[string]*game.BattleRecord
	updates     int
	statsCalled int
}

func newMockRepo() *mockRepo { return &mockRepo{battles: map[string]*game.BattleRecord{}} }

func copyRecord(r *game.BattleRecord) *game.BattleRecord {
	out := *r
	out.State = *r.State.Clone()
	return &out
}

func (m *mockRepo) CreateBattle(r *game.BattleRecord) error {
	m.battles[r.Key] = copyRecord(r)
	return nil
}

func (m *mockRepo) GetBattleByKey(key string) (*game.BattleRecord, error) {
	r, ok := m.battles[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyRecord(r), nil
}

func (m *mockRepo) UpdateBattle(r *game.BattleRecord) error {
	m.updates++
	m.battles[r.Key] = copyRecord(r)
	return nil
}

func (m *mockRepo) UpdateStatsOnBattleEnd(r *game.BattleRecord) error {
	m.statsCalled++
	return nil
}

func character(id string, hp, str int) game.Combatant {
	return game.Combatant{ID: id, Name: id, Stats: game.Stats{HP: hp, STR: str},
		Abilities: []game.Ability{{ID: "hit", Name: "Hit", Power: 10, Type: game.Physical}}}
}

func library(t *testing.T) *roster.Library {
	t.Helper()
	var chars []game.Combatant
	for _, id := range []string{"A1", "A2", "A3", "A4", "B1", "B2", "B3", "B4"} {
		chars = append(chars, character(id, 100, 10))
	}
	lib, err := roster.New(chars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return lib
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

// duel stores a 1v1 battle already in combat with A1 to act.
func duel(m *mockRepo, key string, bHP int) {
	b := game.NewBattle([]game.Combatant{character("A1", 100, 50)}, []game.Combatant{character("B1", bHP, 0)})
	b.Phase = game.PhaseCombat
	b.Round = 1
	b.Order = []game.InitiativeEntry{{CombatantID: "A1", Roll: 12}, {CombatantID: "B1", Roll: 3}}
	m.battles[key] = &game.BattleRecord{Key: key, State: *b}
}

func TestStartBattle_PersistsStartedBattle(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	freezeClock(t, at)
	repo := newMockRepo()
	eng := engine.New(dice.Script(1, 2, 3, 4, 5, 6, 7, 8))
	req := StartRequest{TeamA: []string{"A1", "A2", "A3", "A4"}, TeamB: []string{"B1", "B2", "B3", "B4"}, Hazards: []string{engine.HazardThunderstorm}}

	rec, err := StartBattle(repo, eng, library(t), req, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Key == "" || repo.battles[rec.Key] == nil {
		t.Fatalf("expected the battle to be stored under a key")
	}
	if rec.State.Phase != game.PhaseCombat || !rec.State.Hazards[engine.HazardThunderstorm] {
		t.Fatalf("unexpected state %+v", rec.State)
	}
	if !rec.TurnDeadline.Equal(at.Add(time.Minute)) {
		t.Fatalf("expected deadline one minute out, got %v", rec.TurnDeadline)
	}
	if rec.State.Log[0] != "thunderstorm activated." {
		t.Fatalf("expected hazard line first, got %q", rec.State.Log)
	}
	if rec.State.Current().ID != "B4" {
		t.Fatalf("expected B4 to act first, got %s", rec.State.Current().ID)
	}
}

func TestStartBattle_RepeatedHazardStaysOn(t *testing.T) {
	repo := newMockRepo()
	eng := engine.New(dice.Script(1, 2, 3, 4, 5, 6, 7, 8))
	req := StartRequest{
		TeamA:   []string{"A1", "A2", "A3", "A4"},
		TeamB:   []string{"B1", "B2", "B3", "B4"},
		Hazards: []string{engine.HazardThunderstorm, " thunderstorm "},
	}

	rec, err := StartBattle(repo, eng, library(t), req, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.State.Hazards[engine.HazardThunderstorm] {
		t.Fatalf("expected thunderstorm to stay active, got %v", rec.State.Hazards)
	}
	for _, line := range rec.State.Log {
		if line == "thunderstorm deactivated." {
			t.Fatalf("hazard was toggled off: %q", rec.State.Log)
		}
	}
}

func TestStartBattle_RejectsBadDrafts(t *testing.T) {
	repo := newMockRepo()
	eng := engine.New(dice.New(1))
	lib := library(t)
	cases := []struct {
		req  StartRequest
		want error
	}{
		{StartRequest{TeamA: []string{"A1", "A2", "A3", "A4"}, TeamB: []string{"B1", "B2", "B3", "ZZ"}}, roster.ErrUnknownCharacter},
		{StartRequest{TeamA: []string{"A1", "A2", "A3", "A4"}, TeamB: []string{"B1", "B2", "B3", "A1"}}, roster.ErrDuplicateCharacter},
		{StartRequest{TeamA: []string{"A1", "A2", "A3"}, TeamB: []string{"B1", "B2", "B3", "B4"}}, engine.ErrTeamSize},
		{StartRequest{TeamA: []string{"A1", "A2", "A3", "A4"}, TeamB: []string{"B1", "B2", "B3", "B4"}, Hazards: []string{"flood"}}, engine.ErrUnknownHazard},
	}
	for _, tc := range cases {
		if _, err := StartBattle(repo, eng, lib, tc.req, time.Minute); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v, got %v", tc.want, err)
		}
	}
	if len(repo.battles) != 0 {
		t.Fatalf("rejected drafts must not be stored")
	}
}

func TestSubmitAction_ResolvesAndRefreshesDeadline(t *testing.T) {
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	freezeClock(t, at)
	repo := newMockRepo()
	duel(repo, "k", 500)

	rec, rep, err := SubmitAction(repo, engine.New(dice.Script(16)), "k", engine.Action{AttackerID: "A1", AbilityID: "hit", TargetID: "B1"}, 30*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Lines) != 1 || rep.Over {
		t.Fatalf("unexpected report %+v", rep)
	}
	if hp := repo.battles["k"].State.Find("B1").Stats.HP; hp != 440 {
		t.Fatalf("expected stored HP 440, got %d", hp)
	}
	if !rec.TurnDeadline.Equal(at.Add(30 * time.Second)) {
		t.Fatalf("deadline not refreshed: %v", rec.TurnDeadline)
	}
	if repo.statsCalled != 0 {
		t.Fatalf("stats must wait for the end of the battle")
	}
}

func TestSubmitAction_FinishCountsStatsOnce(t *testing.T) {
	repo := newMockRepo()
	duel(repo, "k", 10)
	eng := engine.New(dice.Script(16))
	act := engine.Action{AttackerID: "A1", AbilityID: "hit", TargetID: "B1"}

	rec, rep, err := SubmitAction(repo, eng, "k", act, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.Over || rec.State.Winner != game.WinnerTeamA {
		t.Fatalf("expected team A to win, got %+v", rep)
	}
	if repo.statsCalled != 1 || !repo.battles["k"].StatsCounted {
		t.Fatalf("expected stats counted once, calls=%d", repo.statsCalled)
	}
	if !rec.TurnDeadline.IsZero() {
		t.Fatalf("finished battles carry no deadline")
	}

	if _, _, err := SubmitAction(repo, eng, "k", act, time.Minute); !errors.Is(err, engine.ErrBattleOver) {
		t.Fatalf("expected ErrBattleOver, got %v", err)
	}
	if repo.statsCalled != 1 {
		t.Fatalf("stats counted twice")
	}
	if _, held := battleLocks.Load("k"); held {
		t.Fatalf("finished battles must not keep a lock entry")
	}
}

func TestSubmitAction_RejectedLeavesStoreUntouched(t *testing.T) {
	repo := newMockRepo()
	duel(repo, "k", 100)
	_, _, err := SubmitAction(repo, engine.New(dice.Script(20)), "k", engine.Action{AttackerID: "B1", AbilityID: "hit", TargetID: "A1"}, time.Minute)
	if !errors.Is(err, engine.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("rejected actions must not be saved")
	}
	if _, _, err := SubmitAction(repo, engine.New(dice.New(1)), "missing", engine.Action{}, time.Minute); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestToggleHazard_KeepsDeadline(t *testing.T) {
	repo := newMockRepo()
	duel(repo, "k", 100)
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.battles["k"].TurnDeadline = fixed

	rec, rep, err := ToggleHazard(repo, engine.New(dice.New(1)), "k", engine.HazardThunderstorm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Lines[0] != "thunderstorm activated." || !rec.State.Hazards[engine.HazardThunderstorm] {
		t.Fatalf("hazard not toggled: %+v", rep)
	}
	if !rec.TurnDeadline.Equal(fixed) {
		t.Fatalf("toggling must not move the turn deadline")
	}
}

func TestHandleTimedOutBattle(t *testing.T) {
	at := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	freezeClock(t, at)
	repo := newMockRepo()
	duel(repo, "late", 100)
	repo.battles["late"].TurnDeadline = at.Add(-time.Second)
	duel(repo, "early", 100)
	repo.battles["early"].TurnDeadline = at.Add(time.Minute)
	eng := engine.New(dice.New(1))

	rep, err := HandleTimedOutBattle(repo, eng, "late", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Lines[0] != "A1 does nothing." {
		t.Fatalf("expected an auto-pass, got %q", rep.Lines)
	}
	stored := repo.battles["late"]
	if stored.State.Current().ID != "B1" || !stored.TurnDeadline.Equal(at.Add(time.Minute)) {
		t.Fatalf("expected B1 to hold the turn with a fresh deadline")
	}

	if _, err := HandleTimedOutBattle(repo, eng, "early", time.Minute); !errors.Is(err, ErrTurnNotExpired) {
		t.Fatalf("expected ErrTurnNotExpired, got %v", err)
	}

	repo.battles["late"].State.Phase = game.PhaseOver
	if rep, err := HandleTimedOutBattle(repo, eng, "late", time.Minute); err != nil || rep != nil {
		t.Fatalf("finished battles are skipped, got %v %v", rep, err)
	}
}
