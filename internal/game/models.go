package game

import (
	"time"

	"gorm.io/gorm"
)

// DamageType selects which stat scales an ability.
type DamageType string

const (
	Physical DamageType = "physical"
	Magical  DamageType = "magical"
)

// Stats are the four base attributes of a combatant. There is no defense
// stat; mitigation only comes from statuses.
type Stats struct {
	HP  int `json:"HP" yaml:"HP"`
	STR int `json:"STR" yaml:"STR"`
	MAG int `json:"MAG" yaml:"MAG"`
	WIS int `json:"WIS" yaml:"WIS"`
}

// Passive is descriptive text only. The engine never reads it.
type Passive struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// EffectBoost describes how a critical effect roll augments an effect.
// A nil boost means the default of one extra round.
type EffectBoost struct {
	Duration int `json:"duration" yaml:"duration"`
	Power    int `json:"power" yaml:"power"`
}

// Effect is used both as the template declared by an ability and as the
// live status instance stored on a combatant.
type Effect struct {
	Key      string       `json:"key" yaml:"key"`
	Duration int          `json:"duration" yaml:"duration"`
	Power    int          `json:"power" yaml:"power"`
	Note     string       `json:"note,omitempty" yaml:"note,omitempty"`
	Boost    *EffectBoost `json:"boost,omitempty" yaml:"boost,omitempty"`
}

// BonusKind tags one of the supported ability damage bonus generators.
type BonusKind string

const (
	BonusFlat        BonusKind = "flat"
	BonusStat        BonusKind = "stat"
	BonusConditional BonusKind = "conditional"
)

// Bonus is extra base damage evaluated when the ability is cast.
//
//   - flat: Amount
//   - stat: the named stat (STR, MAG, WIS or HP) of the caster * Percent / 100
//   - conditional: Amount when When holds, e.g. "target_has_status:burn",
//     "attacker_hp_below:50" or "target_hp_below:60"
type Bonus struct {
	Kind    BonusKind `json:"kind" yaml:"kind"`
	Amount  int       `json:"amount,omitempty" yaml:"amount,omitempty"`
	Stat    string    `json:"stat,omitempty" yaml:"stat,omitempty"`
	Percent int       `json:"percent,omitempty" yaml:"percent,omitempty"`
	When    string    `json:"when,omitempty" yaml:"when,omitempty"`
}

type Ability struct {
	ID      string     `json:"id" yaml:"id"`
	Name    string     `json:"name" yaml:"name"`
	Power   int        `json:"power" yaml:"power"`
	Type    DamageType `json:"type" yaml:"type"`
	Text    string     `json:"text" yaml:"text"`
	Effects []Effect   `json:"effects,omitempty" yaml:"effects,omitempty"`
	Bonus   *Bonus     `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}

// Combatant is one fighter. Identity, abilities and passive never change
// after the battle starts; Stats.HP, Statuses and LastCast do.
type Combatant struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CanFly    bool      `json:"canFly" yaml:"canFly"`
	Stats     Stats     `json:"stats" yaml:"stats"`
	Statuses  []Effect  `json:"statuses" yaml:"statuses"`
	Abilities []Ability `json:"abilities" yaml:"abilities"`
	Passive   Passive   `json:"passive" yaml:"passive"`
	LastCast  string    `json:"lastCast" yaml:"lastCast"`
}

// Defeated reports whether the combatant is at 0 HP.
func (c *Combatant) Defeated() bool { return c.Stats.HP <= 0 }

// Ability returns the ability with the given id, or nil.
func (c *Combatant) Ability(id string) *Ability {
	for i := range c.Abilities {
		if c.Abilities[i].ID == id {
			return &c.Abilities[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the combatant.
func (c Combatant) Clone() Combatant {
	out := c
	out.Statuses = cloneEffects(c.Statuses)
	if c.Abilities != nil {
		out.Abilities = make([]Ability, len(c.Abilities))
		for i, a := range c.Abilities {
			a.Effects = cloneEffects(a.Effects)
			if a.Bonus != nil {
				b := *a.Bonus
				a.Bonus = &b
			}
			out.Abilities[i] = a
		}
	}
	return out
}

func cloneEffects(in []Effect) []Effect {
	if in == nil {
		return nil
	}
	out := make([]Effect, len(in))
	for i, e := range in {
		if e.Boost != nil {
			b := *e.Boost
			e.Boost = &b
		}
		out[i] = e
	}
	return out
}

// Team is an ordered roster. Order has no gameplay meaning.
type Team []Combatant

// TeamSize is the number of combatants each side fields.
const TeamSize = 4

// Phase is the battle lifecycle state.
type Phase string

const (
	PhaseDraft  Phase = "draft"
	PhaseCombat Phase = "combat"
	PhaseOver   Phase = "over"
)

// InitiativeEntry is one slot in a round's turn order.
type InitiativeEntry struct {
	CombatantID string `json:"cid"`
	Roll        int    `json:"roll"`
}

// Winner values stored on a finished battle.
const (
	WinnerNone  = ""
	WinnerTeamA = "A"
	WinnerTeamB = "B"
	WinnerDraw  = "draw"
)

// Battle is the full simulation state. It is owned by exactly one caller
// at a time and only changed through the engine.
type Battle struct {
	Phase     Phase             `json:"phase"`
	Round     int               `json:"round"`
	TurnIndex int               `json:"turn_index"`
	Order     []InitiativeEntry `json:"order"`
	Teams     [2]Team           `json:"teams"`
	Hazards   map[string]bool   `json:"hazards"`
	Log       []string          `json:"log"`
	Winner    string            `json:"winner"`
}

// NewBattle builds a draft battle from deep copies of both rosters.
func NewBattle(teamA, teamB []Combatant) *Battle {
	b := &Battle{Phase: PhaseDraft, Hazards: map[string]bool{}}
	for i, src := range [2][]Combatant{teamA, teamB} {
		t := make(Team, 0, len(src))
		for _, c := range src {
			t = append(t, c.Clone())
		}
		b.Teams[i] = t
	}
	return b
}

// Clone returns a deep copy of the battle.
func (b *Battle) Clone() *Battle {
	out := *b
	out.Order = append([]InitiativeEntry(nil), b.Order...)
	out.Log = append([]string(nil), b.Log...)
	out.Hazards = make(map[string]bool, len(b.Hazards))
	for k, v := range b.Hazards {
		out.Hazards[k] = v
	}
	for i := range b.Teams {
		if b.Teams[i] == nil {
			continue
		}
		out.Teams[i] = make(Team, len(b.Teams[i]))
		for j := range b.Teams[i] {
			out.Teams[i][j] = b.Teams[i][j].Clone()
		}
	}
	return &out
}

// Find returns the combatant with the given id from either team.
func (b *Battle) Find(id string) *Combatant {
	for i := range b.Teams {
		for j := range b.Teams[i] {
			if b.Teams[i][j].ID == id {
				return &b.Teams[i][j]
			}
		}
	}
	return nil
}

// TeamOf returns 0 or 1 for the owning team, or -1 when id is unknown.
func (b *Battle) TeamOf(id string) int {
	for i := range b.Teams {
		for j := range b.Teams[i] {
			if b.Teams[i][j].ID == id {
				return i
			}
		}
	}
	return -1
}

// Living returns pointers to every combatant with HP above zero, team A
// first, each team in roster order.
func (b *Battle) Living() []*Combatant {
	out := make([]*Combatant, 0, len(b.Teams[0])+len(b.Teams[1]))
	for i := range b.Teams {
		for j := range b.Teams[i] {
			if !b.Teams[i][j].Defeated() {
				out = append(out, &b.Teams[i][j])
			}
		}
	}
	return out
}

// TeamHP sums a team's HP, counting each combatant as at least zero.
func (b *Battle) TeamHP(team int) int {
	sum := 0
	for _, c := range b.Teams[team] {
		if c.Stats.HP > 0 {
			sum += c.Stats.HP
		}
	}
	return sum
}

// Current returns the combatant holding the turn cursor, or nil.
func (b *Battle) Current() *Combatant {
	if b.Phase != PhaseCombat || b.TurnIndex < 0 || b.TurnIndex >= len(b.Order) {
		return nil
	}
	return b.Find(b.Order[b.TurnIndex].CombatantID)
}

// TeamName is the display label used in logs ("A" or "B").
func TeamName(team int) string {
	if team == 0 {
		return WinnerTeamA
	}
	return WinnerTeamB
}

// BattleRecord persists one battle. The simulation state is stored as a
// JSON column; the scalar columns mirror it for queries.
type BattleRecord struct {
	gorm.Model
	Key          string    `json:"key" gorm:"column:battle_key;uniqueIndex;size:36"`
	Phase        Phase     `json:"phase" gorm:"index"`
	Round        int       `json:"round"`
	Winner       string    `json:"winner"`
	State        Battle    `json:"state" gorm:"serializer:json"`
	TurnDeadline time.Time `json:"turn_deadline"`
	StatsCounted bool      `json:"-"`
}

// Store battles in a dedicated table.
func (BattleRecord) TableName() string { return "battles" }

// Sync copies scalar fields from State so indexed columns stay current.
func (r *BattleRecord) Sync() {
	r.Phase = r.State.Phase
	r.Round = r.State.Round
	r.Winner = r.State.Winner
}

// CharacterStats stores aggregate results per character id.
type CharacterStats struct {
	gorm.Model
	CharacterID string `json:"character_id" gorm:"uniqueIndex"`
	Name        string `json:"name"`
	Battles     int    `json:"battles"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Knockouts   int    `json:"knockouts"`
}

func (CharacterStats) TableName() string { return "character_stats" }
