package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// RoundRecord is one player's outcome for one committed round.
// Played == false marks the sentinel for a bye or a blank match result;
// Points and Differential are meaningful only when Played is true.
type RoundRecord struct {
	Played       bool `json:"played"`
	Points       int  `json:"points"`
	Differential int  `json:"differential"`
}

// NotPlayed is the sentinel record for byes and blank results.
func NotPlayed() RoundRecord {
	return RoundRecord{}
}

// Team is an unordered pair of partners.
type Team [2]string

// Key returns an order-independent identifier for the team.
func (t Team) Key() string {
	a, b := t[0], t[1]
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func (t Team) Contains(name string) bool {
	return t[0] == name || t[1] == name
}

// Match is one drafted pairing of two teams. Repeat is set by the draw
// generator when the same team-vs-team matchup has been played before;
// it is informational only and never blocks a draft.
type Match struct {
	TeamA  Team `json:"team_a"`
	TeamB  Team `json:"team_b"`
	Repeat bool `json:"repeat,omitempty"`
}

// Key returns an order-independent identifier for the matchup.
func (m Match) Key() string {
	keys := []string{m.TeamA.Key(), m.TeamB.Key()}
	sort.Strings(keys)
	return strings.Join(keys, " vs ")
}

// Players returns all four participants of the match.
func (m Match) Players() []string {
	return []string{m.TeamA[0], m.TeamA[1], m.TeamB[0], m.TeamB[1]}
}

// RoundDraft is the proposed, not-yet-committed pairing for the upcoming
// round. It is superseded by the next draw or converted into round records
// on commit.
type RoundDraft struct {
	Round   int      `json:"round"`
	Matches []Match  `json:"matches"`
	Byes    []string `json:"byes"`
}

// RoundLogEntry keeps a human-readable summary of one committed round.
type RoundLogEntry struct {
	Round int      `json:"round"`
	Lines []string `json:"lines"`
}

// RankingEntry is a derived row of the ranking, recomputed on demand.
type RankingEntry struct {
	Name              string `json:"name"`
	GamesPlayed       int    `json:"games_played"`
	TotalPoints       int    `json:"total_points"`
	TotalDifferential int    `json:"total_differential"`
}

// RoundCell is one per-round value in a ranking table: either a number or
// the "X" sentinel for a round the player did not play.
type RoundCell struct {
	Played bool
	Value  int
}

const unplayedCell = `"X"`

func (c RoundCell) MarshalJSON() ([]byte, error) {
	if !c.Played {
		return []byte(unplayedCell), nil
	}
	return json.Marshal(c.Value)
}

func (c *RoundCell) UnmarshalJSON(data []byte) error {
	if string(data) == unplayedCell {
		*c = RoundCell{}
		return nil
	}
	c.Played = true
	return json.Unmarshal(data, &c.Value)
}

// RankingRow is one display row of a ranking table.
type RankingRow struct {
	Position    int         `json:"position"`
	Name        string      `json:"name"`
	GamesPlayed int         `json:"games_played"`
	Cells       []RoundCell `json:"cells"`
	Total       int         `json:"total"`
	TopEight    bool        `json:"top_eight,omitempty"`
}

// SemifinalPairings holds the two cross-seeded semifinal matches.
type SemifinalPairings struct {
	First  Match `json:"first"`
	Second Match `json:"second"`
}
