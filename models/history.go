package models

// PairHistory accumulates which partners and which team-vs-team matchups
// have been seen in committed rounds. It is a soft signal used for
// highlighting repeats; the draw generator never rejects a pairing based
// on it.
type PairHistory struct {
	Partners map[string]bool `json:"partners"`
	Matchups map[string]bool `json:"matchups"`
}

func NewPairHistory() *PairHistory {
	return &PairHistory{
		Partners: make(map[string]bool),
		Matchups: make(map[string]bool),
	}
}

// RecordMatch marks both teams as past partners and the matchup as seen.
func (h *PairHistory) RecordMatch(m Match) {
	if h.Partners == nil {
		h.Partners = make(map[string]bool)
	}
	if h.Matchups == nil {
		h.Matchups = make(map[string]bool)
	}
	h.Partners[m.TeamA.Key()] = true
	h.Partners[m.TeamB.Key()] = true
	h.Matchups[m.Key()] = true
}

// Clone returns an independent copy of the history.
func (h *PairHistory) Clone() *PairHistory {
	if h == nil {
		return nil
	}
	clone := &PairHistory{
		Partners: make(map[string]bool, len(h.Partners)),
		Matchups: make(map[string]bool, len(h.Matchups)),
	}
	for k := range h.Partners {
		clone.Partners[k] = true
	}
	for k := range h.Matchups {
		clone.Matchups[k] = true
	}
	return clone
}

// WerePartners reports whether the two players have already formed a team.
func (h *PairHistory) WerePartners(a, b string) bool {
	if h == nil || h.Partners == nil {
		return false
	}
	return h.Partners[Team{a, b}.Key()]
}

// WasRepeat reports whether the exact team-vs-team matchup has been played.
func (h *PairHistory) WasRepeat(teamA, teamB Team) bool {
	if h == nil || h.Matchups == nil {
		return false
	}
	return h.Matchups[Match{TeamA: teamA, TeamB: teamB}.Key()]
}
