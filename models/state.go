package models

// TournamentState is the full engine state of one running tournament. It is
// an explicitly-typed snapshot structure: everything the engine knows lives
// in exported fields so a JSON round-trip is lossless. There is no ambient
// global state; callers own the handle and pass it to each engine operation.
type TournamentState struct {
	// Players keeps registration order; it is the roster.
	Players []string `json:"players"`
	// Records holds exactly Round entries per registered player at all
	// times. Players added mid-tournament are backfilled with NotPlayed.
	Records map[string][]RoundRecord `json:"records"`
	// Round counts committed rounds (0-indexed internally, so also the
	// index of the next round to commit).
	Round int `json:"round"`
	// Draft is the uncommitted pairing for the upcoming round, if any.
	Draft *RoundDraft `json:"draft,omitempty"`
	// History is the accumulated partner and matchup history.
	History *PairHistory `json:"history"`
	// Log keeps one human-readable entry per committed round.
	Log []RoundLogEntry `json:"log,omitempty"`
}

func NewTournamentState() *TournamentState {
	return &TournamentState{
		Players: []string{},
		Records: make(map[string][]RoundRecord),
		History: NewPairHistory(),
	}
}

// Clone returns a deep copy of the state. Read endpoints hand clones to
// callers so that marshalling never overlaps with a mutation on the live
// state.
func (s *TournamentState) Clone() *TournamentState {
	clone := &TournamentState{
		Players: append([]string(nil), s.Players...),
		Records: make(map[string][]RoundRecord, len(s.Records)),
		Round:   s.Round,
		History: s.History.Clone(),
	}
	for name, recs := range s.Records {
		clone.Records[name] = append([]RoundRecord(nil), recs...)
	}
	if s.Draft != nil {
		draft := RoundDraft{
			Round:   s.Draft.Round,
			Matches: append([]Match(nil), s.Draft.Matches...),
			Byes:    append([]string(nil), s.Draft.Byes...),
		}
		clone.Draft = &draft
	}
	if s.Log != nil {
		clone.Log = make([]RoundLogEntry, len(s.Log))
		for i, entry := range s.Log {
			clone.Log[i] = RoundLogEntry{
				Round: entry.Round,
				Lines: append([]string(nil), entry.Lines...),
			}
		}
	}
	return clone
}

// HasPlayer reports whether the name is currently registered.
func (s *TournamentState) HasPlayer(name string) bool {
	for _, p := range s.Players {
		if p == name {
			return true
		}
	}
	return false
}

// GamesPlayed counts the rounds the player actually played, ignoring
// NotPlayed sentinels.
func (s *TournamentState) GamesPlayed(name string) int {
	played := 0
	for _, rec := range s.Records[name] {
		if rec.Played {
			played++
		}
	}
	return played
}

// TotalPoints sums the points of all played rounds.
func (s *TournamentState) TotalPoints(name string) int {
	total := 0
	for _, rec := range s.Records[name] {
		if rec.Played {
			total += rec.Points
		}
	}
	return total
}

// TotalDifferential sums the signed differentials of all played rounds.
func (s *TournamentState) TotalDifferential(name string) int {
	total := 0
	for _, rec := range s.Records[name] {
		if rec.Played {
			total += rec.Differential
		}
	}
	return total
}
