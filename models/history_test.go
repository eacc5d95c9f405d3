package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamKeyOrderIndependent(t *testing.T) {
	assert.Equal(t, Team{"Anna", "Ben"}.Key(), Team{"Ben", "Anna"}.Key())
	assert.NotEqual(t, Team{"Anna", "Ben"}.Key(), Team{"Anna", "Carla"}.Key())
}

func TestMatchKeyOrderIndependent(t *testing.T) {
	m1 := Match{TeamA: Team{"A", "B"}, TeamB: Team{"C", "D"}}
	m2 := Match{TeamA: Team{"D", "C"}, TeamB: Team{"B", "A"}}
	assert.Equal(t, m1.Key(), m2.Key())
}

func TestPairHistory(t *testing.T) {
	h := NewPairHistory()
	h.RecordMatch(Match{TeamA: Team{"A", "B"}, TeamB: Team{"C", "D"}})

	assert.True(t, h.WerePartners("A", "B"))
	assert.True(t, h.WerePartners("D", "C"))
	assert.False(t, h.WerePartners("A", "C"))

	assert.True(t, h.WasRepeat(Team{"B", "A"}, Team{"D", "C"}))
	assert.False(t, h.WasRepeat(Team{"A", "C"}, Team{"B", "D"}))
}

func TestPairHistoryNilSafe(t *testing.T) {
	var h *PairHistory
	assert.False(t, h.WerePartners("A", "B"))
	assert.False(t, h.WasRepeat(Team{"A", "B"}, Team{"C", "D"}))
}
