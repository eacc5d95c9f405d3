package engine

import (
	"sort"

	"github.com/fastfour/schleifchen-system/models"
)

// Rank orders all registered players by total points, then by total
// differential, both descending. It is a pure projection over the round
// records; the sort is stable so repeated calls without data changes
// return identical output.
func Rank(state *models.TournamentState) []models.RankingEntry {
	entries := make([]models.RankingEntry, 0, len(state.Players))
	for _, p := range state.Players {
		entries = append(entries, models.RankingEntry{
			Name:              p,
			GamesPlayed:       state.GamesPlayed(p),
			TotalPoints:       state.TotalPoints(p),
			TotalDifferential: state.TotalDifferential(p),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].TotalDifferential > entries[j].TotalDifferential
	})
	return entries
}

// TableKind selects which per-round values a ranking table shows.
type TableKind string

const (
	TablePoints        TableKind = "points"
	TableDifferentials TableKind = "differentials"
)

// BuildRankingTable renders the ranking as display rows with one cell per
// committed round, the "X" sentinel marking rounds a player did not play.
// Rows are ordered by the ranking; the points table flags the top eight
// seeds for the semifinal bracket.
func BuildRankingTable(state *models.TournamentState, kind TableKind) []models.RankingRow {
	ranking := Rank(state)
	rows := make([]models.RankingRow, 0, len(ranking))
	for i, entry := range ranking {
		row := models.RankingRow{
			Position:    i + 1,
			Name:        entry.Name,
			GamesPlayed: entry.GamesPlayed,
			Cells:       make([]models.RoundCell, 0, state.Round),
		}
		for _, rec := range state.Records[entry.Name] {
			if !rec.Played {
				row.Cells = append(row.Cells, models.RoundCell{})
				continue
			}
			value := rec.Points
			if kind == TableDifferentials {
				value = rec.Differential
			}
			row.Cells = append(row.Cells, models.RoundCell{Played: true, Value: value})
			row.Total += value
		}
		if kind == TablePoints {
			row.TopEight = i < 8
		}
		rows = append(rows, row)
	}
	return rows
}
