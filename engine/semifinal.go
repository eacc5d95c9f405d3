package engine

import (
	"github.com/fastfour/schleifchen-system/models"
)

// SeedSemifinals builds the two cross-seeded semifinal matches from the
// top eight ranking positions. In 1-indexed terms: 1+5 vs 4+8 and
// 2+6 vs 3+7. The seeding is deterministic and recomputed fresh from the
// ranking it is given; it is never cached against later rank changes.
func SeedSemifinals(ranking []models.RankingEntry) (*models.SemifinalPairings, error) {
	if len(ranking) < 8 {
		return nil, ErrInsufficientPlayersForSemifinal
	}

	top := make([]string, 8)
	for i := 0; i < 8; i++ {
		top[i] = ranking[i].Name
	}

	return &models.SemifinalPairings{
		First: models.Match{
			TeamA: models.Team{top[0], top[4]},
			TeamB: models.Team{top[3], top[7]},
		},
		Second: models.Match{
			TeamA: models.Team{top[1], top[5]},
			TeamB: models.Team{top[2], top[6]},
		},
	}, nil
}
