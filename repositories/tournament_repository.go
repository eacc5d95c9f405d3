package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fastfour/schleifchen-system/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
	ErrSnapshotNotFound       = errors.New("tournament snapshot not found")
)

// TournamentRepository persists tournament identities and their engine
// state snapshots. The snapshot is the JSON form of models.TournamentState,
// written after every successful mutation and loaded on first access.
type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Tournament, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error

	SaveSnapshot(ctx context.Context, exec SQLExecutor, tournamentID int, state *models.TournamentState) error
	LoadSnapshot(ctx context.Context, exec SQLExecutor, tournamentID int) (*models.TournamentState, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournaments (name)
		VALUES ($1)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, tournament.Name).
		Scan(&tournament.ID, &tournament.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrTournamentNameConflict
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, created_at FROM tournaments WHERE id = $1`

	var t models.Tournament
	err := executor.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, created_at FROM tournaments ORDER BY created_at DESC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, &t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	// Snapshot rows cascade via the FK.
	result, err := executor.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result for tournament %d: %w", id, err)
	}
	if affected == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

func (r *postgresTournamentRepository) SaveSnapshot(ctx context.Context, exec SQLExecutor, tournamentID int, state *models.TournamentState) error {
	executor := r.getExecutor(exec)

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for tournament %d: %w", tournamentID, err)
	}

	query := `
		INSERT INTO tournament_snapshots (tournament_id, round, state, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tournament_id)
		DO UPDATE SET round = EXCLUDED.round, state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`

	_, err = executor.ExecContext(ctx, query, tournamentID, state.Round, payload, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) LoadSnapshot(ctx context.Context, exec SQLExecutor, tournamentID int) (*models.TournamentState, error) {
	executor := r.getExecutor(exec)
	query := `SELECT state FROM tournament_snapshots WHERE tournament_id = $1`

	var payload []byte
	err := executor.QueryRowContext(ctx, query, tournamentID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot for tournament %d: %w", tournamentID, err)
	}

	state := models.NewTournamentState()
	if err := json.Unmarshal(payload, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot for tournament %d: %w", tournamentID, err)
	}
	return state, nil
}
