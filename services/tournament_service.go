package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fastfour/schleifchen-system/engine"
	"github.com/fastfour/schleifchen-system/models"
	"github.com/fastfour/schleifchen-system/repositories"
	"github.com/fastfour/schleifchen-system/storage"
)

// TournamentService orchestrates the pairing and ranking engine for a set
// of tournaments. Engine state lives in memory, one handle per tournament;
// every successful mutation is snapshotted to the repository and announced
// on the websocket hub. Mutations on one tournament are serialized by the
// handle mutex, preserving the all-or-nothing commit guarantee.
type TournamentService interface {
	Create(ctx context.Context, name string) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Get(ctx context.Context, id int) (*models.Tournament, *models.TournamentState, error)
	Delete(ctx context.Context, id int) error

	LoadRoster(ctx context.Context, id int, rosterText string) ([]string, error)
	AddPlayer(ctx context.Context, id int, name string) error
	RemovePlayer(ctx context.Context, id int, name string) error

	DrawRound(ctx context.Context, id int) (*models.RoundDraft, error)
	CurrentDraft(ctx context.Context, id int) (*models.RoundDraft, error)
	EditDraft(ctx context.Context, id int, matches []models.Match, byes []string) (*models.RoundDraft, error)

	CommitRound(ctx context.Context, id int, scores map[int]string) error
	RoundLog(ctx context.Context, id int) ([]models.RoundLogEntry, error)

	Ranking(ctx context.Context, id int) ([]models.RankingEntry, error)
	RankingTable(ctx context.Context, id int, kind engine.TableKind) ([]models.RankingRow, error)
	Semifinals(ctx context.Context, id int) (*models.SemifinalPairings, error)

	ExportStandings(ctx context.Context, id int) (string, error)
}

type tournamentHandle struct {
	mu    sync.Mutex
	state *models.TournamentState
}

type tournamentService struct {
	repo      repositories.TournamentRepository
	generator engine.RoundDrawGenerator
	uploader  storage.FileUploader
	hub       *engine.Hub
	logger    *slog.Logger

	mu      sync.Mutex
	handles map[int]*tournamentHandle
}

// NewTournamentService wires the engine behind the repository, the draw
// generator, the optional export uploader and the optional websocket hub.
func NewTournamentService(
	repo repositories.TournamentRepository,
	generator engine.RoundDrawGenerator,
	uploader storage.FileUploader,
	hub *engine.Hub,
	logger *slog.Logger,
) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		repo:      repo,
		generator: generator,
		uploader:  uploader,
		hub:       hub,
		logger:    logger,
		handles:   make(map[int]*tournamentHandle),
	}
}

func (s *tournamentService) Create(ctx context.Context, name string) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	tournament := &models.Tournament{Name: name}
	if err := s.repo.Create(ctx, nil, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}
	s.logger.Info("tournament created", slog.Int("id", tournament.ID), slog.String("name", name))
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	return s.repo.List(ctx, nil)
}

func (s *tournamentService) Get(ctx context.Context, id int) (*models.Tournament, *models.TournamentState, error) {
	tournament, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, nil, ErrTournamentNotFound
		}
		return nil, nil, err
	}
	handle, err := s.handle(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()
	// Hand out a copy: the caller marshals it outside the handle lock.
	return tournament, handle.state.Clone(), nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	s.mu.Lock()
	delete(s.handles, id)
	s.mu.Unlock()
	s.logger.Info("tournament deleted", slog.Int("id", id))
	return nil
}

// handle returns the in-memory state handle for a tournament, loading the
// persisted snapshot on first access or starting fresh if none exists.
func (s *tournamentService) handle(ctx context.Context, id int) (*tournamentHandle, error) {
	s.mu.Lock()
	if h, ok := s.handles[id]; ok {
		s.mu.Unlock()
		return h, nil
	}
	s.mu.Unlock()

	if _, err := s.repo.GetByID(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	state, err := s.repo.LoadSnapshot(ctx, nil, id)
	if err != nil {
		if !errors.Is(err, repositories.ErrSnapshotNotFound) {
			return nil, err
		}
		state = models.NewTournamentState()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another caller may have raced us here; keep the first handle.
	if h, ok := s.handles[id]; ok {
		return h, nil
	}
	h := &tournamentHandle{state: state}
	s.handles[id] = h
	return h, nil
}

// mutate runs an engine operation under the tournament's handle lock and
// snapshots the state if the operation succeeded.
func (s *tournamentService) mutate(ctx context.Context, id int, op func(state *models.TournamentState) error) error {
	handle, err := s.handle(ctx, id)
	if err != nil {
		return err
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()

	if err := op(handle.state); err != nil {
		return err
	}
	if err := s.repo.SaveSnapshot(ctx, nil, id, handle.state); err != nil {
		s.logger.Error("failed to persist tournament snapshot",
			slog.Int("id", id), slog.Any("error", err))
		return fmt.Errorf("failed to persist tournament %d: %w", id, err)
	}
	return nil
}

// view runs a read-only projection under the handle lock.
func (s *tournamentService) view(ctx context.Context, id int, op func(state *models.TournamentState) error) error {
	handle, err := s.handle(ctx, id)
	if err != nil {
		return err
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()
	return op(handle.state)
}

func (s *tournamentService) broadcast(id int, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	roomID := engine.TournamentRoom(id)
	s.hub.BroadcastToRoom(roomID, engine.WebSocketMessage{
		Type:    eventType,
		Payload: payload,
		RoomID:  roomID,
	})
}

func (s *tournamentService) LoadRoster(ctx context.Context, id int, rosterText string) ([]string, error) {
	var names []string
	err := s.mutate(ctx, id, func(state *models.TournamentState) error {
		names = engine.BulkLoadRoster(state, rosterText)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("roster loaded", slog.Int("id", id), slog.Int("players", len(names)))
	s.broadcast(id, engine.EventRankingUpdated, names)
	return names, nil
}

func (s *tournamentService) AddPlayer(ctx context.Context, id int, name string) error {
	err := s.mutate(ctx, id, func(state *models.TournamentState) error {
		return engine.AddPlayer(state, name)
	})
	if err != nil {
		return err
	}
	s.broadcast(id, engine.EventRankingUpdated, name)
	return nil
}

func (s *tournamentService) RemovePlayer(ctx context.Context, id int, name string) error {
	err := s.mutate(ctx, id, func(state *models.TournamentState) error {
		return engine.RemovePlayer(state, name)
	})
	if err != nil {
		return err
	}
	s.broadcast(id, engine.EventRankingUpdated, name)
	return nil
}

func (s *tournamentService) DrawRound(ctx context.Context, id int) (*models.RoundDraft, error) {
	var draft *models.RoundDraft
	err := s.mutate(ctx, id, func(state *models.TournamentState) error {
		d, err := s.generator.DrawRound(ctx, engine.DrawParams{State: state})
		if err != nil {
			return err
		}
		// A redraw discards any uncommitted draft.
		state.Draft = d
		draft = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("round drawn",
		slog.Int("id", id),
		slog.Int("round", draft.Round+1),
		slog.Int("matches", len(draft.Matches)),
		slog.Int("byes", len(draft.Byes)),
		slog.String("generator", s.generator.GetName()))
	s.broadcast(id, engine.EventDraftUpdated, draft)
	return draft, nil
}

func (s *tournamentService) CurrentDraft(ctx context.Context, id int) (*models.RoundDraft, error) {
	var draft *models.RoundDraft
	err := s.view(ctx, id, func(state *models.TournamentState) error {
		if state.Draft == nil {
			return engine.ErrNoActiveDraft
		}
		draft = state.Draft
		return nil
	})
	return draft, err
}

func (s *tournamentService) EditDraft(ctx context.Context, id int, matches []models.Match, byes []string) (*models.RoundDraft, error) {
	var draft *models.RoundDraft
	err := s.mutate(ctx, id, func(state *models.TournamentState) error {
		if err := engine.ReplaceDraft(state, matches, byes); err != nil {
			return err
		}
		draft = state.Draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.broadcast(id, engine.EventDraftUpdated, draft)
	return draft, nil
}

func (s *tournamentService) CommitRound(ctx context.Context, id int, scores map[int]string) error {
	var round int
	err := s.mutate(ctx, id, func(state *models.TournamentState) error {
		if err := engine.CommitRound(state, scores); err != nil {
			return err
		}
		round = state.Round
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("round committed", slog.Int("id", id), slog.Int("round", round))
	s.broadcast(id, engine.EventRoundCommitted, round)
	return nil
}

func (s *tournamentService) RoundLog(ctx context.Context, id int) ([]models.RoundLogEntry, error) {
	var log []models.RoundLogEntry
	err := s.view(ctx, id, func(state *models.TournamentState) error {
		log = make([]models.RoundLogEntry, len(state.Log))
		for i, entry := range state.Log {
			log[i] = models.RoundLogEntry{
				Round: entry.Round,
				Lines: append([]string(nil), entry.Lines...),
			}
		}
		return nil
	})
	return log, err
}

func (s *tournamentService) Ranking(ctx context.Context, id int) ([]models.RankingEntry, error) {
	var ranking []models.RankingEntry
	err := s.view(ctx, id, func(state *models.TournamentState) error {
		ranking = engine.Rank(state)
		return nil
	})
	return ranking, err
}

func (s *tournamentService) RankingTable(ctx context.Context, id int, kind engine.TableKind) ([]models.RankingRow, error) {
	if kind != engine.TablePoints && kind != engine.TableDifferentials {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTableKind, kind)
	}
	var rows []models.RankingRow
	err := s.view(ctx, id, func(state *models.TournamentState) error {
		rows = engine.BuildRankingTable(state, kind)
		return nil
	})
	return rows, err
}

func (s *tournamentService) Semifinals(ctx context.Context, id int) (*models.SemifinalPairings, error) {
	var pairings *models.SemifinalPairings
	err := s.view(ctx, id, func(state *models.TournamentState) error {
		p, err := engine.SeedSemifinals(engine.Rank(state))
		if err != nil {
			return err
		}
		pairings = p
		return nil
	})
	return pairings, err
}

// ExportStandings renders the current standings as CSV and uploads it to
// the configured object store, returning the public URL.
func (s *tournamentService) ExportStandings(ctx context.Context, id int) (string, error) {
	if s.uploader == nil {
		return "", ErrExportUnavailable
	}

	var buf bytes.Buffer
	var round int
	err := s.view(ctx, id, func(state *models.TournamentState) error {
		round = state.Round
		return writeStandingsCSV(&buf, state)
	})
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("tournaments/%d/standings-round-%d.csv", id, round)
	result, err := s.uploader.Upload(ctx, key, "text/csv", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to export standings for tournament %d: %w", id, err)
	}
	s.logger.Info("standings exported", slog.Int("id", id), slog.String("key", result.Key))
	return result.Location, nil
}

func writeStandingsCSV(buf *bytes.Buffer, state *models.TournamentState) error {
	w := csv.NewWriter(buf)

	header := []string{"Position", "Player", "Games"}
	for r := 1; r <= state.Round; r++ {
		header = append(header, fmt.Sprintf("R%d", r))
	}
	header = append(header, "Points", "Differential")
	if err := w.Write(header); err != nil {
		return err
	}

	ranking := engine.Rank(state)
	for i, entry := range ranking {
		row := []string{
			strconv.Itoa(i + 1),
			entry.Name,
			strconv.Itoa(entry.GamesPlayed),
		}
		for _, rec := range state.Records[entry.Name] {
			if rec.Played {
				row = append(row, strconv.Itoa(rec.Points))
			} else {
				row = append(row, "X")
			}
		}
		row = append(row, strconv.Itoa(entry.TotalPoints), strconv.Itoa(entry.TotalDifferential))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
