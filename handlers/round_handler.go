package handlers

import (
	"net/http"

	"github.com/fastfour/schleifchen-system/models"
	"github.com/fastfour/schleifchen-system/services"
)

// RoundHandler drives the round workflow: draw, optional manual edit,
// score submission, and the per-round history log.
type RoundHandler struct {
	tournamentService services.TournamentService
}

func NewRoundHandler(tournamentService services.TournamentService) *RoundHandler {
	return &RoundHandler{tournamentService: tournamentService}
}

func (h *RoundHandler) Draw(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	draft, err := h.tournamentService.DrawRound(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"draft": draft}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) CurrentDraft(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	draft, err := h.tournamentService.CurrentDraft(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"draft": draft}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) EditDraft(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var input struct {
		Matches []models.Match `json:"matches"`
		Byes    []string       `json:"byes"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draft, err := h.tournamentService.EditDraft(r.Context(), id, input.Matches, input.Byes)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"draft": draft}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) Commit(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	// Scores are keyed by match index within the draft; a missing or blank
	// entry records the match as not played.
	var input struct {
		Scores map[int]string `json:"scores"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.CommitRound(r.Context(), id, input.Scores); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "round committed"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) Log(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	log, err := h.tournamentService.RoundLog(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"log": log}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
