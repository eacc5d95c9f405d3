package handlers

import (
	"net/http"
	"strconv"

	"github.com/fastfour/schleifchen-system/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func tournamentID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "tournamentID"))
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	tournament, state, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournament": tournament,
		"state":      state,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TournamentHandler) LoadRoster(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var input struct {
		Roster string `json:"roster"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	names, err := h.tournamentService.LoadRoster(r.Context(), id, input.Roster)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": names}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.AddPlayer(r.Context(), id, input.Name); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": input.Name}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}
	name := chi.URLParam(r, "name")

	if err := h.tournamentService.RemovePlayer(r.Context(), id, name); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
