package handlers

import (
	"net/http"

	"github.com/fastfour/schleifchen-system/engine"
	"github.com/fastfour/schleifchen-system/services"
)

type RankingHandler struct {
	tournamentService services.TournamentService
}

func NewRankingHandler(tournamentService services.TournamentService) *RankingHandler {
	return &RankingHandler{tournamentService: tournamentService}
}

func (h *RankingHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	ranking, err := h.tournamentService.Ranking(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Table renders the ranking as display rows. ?table=points (default) or
// ?table=differentials selects the per-round cell values.
func (h *RankingHandler) Table(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	kind := engine.TableKind(r.URL.Query().Get("table"))
	if kind == "" {
		kind = engine.TablePoints
	}

	rows, err := h.tournamentService.RankingTable(r.Context(), id, kind)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"table": kind, "rows": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RankingHandler) Semifinals(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	pairings, err := h.tournamentService.Semifinals(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"semifinals": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RankingHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	url, err := h.tournamentService.ExportStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"url": url}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
