package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sundial-app/sundial/internal/app/checkin"
	"github.com/sundial-app/sundial/internal/domain"
)

// ─── Check-In Endpoints ─────────────────────────────────────────────────────

// --- POST /api/checkins ---

func (s *Server) handleSubmitCheckIn(w http.ResponseWriter, r *http.Request) {
	var in checkin.SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.checkins.Submit(in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrEmptyGratitude) || errors.Is(err, domain.ErrMissingEmotion) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// --- GET /api/checkins ---

func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	entries, err := s.db.ListEntries(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// --- GET /api/checkins/{id} ---

func (s *Server) handleGetCheckIn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := s.db.GetEntry(id)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
