package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/sundial-app/sundial/internal/app/insights"
	"github.com/sundial-app/sundial/internal/domain"
)

// ─── Insight Endpoints ──────────────────────────────────────────────────────

// --- GET /api/insights/trend?window=7&max=90 ---

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	window := queryInt(r, "window", 7)
	maxPoints := queryInt(r, "max", 90)

	points, err := s.insights.Trend(window, maxPoints)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if points == nil {
		points = []insights.TrendPoint{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"window": window,
		"points": points,
	})
}

// --- GET /api/insights/words?limit=40 ---

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 40)

	words, err := s.insights.Words(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if words == nil {
		words = []insights.WordCount{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"words": words,
	})
}

// --- GET /api/insights/calendar?year=2026&month=8 ---

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))

	cal, err := s.insights.Month(year, time.Month(month))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, cal)
}
