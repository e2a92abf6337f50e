package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sundial-app/sundial/internal/app/engagement"
	"github.com/sundial-app/sundial/internal/domain"
)

// ─── Streak Endpoints ───────────────────────────────────────────────────────

// --- GET /api/streak ---

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.streaks.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streak":  streak,
		"overall": engagement.CalculateOverallStreak(&streak),
	})
}

// --- POST /api/streak/reset ---

func (s *Server) handleStreakReset(w http.ResponseWriter, r *http.Request) {
	if err := s.streaks.Reset(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// ─── Award Endpoints ────────────────────────────────────────────────────────

// awardView is a catalog entry annotated with earned state.
type awardView struct {
	Def      interface{} `json:"def"`
	Earned   bool        `json:"earned"`
	EarnedAt string      `json:"earned_at,omitempty"`
}

// --- GET /api/achievements ---

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	earned, err := s.db.ListEarnedAchievements()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	when := make(map[string]string, len(earned))
	for _, e := range earned {
		when[e.ID] = e.EarnedAt.Format("2006-01-02 15:04")
	}

	out := make([]awardView, 0, len(s.evaluator.Achievements()))
	for _, def := range s.evaluator.Achievements() {
		at, ok := when[def.ID]
		out = append(out, awardView{Def: def, Earned: ok, EarnedAt: at})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": out,
		"earned":       len(earned),
		"total":        len(s.evaluator.Achievements()),
	})
}

// --- GET /api/badges ---

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	earned, err := s.db.ListEarnedBadges()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	when := make(map[string]string, len(earned))
	for _, e := range earned {
		when[e.ID] = e.EarnedAt.Format("2006-01-02 15:04")
	}

	out := make([]awardView, 0, len(s.evaluator.Badges()))
	for _, def := range s.evaluator.Badges() {
		at, ok := when[def.ID]
		out = append(out, awardView{Def: def, Earned: ok, EarnedAt: at})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": out,
		"earned": len(earned),
		"total":  len(s.evaluator.Badges()),
	})
}

// ─── Notification Endpoints ─────────────────────────────────────────────────

// --- GET /api/notifications ---

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit := queryInt(r, "limit", 50)

	notifs, err := s.notifier.List(unreadOnly, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if notifs == nil {
		notifs = []domain.Notification{}
	}

	unread, err := s.notifier.UnreadCount()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifs,
		"unread":        unread,
	})
}

// --- POST /api/notifications/{id}/read ---

func (s *Server) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := s.notifier.MarkRead(id); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// --- DELETE /api/notifications/{id} ---

func (s *Server) handleNotificationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := s.notifier.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
