package web

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireViewer(w, r)
	if !ok {
		return
	}

	commitments, err := h.store.ListCommitmentsByUser(r.Context(), viewer.UserID)
	if err != nil {
		log.WithFields(log.Fields{
			"user_id": viewer.UserID,
			"error":   err,
		}).Error("failed to list commitments")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	stats, err := h.store.GetUserStatistics(r.Context(), viewer.UserID)
	if err != nil {
		log.WithFields(log.Fields{
			"user_id": viewer.UserID,
			"error":   err,
		}).Error("failed to load user statistics")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	now := h.now().UTC()
	rows := make([]commitmentRow, 0, len(commitments))
	for _, c := range commitments {
		rows = append(rows, newCommitmentRow(c, now))
	}

	view := dashboardView{
		baseView:    h.newBaseView(w, r, "title.dashboard", viewer),
		Commitments: rows,
		Stats:       newStatsView(stats),
	}
	h.renderPage(w, "dashboard.html", http.StatusOK, view)
}
