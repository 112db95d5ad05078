package web

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/trothapp/troth/internal/commitment"
	apperrors "github.com/trothapp/troth/internal/platform/errors"
	"github.com/trothapp/troth/internal/storage"
	"github.com/trothapp/troth/internal/web/platform/flash"
	"github.com/trothapp/troth/internal/web/routepath"
)

func (h *handler) handleCommitmentNewForm(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireViewer(w, r)
	if !ok {
		return
	}
	view := commitmentFormView{baseView: h.newBaseView(w, r, "title.commitment_new", viewer)}
	h.renderPage(w, "commitment_new.html", http.StatusOK, view)
}

func (h *handler) handleCommitmentNewSubmit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireViewer(w, r)
	if !ok {
		return
	}
	if !h.requireSameOrigin(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderCommitmentNewError(w, r, viewer, http.StatusBadRequest, "error.internal", "", "", "")
		return
	}

	text := r.FormValue("text")
	confidenceRaw := r.FormValue("confidence")
	deadlineRaw := r.FormValue("deadline")

	deadline, err := commitment.ParseDeadline(deadlineRaw)
	if err != nil {
		h.renderCommitmentNewError(w, r, viewer, http.StatusBadRequest, formErrorKey(err), text, confidenceRaw, deadlineRaw)
		return
	}
	declared, err := commitment.Declare(commitment.DeclareInput{
		UserID:                viewer.UserID,
		Text:                  text,
		DeclaredConfidencePct: commitment.ParseConfidencePct(confidenceRaw),
		Deadline:              deadline,
	}, h.now, nil)
	if err != nil {
		h.renderCommitmentNewError(w, r, viewer, http.StatusBadRequest, formErrorKey(err), text, confidenceRaw, deadlineRaw)
		return
	}
	if err := h.store.PutCommitment(r.Context(), declared); err != nil {
		log.WithFields(log.Fields{
			"user_id": viewer.UserID,
			"error":   err,
		}).Error("failed to store commitment")
		h.renderCommitmentNewError(w, r, viewer, http.StatusInternalServerError, "error.internal", text, confidenceRaw, deadlineRaw)
		return
	}

	flash.WriteWithPolicy(w, r, flash.NoticeSuccess("flash.commitment_declared"), h.policy)
	http.Redirect(w, r, routepath.Dashboard, http.StatusSeeOther)
}

func (h *handler) renderCommitmentNewError(w http.ResponseWriter, r *http.Request, viewer Viewer, status int, key, text, confidence, deadline string) {
	view := commitmentFormView{
		baseView:   h.newBaseView(w, r, "title.commitment_new", viewer),
		Text:       text,
		Confidence: strings.TrimSpace(confidence),
		Deadline:   strings.TrimSpace(deadline),
	}
	view.Error = view.T(key)
	h.renderPage(w, "commitment_new.html", status, view)
}

// loadOwnCommitment fetches a commitment and hides other users' records
// behind a plain 404.
func (h *handler) loadOwnCommitment(w http.ResponseWriter, r *http.Request, viewer Viewer) (commitment.Commitment, bool) {
	commitmentID := strings.TrimSpace(r.PathValue("commitmentID"))
	if commitmentID == "" {
		http.NotFound(w, r)
		return commitment.Commitment{}, false
	}
	c, err := h.store.GetCommitment(r.Context(), commitmentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return commitment.Commitment{}, false
		}
		log.WithFields(log.Fields{
			"commitment_id": commitmentID,
			"error":         err,
		}).Error("failed to load commitment")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return commitment.Commitment{}, false
	}
	if c.UserID != viewer.UserID {
		http.NotFound(w, r)
		return commitment.Commitment{}, false
	}
	return c, true
}

func (h *handler) handleCommitmentResolveForm(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireViewer(w, r)
	if !ok {
		return
	}
	c, ok := h.loadOwnCommitment(w, r, viewer)
	if !ok {
		return
	}

	view := resolveFormView{
		baseView:   h.newBaseView(w, r, "title.commitment_resolve", viewer),
		Commitment: newCommitmentRow(c, h.now().UTC()),
	}
	if c.Status != commitment.StatusOpen {
		view.Error = view.T("error.not_open")
		h.renderPage(w, "commitment_resolve.html", http.StatusConflict, view)
		return
	}
	h.renderPage(w, "commitment_resolve.html", http.StatusOK, view)
}

func (h *handler) handleCommitmentResolveSubmit(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.requireViewer(w, r)
	if !ok {
		return
	}
	if !h.requireSameOrigin(w, r) {
		return
	}
	c, ok := h.loadOwnCommitment(w, r, viewer)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderResolveError(w, r, viewer, c, http.StatusBadRequest, "error.invalid_status", "")
		return
	}

	notes := r.FormValue("notes")
	target, err := commitment.StatusFromLabel(r.FormValue("status"))
	if err == nil {
		err = c.Resolve(target, notes, h.now)
	}
	if err != nil {
		h.renderResolveError(w, r, viewer, c, apperrors.HTTPStatus(err), formErrorKey(err), notes)
		return
	}
	if err := h.store.UpdateCommitmentResolution(r.Context(), c); err != nil {
		// A concurrent resolve can trip the storage status guard after the
		// in-memory transition succeeded.
		if apperrors.CodeOf(err) == apperrors.CodeCommitmentNotOpen {
			h.renderResolveError(w, r, viewer, c, http.StatusConflict, "error.not_open", notes)
			return
		}
		log.WithFields(log.Fields{
			"commitment_id": c.ID,
			"error":         err,
		}).Error("failed to store commitment resolution")
		h.renderResolveError(w, r, viewer, c, http.StatusInternalServerError, "error.internal", notes)
		return
	}

	flash.WriteWithPolicy(w, r, flash.NoticeSuccess("flash.commitment_resolved"), h.policy)
	http.Redirect(w, r, routepath.Dashboard, http.StatusSeeOther)
}

func (h *handler) renderResolveError(w http.ResponseWriter, r *http.Request, viewer Viewer, c commitment.Commitment, status int, key, notes string) {
	view := resolveFormView{
		baseView:   h.newBaseView(w, r, "title.commitment_resolve", viewer),
		Commitment: newCommitmentRow(c, h.now().UTC()),
		Notes:      strings.TrimSpace(notes),
	}
	view.Error = view.T(key)
	h.renderPage(w, "commitment_resolve.html", status, view)
}
