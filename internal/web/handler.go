package web

import (
	"net/http"

	apperrors "github.com/trothapp/troth/internal/platform/errors"
	"github.com/trothapp/troth/internal/web/platform/requestmeta"
	"github.com/trothapp/troth/internal/web/routepath"
)

// handleRoot routes the bare domain: signed-in viewers land on the
// dashboard, everyone else on the login page. Unmatched paths fall
// through to this handler and 404.
func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.Root {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if viewer := h.sessions.resolveViewer(r); viewer.SignedIn() {
		http.Redirect(w, r, routepath.Dashboard, http.StatusFound)
		return
	}
	http.Redirect(w, r, routepath.Login, http.StatusFound)
}

// requireViewer resolves the signed-in viewer or redirects to login.
func (h *handler) requireViewer(w http.ResponseWriter, r *http.Request) (Viewer, bool) {
	viewer := h.sessions.resolveViewer(r)
	if !viewer.SignedIn() {
		http.Redirect(w, r, routepath.Login, http.StatusFound)
		return Viewer{}, false
	}
	return viewer, true
}

// requireSameOrigin rejects form posts without same-origin proof.
func (h *handler) requireSameOrigin(w http.ResponseWriter, r *http.Request) bool {
	if requestmeta.HasSameOriginProofWithPolicy(r, h.policy) {
		return true
	}
	http.Error(w, "cross-origin form submission rejected", http.StatusForbidden)
	return false
}

// formErrorKey maps a domain error to the message shown inline on the
// submitting form.
func formErrorKey(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeUserCredentialsRequired:
		return "error.credentials_required"
	case apperrors.CodeUserUsernameInvalid:
		return "error.username_invalid"
	case apperrors.CodeUserPasswordTooShort:
		return "error.password_too_short"
	case apperrors.CodeUserAlreadyExists:
		return "error.username_exists"
	case apperrors.CodeUserInvalidCredentials:
		return "error.invalid_credentials"
	case apperrors.CodeCommitmentTextRequired:
		return "error.commitment_text_required"
	case apperrors.CodeCommitmentDeadlineInvalid:
		return "error.invalid_deadline"
	case apperrors.CodeCommitmentNotOpen:
		return "error.not_open"
	case apperrors.CodeCommitmentStatusInvalid:
		return "error.invalid_status"
	default:
		return "error.internal"
	}
}
