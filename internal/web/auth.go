package web

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	apperrors "github.com/trothapp/troth/internal/platform/errors"
	"github.com/trothapp/troth/internal/user"
	"github.com/trothapp/troth/internal/web/platform/flash"
	"github.com/trothapp/troth/internal/web/platform/sessioncookie"
	"github.com/trothapp/troth/internal/web/routepath"
)

func (h *handler) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	if viewer := h.sessions.resolveViewer(r); viewer.SignedIn() {
		http.Redirect(w, r, routepath.Dashboard, http.StatusFound)
		return
	}
	view := authFormView{baseView: h.newBaseView(w, r, "title.signup", Viewer{})}
	h.renderPage(w, "signup.html", http.StatusOK, view)
}

func (h *handler) handleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.requireSameOrigin(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderSignupError(w, r, http.StatusBadRequest, "error.credentials_required", "")
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	created, err := user.CreateUser(user.CreateUserInput{Username: username, Password: password}, h.now, nil)
	if err != nil {
		h.renderSignupError(w, r, http.StatusBadRequest, formErrorKey(err), username)
		return
	}
	if err := h.store.PutUser(r.Context(), created); err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeUserAlreadyExists {
			h.renderSignupError(w, r, http.StatusBadRequest, "error.username_exists", username)
			return
		}
		log.WithField("error", err).Error("failed to create user")
		h.renderSignupError(w, r, http.StatusInternalServerError, "error.internal", username)
		return
	}

	h.signInAndRedirect(w, r, created, flash.NoticeSuccess("flash.welcome"))
}

func (h *handler) renderSignupError(w http.ResponseWriter, r *http.Request, status int, key string, username string) {
	view := authFormView{baseView: h.newBaseView(w, r, "title.signup", Viewer{}), Username: strings.TrimSpace(username)}
	view.Error = view.T(key)
	h.renderPage(w, "signup.html", status, view)
}

func (h *handler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if viewer := h.sessions.resolveViewer(r); viewer.SignedIn() {
		http.Redirect(w, r, routepath.Dashboard, http.StatusFound)
		return
	}
	view := authFormView{baseView: h.newBaseView(w, r, "title.login", Viewer{})}
	h.renderPage(w, "login.html", http.StatusOK, view)
}

func (h *handler) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.requireSameOrigin(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, http.StatusBadRequest, "error.invalid_credentials", "")
		return
	}
	username := strings.ToLower(strings.TrimSpace(r.FormValue("username")))
	password := r.FormValue("password")

	// A missing account and a wrong password produce the same message so
	// the form does not leak which usernames exist.
	account, err := h.store.GetUserByUsername(r.Context(), username)
	if err != nil || !user.VerifyPassword(account.PasswordHash, password) {
		h.renderLoginError(w, r, http.StatusBadRequest, "error.invalid_credentials", username)
		return
	}

	h.signInAndRedirect(w, r, account, flash.NoticeSuccess("flash.welcome_back"))
}

func (h *handler) renderLoginError(w http.ResponseWriter, r *http.Request, status int, key string, username string) {
	view := authFormView{baseView: h.newBaseView(w, r, "title.login", Viewer{}), Username: strings.TrimSpace(username)}
	view.Error = view.T(key)
	h.renderPage(w, "login.html", status, view)
}

// signInAndRedirect issues a fresh session for the account and sends the
// browser to the dashboard.
func (h *handler) signInAndRedirect(w http.ResponseWriter, r *http.Request, account user.User, notice flash.Notice) {
	token, err := h.sessions.create(r.Context(), account.ID)
	if err != nil {
		log.WithFields(log.Fields{
			"user_id": account.ID,
			"error":   err,
		}).Error("failed to create web session")
		view := authFormView{baseView: h.newBaseView(w, r, "title.login", Viewer{}), Username: account.Username}
		view.Error = view.T("error.internal")
		h.renderPage(w, "login.html", http.StatusInternalServerError, view)
		return
	}
	sessioncookie.WriteWithPolicy(w, r, token, h.policy)
	flash.WriteWithPolicy(w, r, notice, h.policy)
	http.Redirect(w, r, routepath.Dashboard, http.StatusSeeOther)
}

func (h *handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.destroy(r.Context(), r); err != nil {
		log.WithField("error", err).Error("failed to destroy web session")
	}
	sessioncookie.ClearWithPolicy(w, r, h.policy)
	flash.WriteWithPolicy(w, r, flash.NoticeInfo("flash.logged_out"), h.policy)
	http.Redirect(w, r, routepath.Login, http.StatusSeeOther)
}
