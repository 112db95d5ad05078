package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Page titles
	message.SetString(lang, "title.signup", "%s | Sign Up")
	message.SetString(lang, "title.login", "%s | Log In")
	message.SetString(lang, "title.dashboard", "%s | Dashboard")
	message.SetString(lang, "title.commitment_new", "%s | New Commitment")
	message.SetString(lang, "title.commitment_resolve", "%s | Resolve Commitment")

	// Shared navigation
	message.SetString(lang, "nav.dashboard", "Dashboard")
	message.SetString(lang, "nav.new_commitment", "New commitment")
	message.SetString(lang, "nav.logout", "Log out")
	message.SetString(lang, "nav.signed_in_as", "Signed in as %s")
	message.SetString(lang, "nav.lang_en", "EN")
	message.SetString(lang, "nav.lang_pt_br", "PT-BR")

	// Sign-up page
	message.SetString(lang, "signup.heading", "Create your account")
	message.SetString(lang, "signup.username", "Username")
	message.SetString(lang, "signup.password", "Password")
	message.SetString(lang, "signup.submit", "Sign up")
	message.SetString(lang, "signup.have_account", "Already have an account?")
	message.SetString(lang, "signup.login_link", "Log in")

	// Log-in page
	message.SetString(lang, "login.heading", "Welcome back")
	message.SetString(lang, "login.username", "Username")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "login.submit", "Log in")
	message.SetString(lang, "login.no_account", "No account yet?")
	message.SetString(lang, "login.signup_link", "Sign up")

	// Dashboard
	message.SetString(lang, "dashboard.heading", "Your commitments")
	message.SetString(lang, "dashboard.empty", "No commitments yet. Declare your first one.")
	message.SetString(lang, "dashboard.declare", "Declare a commitment")
	message.SetString(lang, "dashboard.deadline", "Deadline")
	message.SetString(lang, "dashboard.confidence", "Confidence")
	message.SetString(lang, "dashboard.notes", "Notes")
	message.SetString(lang, "dashboard.overdue", "Overdue")
	message.SetString(lang, "dashboard.resolve", "Resolve")
	message.SetString(lang, "dashboard.status.open", "Open")
	message.SetString(lang, "dashboard.status.completed", "Completed")
	message.SetString(lang, "dashboard.status.failed", "Failed")

	// Calibration panel
	message.SetString(lang, "stats.heading", "Calibration")
	message.SetString(lang, "stats.open", "Open")
	message.SetString(lang, "stats.completed", "Completed")
	message.SetString(lang, "stats.failed", "Failed")
	message.SetString(lang, "stats.kept_rate", "Kept rate")
	message.SetString(lang, "stats.avg_confidence", "Avg. declared confidence")
	message.SetString(lang, "stats.avg_confidence_completed", "Avg. confidence when completed")
	message.SetString(lang, "stats.avg_confidence_failed", "Avg. confidence when failed")
	message.SetString(lang, "stats.resolved_none", "Nothing resolved yet.")

	// New commitment page
	message.SetString(lang, "commitment_new.heading", "Declare a commitment")
	message.SetString(lang, "commitment_new.text", "What will you do?")
	message.SetString(lang, "commitment_new.confidence", "How confident are you? (0-100)")
	message.SetString(lang, "commitment_new.deadline", "Deadline")
	message.SetString(lang, "commitment_new.submit", "Declare")
	message.SetString(lang, "commitment_new.back", "Back to dashboard")

	// Resolve page
	message.SetString(lang, "commitment_resolve.heading", "Resolve commitment")
	message.SetString(lang, "commitment_resolve.declared_confidence", "You declared %d%% confidence.")
	message.SetString(lang, "commitment_resolve.deadline", "Deadline: %s")
	message.SetString(lang, "commitment_resolve.outcome", "Outcome")
	message.SetString(lang, "commitment_resolve.completed", "Completed")
	message.SetString(lang, "commitment_resolve.failed", "Failed")
	message.SetString(lang, "commitment_resolve.notes", "Outcome notes (optional)")
	message.SetString(lang, "commitment_resolve.submit", "Record outcome")
	message.SetString(lang, "commitment_resolve.back", "Back to dashboard")

	// Form and request errors
	message.SetString(lang, "error.credentials_required", "Username and password required.")
	message.SetString(lang, "error.username_invalid", "Username must be 3-32 characters: lowercase letters, digits, dot, dash or underscore.")
	message.SetString(lang, "error.password_too_short", "Password must be at least 8 characters.")
	message.SetString(lang, "error.username_exists", "Username already exists.")
	message.SetString(lang, "error.invalid_credentials", "Invalid credentials.")
	message.SetString(lang, "error.commitment_text_required", "Commitment text required.")
	message.SetString(lang, "error.invalid_deadline", "Invalid deadline format.")
	message.SetString(lang, "error.not_open", "Only open commitments can be resolved.")
	message.SetString(lang, "error.invalid_status", "Invalid status selected.")
	message.SetString(lang, "error.internal", "Something went wrong. Please try again.")

	// Flash notices
	message.SetString(lang, "flash.welcome", "Welcome to Troth! Your account is ready.")
	message.SetString(lang, "flash.welcome_back", "Welcome back.")
	message.SetString(lang, "flash.commitment_declared", "Commitment declared.")
	message.SetString(lang, "flash.commitment_resolved", "Commitment resolved.")
	message.SetString(lang, "flash.logged_out", "Logged out.")
}
