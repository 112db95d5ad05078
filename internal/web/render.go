package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/message"

	"github.com/trothapp/troth/internal/commitment"
	"github.com/trothapp/troth/internal/platform/branding"
	"github.com/trothapp/troth/internal/storage"
	"github.com/trothapp/troth/internal/web/i18n"
	"github.com/trothapp/troth/internal/web/platform/flash"
	"github.com/trothapp/troth/internal/web/routepath"
)

// deadlineDisplayLayout is how deadlines render on pages. Values are UTC.
const deadlineDisplayLayout = "2006-01-02 15:04"

// baseView carries the fields shared by every page template.
type baseView struct {
	AppName string
	Title   string
	Lang    string
	Viewer  Viewer
	Toast   *toastView
	printer *message.Printer
}

// T renders a localized message inside templates.
func (v baseView) T(key string, args ...any) string {
	if v.printer == nil {
		return key
	}
	return v.printer.Sprintf(key, args...)
}

type toastView struct {
	Kind    string
	Message string
}

type authFormView struct {
	baseView
	Error    string
	Username string
}

type commitmentRow struct {
	ID            string
	Text          string
	ConfidencePct int
	DeadlineLabel string
	StatusKey     string
	StatusClass   string
	Overdue       bool
	Open          bool
	Notes         string
	ResolvePath   string
}

type statsView struct {
	Open         int64
	Completed    int64
	Failed       int64
	AvgDeclared  string
	KeptRate     string
	AvgCompleted string
	AvgFailed    string
	HasResolved  bool
}

type dashboardView struct {
	baseView
	Commitments []commitmentRow
	Stats       statsView
}

type commitmentFormView struct {
	baseView
	Error      string
	Text       string
	Confidence string
	Deadline   string
}

type resolveFormView struct {
	baseView
	Error      string
	Commitment commitmentRow
	Notes      string
}

// newBaseView resolves language, persists an explicit language choice, and
// drains any pending flash notice into a toast.
func (h *handler) newBaseView(w http.ResponseWriter, r *http.Request, titleKey string, viewer Viewer) baseView {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	printer := i18n.Printer(tag)

	view := baseView{
		AppName: branding.AppName,
		Title:   printer.Sprintf(titleKey, branding.AppName),
		Lang:    tag.String(),
		Viewer:  viewer,
		printer: printer,
	}
	if notice, ok := flash.ReadAndClear(w, r); ok {
		text := strings.TrimSpace(printer.Sprintf(notice.Key))
		if text == "" {
			text = notice.Key
		}
		view.Toast = &toastView{Kind: string(notice.Kind), Message: text}
	}
	return view
}

// renderPage writes a template to a buffer first so a render failure can
// still produce a clean 500 instead of a half-written page.
func (h *handler) renderPage(w http.ResponseWriter, name string, status int, view any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, view); err != nil {
		log.WithFields(log.Fields{
			"template": name,
			"error":    err,
		}).Error("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func newCommitmentRow(c commitment.Commitment, now time.Time) commitmentRow {
	status := string(c.Status)
	return commitmentRow{
		ID:            c.ID,
		Text:          c.Text,
		ConfidencePct: c.DeclaredConfidencePct,
		DeadlineLabel: c.Deadline.UTC().Format(deadlineDisplayLayout),
		StatusKey:     "dashboard.status." + status,
		StatusClass:   status,
		Overdue:       c.Overdue(now),
		Open:          c.Status == commitment.StatusOpen,
		Notes:         c.OutcomeNotes,
		ResolvePath:   routepath.CommitmentResolve(c.ID),
	}
}

func newStatsView(stats storage.UserStatistics) statsView {
	view := statsView{
		Open:        stats.Open,
		Completed:   stats.Completed,
		Failed:      stats.Failed,
		AvgDeclared: formatPct1(stats.AvgDeclaredConfidencePct),
		HasResolved: stats.Resolved() > 0,
	}
	if view.HasResolved {
		view.KeptRate = fmt.Sprintf("%.0f%%", stats.KeptRatePct())
		view.AvgCompleted = formatPct1(stats.AvgConfidenceCompleted)
		view.AvgFailed = formatPct1(stats.AvgConfidenceFailed)
	}
	return view
}

func formatPct1(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}
