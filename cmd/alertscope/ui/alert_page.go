package ui

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"alertscope/internal/archive"
	"alertscope/internal/model"
	"alertscope/internal/viewstate"
)

// Archive is the slice of the client that pages fetch through.
type Archive interface {
	Alert(ctx context.Context, id int64) (*model.Alert, error)
	Roulette(ctx context.Context) (int64, error)
	SummaryPlots(ctx context.Context, id int64) (*model.SummaryPlots, error)
	Templates(ctx context.Context, id int64) (*model.TemplateImages, error)
	SSObject(ctx context.Context, id int64) (*model.SSObject, error)
	Nights(ctx context.Context) ([]model.NightSummary, error)
	QueryAlerts(ctx context.Context, q model.AlertQuery) ([]model.Row, error)
}

var _ Archive = (*archive.Client)(nil)

type alertLoadedMsg struct {
	token viewstate.Token
	alert *model.Alert
	err   error
}

// AlertPage shows a single alert: its detection, photometry history and
// cutout availability.
type AlertPage struct {
	client  Archive
	session *viewstate.Session
	styles  Styles

	id      string
	alert   *model.Alert
	err     error
	loading bool

	width  int
	height int
}

func NewAlertPage(client Archive, styles Styles) *AlertPage {
	return &AlertPage{
		client:  client,
		session: &viewstate.Session{},
		styles:  styles,
	}
}

// Load adopts id and starts a fetch. A later Load supersedes any fetch still
// in flight; its result will be dropped.
func (p *AlertPage) Load(id string) tea.Cmd {
	p.id = id
	p.alert = nil
	p.err = nil
	p.loading = true

	tok, ctx := p.session.Begin(context.Background(), id)
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return func() tea.Msg {
			return alertLoadedMsg{token: tok, err: fmt.Errorf("bad alert id %q: %w", id, err)}
		}
	}
	client := p.client
	return func() tea.Msg {
		alert, err := client.Alert(ctx, numeric)
		return alertLoadedMsg{token: tok, alert: alert, err: err}
	}
}

func (p *AlertPage) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *AlertPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case alertLoadedMsg:
		if !p.session.Accept(msg.token) {
			return nil
		}
		p.loading = false
		p.alert = msg.alert
		p.err = msg.err
	case tea.KeyMsg:
		if p.alert == nil {
			return nil
		}
		switch msg.String() {
		case "o":
			if p.alert.DiaObject != nil {
				id := strconv.FormatInt(p.alert.DiaObject.DiaObjectID, 10)
				return navigateTo(Route{Kind: PageObject, ID: id})
			}
		case "s":
			if p.alert.SSSource != nil && p.alert.SSSource.SSObjectID != nil {
				id := strconv.FormatInt(*p.alert.SSSource.SSObjectID, 10)
				return navigateTo(Route{Kind: PageSSObject, ID: id})
			}
		case "w":
			if len(p.alert.Cutouts()) > 0 {
				return p.writeCutouts()
			}
		}
	}
	return nil
}

// writeCutouts saves the cutout stamps to the working directory as
// {id}_{kind}.fits and reports the outcome in the status line.
func (p *AlertPage) writeCutouts() tea.Cmd {
	alert := p.alert
	return func() tea.Msg {
		n := 0
		for kind, stamp := range alert.Cutouts() {
			name := fmt.Sprintf("%d_%s.fits", alert.DiaSourceID, kind)
			if err := os.WriteFile(name, stamp, 0o644); err != nil {
				return StatusMsg{Text: "saving cutouts: " + err.Error(), IsErr: true}
			}
			n++
		}
		return StatusMsg{Text: fmt.Sprintf("wrote %d cutout files", n)}
	}
}

func (p *AlertPage) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Alert " + p.id))
	b.WriteString("\n\n")

	switch {
	case p.loading:
		b.WriteString(p.styles.Muted.Render("loading..."))
	case p.err != nil:
		b.WriteString(renderFetchError(p.styles, p.err))
	case p.alert != nil:
		b.WriteString(p.renderAlert())
	}
	return b.String()
}

func (p *AlertPage) renderAlert() string {
	a := p.alert
	var b strings.Builder

	b.WriteString(p.styles.Subtitle.Render("Detection"))
	b.WriteString("\n")
	b.WriteString(renderSourceLine(p.styles, &a.DiaSource))
	b.WriteString("\n")

	if a.DiaObject != nil {
		b.WriteString("\n")
		b.WriteString(p.styles.Subtitle.Render("Object"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s  %s\n",
			p.styles.Link.Render(strconv.FormatInt(a.DiaObject.DiaObjectID, 10)),
			p.styles.Muted.Render("(o to open)"))
	}
	if a.SSSource != nil && a.SSSource.SSObjectID != nil {
		b.WriteString("\n")
		b.WriteString(p.styles.Subtitle.Render("Solar system source"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s  %s\n",
			p.styles.Link.Render(strconv.FormatInt(*a.SSSource.SSObjectID, 10)),
			p.styles.Muted.Render("(s to open)"))
	}

	if len(a.PrvDiaSources) > 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.Subtitle.Render(fmt.Sprintf("Previous detections (%d)", len(a.PrvDiaSources))))
		b.WriteString("\n")
		for i := range a.PrvDiaSources {
			b.WriteString(renderSourceLine(p.styles, &a.PrvDiaSources[i]))
			b.WriteString("\n")
		}
	}
	if n := len(a.PrvDiaForcedSources); n > 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.Muted.Render(fmt.Sprintf("%d forced photometry points", n)))
		b.WriteString("\n")
	}

	cutouts := a.Cutouts()
	if len(cutouts) > 0 {
		names := make([]string, 0, len(cutouts))
		for name := range cutouts {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("\n")
		b.WriteString(p.styles.Subtitle.Render("Cutouts"))
		b.WriteString("  ")
		b.WriteString(p.styles.Muted.Render("(w to save)"))
		b.WriteString("\n")
		for _, name := range names {
			digest := sha256.Sum256(cutouts[name])
			fmt.Fprintf(&b, "%s  %s\n", name,
				p.styles.Muted.Render(fmt.Sprintf("%d bytes (FITS)  sha256 %x", len(cutouts[name]), digest[:8])))
		}
	}
	return b.String()
}

func renderSourceLine(styles Styles, s *model.DiaSource) string {
	parts := []string{
		styles.Bold.Render(strconv.FormatInt(s.DiaSourceID, 10)),
		fmt.Sprintf("mjd %.5f", s.MidpointMjdTai),
	}
	if s.Band != nil {
		parts = append(parts, "band "+*s.Band)
	}
	if s.PsfFlux != nil {
		flux := fmt.Sprintf("flux %.4g", *s.PsfFlux)
		if s.PsfFluxErr != nil {
			flux += fmt.Sprintf(" ± %.2g", *s.PsfFluxErr)
		}
		parts = append(parts, flux)
	}
	if s.SNR != nil {
		parts = append(parts, fmt.Sprintf("snr %.1f", *s.SNR))
	}
	if s.Reliability != nil {
		parts = append(parts, fmt.Sprintf("rb %.2f", *s.Reliability))
	}
	return strings.Join(parts, "  ")
}
