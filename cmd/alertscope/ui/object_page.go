package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"alertscope/internal/model"
	"alertscope/internal/viewstate"
)

type objectLoadedMsg struct {
	token viewstate.Token
	plots *model.SummaryPlots
	err   error
}

// ObjectPage shows a DIA object's summary plots: the photometry history as a
// lightcurve and the per-detection centroid scatter.
type ObjectPage struct {
	client  Archive
	session *viewstate.Session
	styles  Styles

	id      string
	plots   *model.SummaryPlots
	err     error
	loading bool

	width  int
	height int
}

func NewObjectPage(client Archive, styles Styles) *ObjectPage {
	return &ObjectPage{
		client:  client,
		session: &viewstate.Session{},
		styles:  styles,
	}
}

func (p *ObjectPage) Load(id string) tea.Cmd {
	p.id = id
	p.plots = nil
	p.err = nil
	p.loading = true

	tok, ctx := p.session.Begin(context.Background(), id)
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return func() tea.Msg {
			return objectLoadedMsg{token: tok, err: fmt.Errorf("bad object id %q: %w", id, err)}
		}
	}
	client := p.client
	return func() tea.Msg {
		plots, err := client.SummaryPlots(ctx, numeric)
		return objectLoadedMsg{token: tok, plots: plots, err: err}
	}
}

func (p *ObjectPage) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *ObjectPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case objectLoadedMsg:
		if !p.session.Accept(msg.token) {
			return nil
		}
		p.loading = false
		p.plots = msg.plots
		p.err = msg.err
	case tea.KeyMsg:
		if msg.String() == "t" && p.id != "" {
			return navigateTo(Route{Kind: PageTemplates, ID: p.id})
		}
	}
	return nil
}

func (p *ObjectPage) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Object " + p.id))
	b.WriteString("  ")
	b.WriteString(p.styles.Muted.Render("(t for templates)"))
	b.WriteString("\n\n")

	switch {
	case p.loading:
		b.WriteString(p.styles.Muted.Render("loading..."))
	case p.err != nil:
		b.WriteString(renderFetchError(p.styles, p.err))
	case p.plots != nil:
		b.WriteString(p.renderPlots())
	}
	return b.String()
}

func (p *ObjectPage) renderPlots() string {
	var b strings.Builder

	plotWidth := p.width - 4
	if plotWidth < 20 {
		plotWidth = 20
	}
	plotHeight := (p.height - 10) / 2
	if plotHeight < 6 {
		plotHeight = 6
	}

	b.WriteString(p.styles.Subtitle.Render(
		fmt.Sprintf("Lightcurve (%d points)", len(p.plots.Lightcurve))))
	b.WriteString("\n")
	b.WriteString(RenderLightcurve(p.plots.Lightcurve, plotWidth, plotHeight, p.styles))
	b.WriteString("\n\n")

	b.WriteString(p.styles.Subtitle.Render("Centroid offsets"))
	b.WriteString("\n")
	b.WriteString(RenderCentroid(p.plots.Centroid, plotHeight, p.styles))
	b.WriteString("\n")
	return b.String()
}
