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

type ssobjectLoadedMsg struct {
	token  viewstate.Token
	object *model.SSObject
	err    error
}

// SSObjectPage shows a solar system object: its MPC orbit elements and the
// detections linked to it.
type SSObjectPage struct {
	client  Archive
	session *viewstate.Session
	styles  Styles

	id      string
	object  *model.SSObject
	err     error
	loading bool
}

func NewSSObjectPage(client Archive, styles Styles) *SSObjectPage {
	return &SSObjectPage{
		client:  client,
		session: &viewstate.Session{},
		styles:  styles,
	}
}

func (p *SSObjectPage) Load(id string) tea.Cmd {
	p.id = id
	p.object = nil
	p.err = nil
	p.loading = true

	tok, ctx := p.session.Begin(context.Background(), id)
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return func() tea.Msg {
			return ssobjectLoadedMsg{token: tok, err: fmt.Errorf("bad ssobject id %q: %w", id, err)}
		}
	}
	client := p.client
	return func() tea.Msg {
		object, err := client.SSObject(ctx, numeric)
		return ssobjectLoadedMsg{token: tok, object: object, err: err}
	}
}

func (p *SSObjectPage) SetSize(width, height int) {}

func (p *SSObjectPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ssobjectLoadedMsg:
		if !p.session.Accept(msg.token) {
			return nil
		}
		p.loading = false
		p.object = msg.object
		p.err = msg.err
	}
	return nil
}

func (p *SSObjectPage) View() string {
	var b strings.Builder
	title := "Solar system object " + p.id
	if p.object != nil && p.object.Designation != nil {
		title += "  (" + *p.object.Designation + ")"
	}
	b.WriteString(p.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case p.loading:
		b.WriteString(p.styles.Muted.Render("loading..."))
	case p.err != nil:
		b.WriteString(renderFetchError(p.styles, p.err))
	case p.object != nil:
		b.WriteString(p.renderObject())
	}
	return b.String()
}

func (p *SSObjectPage) renderObject() string {
	o := p.object
	var b strings.Builder

	if o.Orbit != nil {
		b.WriteString(p.styles.Subtitle.Render("Orbit"))
		b.WriteString("\n")
		b.WriteString(renderOrbit(p.styles, o.Orbit))
		b.WriteString("\n")
	}

	if len(o.Sources) > 0 {
		b.WriteString(p.styles.Subtitle.Render(fmt.Sprintf("Linked detections (%d)", len(o.Sources))))
		b.WriteString("\n")
		for _, src := range o.Sources {
			fmt.Fprintf(&b, "%s  mjd %.5f  ra %.6f  dec %.6f\n",
				p.styles.Link.Render(strconv.FormatInt(src.DiaSourceID, 10)),
				src.MidpointMjdTai, src.RA, src.Dec)
		}
	}
	return b.String()
}

func renderOrbit(styles Styles, orbit *model.MPCOrbit) string {
	var b strings.Builder
	write := func(label string, v *float64, format string) {
		if v == nil {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", styles.Bold.Render(pad(label, 14)), fmt.Sprintf(format, *v))
	}
	if orbit.MPCDesignation != nil {
		fmt.Fprintf(&b, "%s %s\n", styles.Bold.Render(pad("designation", 14)), *orbit.MPCDesignation)
	}
	write("H", orbit.H, "%.2f")
	write("epoch", orbit.Epoch, "%.5f")
	write("M", orbit.MeanAnomaly, "%.5f")
	write("peri", orbit.ArgPerihelion, "%.5f")
	write("node", orbit.AscendingNode, "%.5f")
	write("incl", orbit.Inclination, "%.5f")
	write("e", orbit.Eccentricity, "%.6f")
	write("a", orbit.SemimajorAxis, "%.6f")
	write("q", orbit.PerihelionDist, "%.6f")
	write("t_p", orbit.PerihelionTime, "%.5f")
	return b.String()
}
