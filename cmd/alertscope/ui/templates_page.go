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

type templatesLoadedMsg struct {
	token     viewstate.Token
	templates *model.TemplateImages
	err       error
}

// TemplatesPage lists the per-band reference template stamps available for a
// DIA object. Stamps are FITS blobs; they are listed here and saved to disk
// by the object command, not rasterized in the terminal.
type TemplatesPage struct {
	client  Archive
	session *viewstate.Session
	styles  Styles

	id        string
	templates *model.TemplateImages
	err       error
	loading   bool
}

func NewTemplatesPage(client Archive, styles Styles) *TemplatesPage {
	return &TemplatesPage{
		client:  client,
		session: &viewstate.Session{},
		styles:  styles,
	}
}

func (p *TemplatesPage) Load(id string) tea.Cmd {
	p.id = id
	p.templates = nil
	p.err = nil
	p.loading = true

	tok, ctx := p.session.Begin(context.Background(), id)
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return func() tea.Msg {
			return templatesLoadedMsg{token: tok, err: fmt.Errorf("bad object id %q: %w", id, err)}
		}
	}
	client := p.client
	return func() tea.Msg {
		templates, err := client.Templates(ctx, numeric)
		return templatesLoadedMsg{token: tok, templates: templates, err: err}
	}
}

func (p *TemplatesPage) SetSize(width, height int) {}

func (p *TemplatesPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case templatesLoadedMsg:
		if !p.session.Accept(msg.token) {
			return nil
		}
		p.loading = false
		p.templates = msg.templates
		p.err = msg.err
	case tea.KeyMsg:
		if msg.String() == "o" && p.id != "" {
			return navigateTo(Route{Kind: PageObject, ID: p.id})
		}
	}
	return nil
}

func (p *TemplatesPage) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Templates for object " + p.id))
	b.WriteString("  ")
	b.WriteString(p.styles.Muted.Render("(o for object)"))
	b.WriteString("\n\n")

	switch {
	case p.loading:
		b.WriteString(p.styles.Muted.Render("loading..."))
	case p.err != nil:
		b.WriteString(renderFetchError(p.styles, p.err))
	case p.templates != nil:
		if len(p.templates.Templates) == 0 {
			b.WriteString(p.styles.Muted.Render("no templates"))
			break
		}
		for _, band := range model.Bands {
			stamp, ok := p.templates.Templates[band]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "%s  %s\n",
				p.styles.Bold.Render(band),
				p.styles.Muted.Render(fmt.Sprintf("%d bytes (FITS)", len(stamp))))
		}
		b.WriteString("\n")
		b.WriteString(p.styles.Muted.Render(
			"use `alertscope object " + p.id + " --save-templates DIR` to write them out"))
	}
	return b.String()
}
