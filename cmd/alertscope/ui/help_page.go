package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# alertscope

Browse the alert archive. The location bar (` + "`:`" + `) accepts a path or a
bare alert identifier.

## Routes

| Path | View |
|------|------|
| ` + "`/alert/{id}`" + ` or ` + "`{id}`" + ` | single alert |
| ` + "`/object/{id}`" + ` | object summary plots |
| ` + "`/object/{id}/templates`" + ` | per-band template stamps |
| ` + "`/ssobject/{id}`" + ` | solar system object |
| ` + "`/nights`" + ` | observing night summaries |
| ` + "`/query`" + ` | ad-hoc alert queries |

## Keys

- ` + "`:`" + ` open the location bar
- ` + "`R`" + ` roulette: jump to a random alert
- ` + "`?`" + ` this help
- ` + "`q`" + ` / ` + "`ctrl+c`" + ` quit

Pages bind their own keys; the header hints list them.
`

// HelpPage renders the built-in manual.
type HelpPage struct {
	styles   Styles
	width    int
	rendered string
}

func NewHelpPage(styles Styles) *HelpPage {
	return &HelpPage{styles: styles}
}

func (p *HelpPage) Load(string) tea.Cmd {
	p.render()
	return nil
}

func (p *HelpPage) SetSize(width, height int) {
	if width != p.width {
		p.width = width
		p.rendered = ""
	}
}

func (p *HelpPage) Update(tea.Msg) tea.Cmd { return nil }

func (p *HelpPage) render() {
	if p.rendered != "" {
		return
	}
	width := p.width
	if width <= 0 || width > 100 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		p.rendered = helpMarkdown
		return
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		p.rendered = helpMarkdown
		return
	}
	p.rendered = out
}

func (p *HelpPage) View() string {
	p.render()
	return p.rendered
}
