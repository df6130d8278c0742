package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Page is one routed view. Load adopts an identifier and returns the fetch
// command; a later Load supersedes an earlier one.
type Page interface {
	Load(id string) tea.Cmd
	SetSize(width, height int)
	Update(msg tea.Msg) tea.Cmd
	View() string
}

type rouletteMsg struct {
	id  int64
	err error
}

// Browser is the top-level model: a location bar, the routed page, and a
// status footer. One Browser corresponds to one browsing session.
type Browser struct {
	client Archive
	styles Styles
	log    *zap.Logger
	notify *Notifier

	pages map[PageKind]Page
	route Route

	location textinput.Model
	locating bool

	spin spinner.Model
	busy bool

	status    string
	statusErr bool

	width  int
	height int
}

// NewBrowser builds the browser and its pages, starting at the given route.
func NewBrowser(client Archive, styles Styles, log *zap.Logger, start Route) *Browser {
	notify := &Notifier{}
	location := textinput.New()
	location.Prompt = ": "
	location.Placeholder = "/alert/{id}, /object/{id}, /nights, /query ..."
	location.CharLimit = 128

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	b := &Browser{
		client:   client,
		styles:   styles,
		log:      log.With(zap.String("session", uuid.NewString())),
		notify:   notify,
		route:    start,
		location: location,
		spin:     spin,
		pages: map[PageKind]Page{
			PageAlert:     NewAlertPage(client, styles),
			PageObject:    NewObjectPage(client, styles),
			PageTemplates: NewTemplatesPage(client, styles),
			PageSSObject:  NewSSObjectPage(client, styles),
			PageNights:    NewNightsPage(client, styles, notify),
			PageQuery:     NewQueryPage(client, styles, notify),
			PageHelp:      NewHelpPage(styles),
		},
	}
	return b
}

// Notify exposes the message channel so the program's Send can be bound
// after construction.
func (b *Browser) Notify() *Notifier { return b.notify }

func (b *Browser) page() Page { return b.pages[b.route.Kind] }

func (b *Browser) Init() tea.Cmd {
	b.log.Debug("session started", zap.String("route", b.route.Path()))
	b.busy = true
	return tea.Batch(b.page().Load(b.route.ID), b.spin.Tick)
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.location.Width = msg.Width - 4
		for _, page := range b.pages {
			page.SetSize(msg.Width, msg.Height-4)
		}
		return b, nil

	case NavigateMsg:
		return b, b.navigate(msg.Route)

	case StatusMsg:
		b.status = msg.Text
		b.statusErr = msg.IsErr
		return b, nil

	case rouletteMsg:
		if msg.err != nil {
			b.status = "roulette failed: " + msg.err.Error()
			b.statusErr = true
			return b, nil
		}
		return b, b.navigate(Route{Kind: PageAlert, ID: strconv.FormatInt(msg.id, 10)})

	case tea.KeyMsg:
		if b.locating {
			switch msg.String() {
			case "enter":
				b.locating = false
				value := strings.TrimSpace(b.location.Value())
				b.location.Blur()
				b.location.SetValue("")
				if value == "" {
					return b, nil
				}
				route, err := ParseRoute(value)
				if err != nil {
					b.status = err.Error()
					b.statusErr = true
					return b, nil
				}
				return b, b.navigate(route)
			case "esc":
				b.locating = false
				b.location.Blur()
				b.location.SetValue("")
				return b, nil
			}
			var cmd tea.Cmd
			b.location, cmd = b.location.Update(msg)
			return b, cmd
		}

		if b.pageTyping() {
			return b, b.page().Update(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			b.log.Debug("session ended")
			return b, tea.Quit
		case ":":
			b.locating = true
			return b, b.location.Focus()
		case "?":
			return b, b.navigate(Route{Kind: PageHelp})
		case "R":
			return b, b.roulette()
		}
		return b, b.page().Update(msg)
	}

	switch msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spin, cmd = b.spin.Update(msg)
		return b, cmd
	case alertLoadedMsg, objectLoadedMsg, templatesLoadedMsg,
		ssobjectLoadedMsg, nightsLoadedMsg, queryLoadedMsg:
		b.busy = false
	}

	// Non-key messages go to every page so a superseded page's fetch result
	// still reaches its session guard.
	var cmds []tea.Cmd
	for _, page := range b.pages {
		if cmd := page.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return b, tea.Batch(cmds...)
}

// pageTyping reports whether the current page owns the keyboard (a focused
// text input), so global single-letter bindings must stay out of the way.
func (b *Browser) pageTyping() bool {
	switch page := b.page().(type) {
	case *NightsPage:
		return page.input.Focused()
	case *QueryPage:
		return page.focus >= 0
	default:
		return false
	}
}

func (b *Browser) navigate(route Route) tea.Cmd {
	b.route = route
	b.status = ""
	b.statusErr = false
	b.busy = true
	b.log.Debug("navigate", zap.String("route", route.Path()))
	page := b.page()
	page.SetSize(b.width, b.height-4)
	return page.Load(route.ID)
}

func (b *Browser) roulette() tea.Cmd {
	client := b.client
	return func() tea.Msg {
		id, err := client.Roulette(context.Background())
		return rouletteMsg{id: id, err: err}
	}
}

func (b *Browser) View() string {
	var sb strings.Builder

	header := b.styles.Title.Render("alertscope") + "  " +
		b.styles.Muted.Render(b.route.Path())
	if b.busy {
		header += "  " + b.spin.View()
	}
	sb.WriteString(b.styles.Header.Render(header))
	sb.WriteString("\n\n")

	sb.WriteString(b.page().View())
	sb.WriteString("\n\n")

	if b.locating {
		sb.WriteString(b.location.View())
	} else if b.status != "" {
		style := b.styles.Info
		if b.statusErr {
			style = b.styles.Error
		}
		sb.WriteString(style.Render(b.status))
	} else {
		sb.WriteString(b.styles.Footer.Render(": goto   R roulette   ? help   q quit"))
	}
	return sb.String()
}
