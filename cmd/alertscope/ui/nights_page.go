package ui

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"alertscope/internal/model"
	"alertscope/internal/viewstate"
)

type nightsLoadedMsg struct {
	token  viewstate.Token
	nights []model.NightSummary
	err    error
}

// nightsFilterMsg carries a settled filter expression after the debounce
// window has passed without further keystrokes.
type nightsFilterMsg struct {
	expr string
}

// NightsPage lists observing nights with their visit and alert counts plus
// the derived alerts-per-visit ratio, with debounced range filtering.
type NightsPage struct {
	client  Archive
	session *viewstate.Session
	styles  Styles
	notify  *Notifier

	table     *Table
	input     textinput.Model
	debouncer *Debouncer

	err       error
	filterErr error
	loading   bool
}

func NewNightsPage(client Archive, styles Styles, notify *Notifier) *NightsPage {
	input := textinput.New()
	input.Placeholder = "field min-max  (e.g. nAlerts 1000-)"
	input.Prompt = "filter> "
	input.CharLimit = 64

	return &NightsPage{
		client:    client,
		session:   &viewstate.Session{},
		styles:    styles,
		notify:    notify,
		table:     NewTable(nightColumns()),
		input:     input,
		debouncer: NewDebouncer(DefaultFilterDebounce),
	}
}

func nightColumns() []Column {
	return []Column{
		{Title: "night", Field: "night", Format: FormatText},
		{Title: "visits", Field: "nVisits", Format: FormatNumber, Filterable: true},
		{Title: "alerts", Field: "nAlerts", Format: FormatNumber, Filterable: true},
		{
			Title:      "alerts/visit",
			Field:      "alertsPerVisit",
			Format:     FormatNumber,
			Decimals:   2,
			Derive:     deriveAlertsPerVisit,
			Filterable: true,
		},
		{Title: "", Field: "alertsPerVisitBar", Format: FormatBar, Derive: deriveAlertsPerVisit},
		{Title: "by band", Field: "byBand", Format: FormatText},
	}
}

func deriveAlertsPerVisit(r model.Row) any {
	visits, err := r.Int64("nVisits")
	if err != nil || visits == 0 {
		return 0.0
	}
	alerts, err := r.Int64("nAlerts")
	if err != nil {
		return 0.0
	}
	return float64(alerts) / float64(visits)
}

// nightRows flattens the summaries into table rows. Counts are stored as
// json.Number so identifiers and totals render with their exact digits.
func nightRows(nights []model.NightSummary) []model.Row {
	rows := make([]model.Row, len(nights))
	for i, n := range nights {
		var bands strings.Builder
		for _, band := range model.Bands {
			count, ok := n.ByBand[band]
			if !ok {
				continue
			}
			if bands.Len() > 0 {
				bands.WriteByte(' ')
			}
			bands.WriteString(band)
			bands.WriteByte(':')
			bands.WriteString(strconv.FormatInt(count, 10))
		}
		rows[i] = model.Row{
			"night":   json.Number(strconv.Itoa(n.Night)),
			"nVisits": json.Number(strconv.FormatInt(n.NVisits, 10)),
			"nAlerts": json.Number(strconv.FormatInt(n.NAlerts, 10)),
			"byBand":  bands.String(),
		}
	}
	return rows
}

func (p *NightsPage) Load(string) tea.Cmd {
	p.err = nil
	p.loading = true

	tok, ctx := p.session.Begin(context.Background(), "nights")
	client := p.client
	return func() tea.Msg {
		nights, err := client.Nights(ctx)
		return nightsLoadedMsg{token: tok, nights: nights, err: err}
	}
}

func (p *NightsPage) SetSize(width, height int) {
	p.input.Width = width - len(p.input.Prompt) - 2
}

func (p *NightsPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case nightsLoadedMsg:
		if !p.session.Accept(msg.token) {
			return nil
		}
		p.loading = false
		p.err = msg.err
		p.table.SetRows(nightRows(msg.nights))
		return nil

	case nightsFilterMsg:
		p.applyFilter(msg.expr)
		return nil

	case tea.KeyMsg:
		if p.input.Focused() {
			switch msg.String() {
			case "enter":
				p.input.Blur()
				expr := p.input.Value()
				p.debouncer.Flush(func() { p.applyFilter(expr) })
				return nil
			case "esc":
				p.input.Blur()
				p.debouncer.Cancel()
				return nil
			}
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			expr := p.input.Value()
			p.debouncer.Debounce(func() {
				p.notify.Send(nightsFilterMsg{expr: expr})
			})
			return cmd
		}
		switch msg.String() {
		case "/":
			return p.input.Focus()
		case "r":
			return p.Load("")
		}
	}
	return nil
}

// applyFilter interprets "field expr" against the filterable columns. An
// empty input clears every filter.
func (p *NightsPage) applyFilter(value string) {
	p.filterErr = nil
	fields := strings.Fields(value)
	switch len(fields) {
	case 0:
		for _, col := range p.table.Columns {
			if col.Filterable {
				p.table.SetFilter(col.Field, "")
			}
		}
	case 2:
		p.filterErr = p.table.SetFilter(fields[0], fields[1])
	default:
		p.filterErr = errBadFilterInput
	}
}

func (p *NightsPage) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Observing nights"))
	b.WriteString("  ")
	b.WriteString(p.styles.Muted.Render("(/ filter, r reload)"))
	b.WriteString("\n\n")

	switch {
	case p.loading:
		b.WriteString(p.styles.Muted.Render("loading..."))
	case p.err != nil:
		b.WriteString(renderFetchError(p.styles, p.err))
	default:
		b.WriteString(p.table.View(p.styles))
		b.WriteString("\n\n")
		b.WriteString(p.input.View())
		if p.filterErr != nil {
			b.WriteString("\n")
			b.WriteString(p.styles.Warning.Render(p.filterErr.Error()))
		}
		visible := len(p.table.VisibleRows())
		if total := p.table.Len(); visible != total {
			b.WriteString("\n")
			b.WriteString(p.styles.Muted.Render(
				strconv.Itoa(visible) + " of " + strconv.Itoa(total) + " nights"))
		}
	}
	return b.String()
}
