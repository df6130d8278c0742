package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"alertscope/internal/model"
	"alertscope/internal/viewstate"
)

type queryLoadedMsg struct {
	token viewstate.Token
	rows  []model.Row
	err   error
}

type queryFilterMsg struct {
	expr string
}

const defaultQueryLimit = 200

var errNoIncludePaths = errors.New("at least one include path is required")

// QueryPage runs ad-hoc archive queries: the user picks the alert fields to
// project (dotted paths) and an optional condition, and the results are laid
// out with one column per projected field.
type QueryPage struct {
	client  Archive
	session *viewstate.Session
	styles  Styles
	notify  *Notifier

	include   textinput.Model
	condition textinput.Model
	filter    textinput.Model
	focus     int // index into inputs(); -1 when browsing results
	debouncer *Debouncer

	table     *Table
	ran       bool
	loading   bool
	err       error
	filterErr error
}

func NewQueryPage(client Archive, styles Styles, notify *Notifier) *QueryPage {
	include := textinput.New()
	include.Prompt = "include>   "
	include.Placeholder = "diaSource.diaSourceId, diaSource.psfFlux, diaSource.band"
	include.CharLimit = 256

	condition := textinput.New()
	condition.Prompt = "condition> "
	condition.Placeholder = "diaSource.snr > 5"
	condition.CharLimit = 256

	filter := textinput.New()
	filter.Prompt = "filter>    "
	filter.Placeholder = "field min-max"
	filter.CharLimit = 64

	p := &QueryPage{
		client:    client,
		session:   &viewstate.Session{},
		styles:    styles,
		notify:    notify,
		include:   include,
		condition: condition,
		filter:    filter,
		focus:     -1,
		debouncer: NewDebouncer(DefaultFilterDebounce),
		table:     NewTable(nil),
	}
	return p
}

func (p *QueryPage) inputs() []*textinput.Model {
	return []*textinput.Model{&p.include, &p.condition, &p.filter}
}

// Load focuses the include input; the query itself runs on enter.
func (p *QueryPage) Load(string) tea.Cmd {
	return p.setFocus(0)
}

func (p *QueryPage) SetSize(width, height int) {
	for _, in := range p.inputs() {
		in.Width = width - len(in.Prompt) - 2
	}
}

func (p *QueryPage) setFocus(i int) tea.Cmd {
	p.focus = i
	var cmd tea.Cmd
	for j, in := range p.inputs() {
		if j == i {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (p *QueryPage) run() tea.Cmd {
	include := splitPaths(p.include.Value())
	if len(include) == 0 {
		p.err = errNoIncludePaths
		return nil
	}

	p.err = nil
	p.filterErr = nil
	p.ran = true
	p.loading = true
	p.table = NewTable(queryColumns(include))

	query := model.AlertQuery{
		Include:   include,
		Condition: strings.TrimSpace(p.condition.Value()),
		Limit:     defaultQueryLimit,
	}
	tok, ctx := p.session.Begin(context.Background(), strings.Join(include, ","))
	client := p.client
	return func() tea.Msg {
		rows, err := client.QueryAlerts(ctx, query)
		return queryLoadedMsg{token: tok, rows: rows, err: err}
	}
}

// queryColumns derives one column per projected path. Identifier-like paths
// render as navigable IDs; everything else is numeric-filterable text.
func queryColumns(include []string) []Column {
	cols := make([]Column, len(include))
	for i, path := range include {
		title := path
		if dot := strings.LastIndex(path, "."); dot >= 0 {
			title = path[dot+1:]
		}
		format := FormatText
		if strings.HasSuffix(title, "Id") {
			format = FormatID
		}
		cols[i] = Column{
			Title:      title,
			Field:      path,
			Format:     format,
			Filterable: format != FormatID,
		}
	}
	return cols
}

func splitPaths(value string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p *QueryPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case queryLoadedMsg:
		if !p.session.Accept(msg.token) {
			return nil
		}
		p.loading = false
		p.err = msg.err
		p.table.SetRows(msg.rows)
		return nil

	case queryFilterMsg:
		p.applyFilter(msg.expr)
		return nil

	case tea.KeyMsg:
		if p.focus < 0 {
			switch msg.String() {
			case "i":
				return p.setFocus(0)
			case "c":
				return p.setFocus(1)
			case "/":
				return p.setFocus(2)
			}
			return nil
		}
		switch msg.String() {
		case "tab":
			return p.setFocus((p.focus + 1) % len(p.inputs()))
		case "esc":
			p.setFocus(-1)
			p.debouncer.Cancel()
			return nil
		case "enter":
			if p.focus == 2 {
				expr := p.filter.Value()
				p.setFocus(-1)
				p.debouncer.Flush(func() { p.applyFilter(expr) })
				return nil
			}
			p.setFocus(-1)
			return p.run()
		}
		in := p.inputs()[p.focus]
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		if p.focus == 2 {
			expr := in.Value()
			p.debouncer.Debounce(func() {
				p.notify.Send(queryFilterMsg{expr: expr})
			})
		}
		return cmd
	}
	return nil
}

func (p *QueryPage) applyFilter(value string) {
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

func (p *QueryPage) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Query alerts"))
	b.WriteString("  ")
	b.WriteString(p.styles.Muted.Render("(i include, c condition, / filter, enter runs)"))
	b.WriteString("\n\n")

	b.WriteString(p.include.View())
	b.WriteString("\n")
	b.WriteString(p.condition.View())
	b.WriteString("\n")
	b.WriteString(p.filter.View())
	b.WriteString("\n\n")

	switch {
	case p.err != nil:
		b.WriteString(renderFetchError(p.styles, p.err))
	case p.loading:
		b.WriteString(p.styles.Muted.Render("running query..."))
	case p.ran:
		b.WriteString(p.table.View(p.styles))
		if p.filterErr != nil {
			b.WriteString("\n")
			b.WriteString(p.styles.Warning.Render(p.filterErr.Error()))
		}
		visible := len(p.table.VisibleRows())
		if total := p.table.Len(); visible != total {
			b.WriteString("\n")
			b.WriteString(p.styles.Muted.Render(
				strconv.Itoa(visible) + " of " + strconv.Itoa(total) + " rows"))
		}
	default:
		b.WriteString(p.styles.Muted.Render("no query yet"))
	}
	return b.String()
}
