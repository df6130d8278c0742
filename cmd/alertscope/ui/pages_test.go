package ui

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"alertscope/internal/archive"
	"alertscope/internal/model"
)

// fakeArchive serves canned responses so page behavior can be driven without
// a server.
type fakeArchive struct {
	alerts   map[int64]*model.Alert
	plots    map[int64]*model.SummaryPlots
	nights   []model.NightSummary
	rows     []model.Row
	roulette int64
	err      error
}

func (f *fakeArchive) Alert(_ context.Context, id int64) (*model.Alert, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.alerts[id]; ok {
		return a, nil
	}
	return nil, &archive.RequestError{Kind: archive.KindStatus, Status: 404, Detail: "no such alert"}
}

func (f *fakeArchive) Roulette(context.Context) (int64, error) {
	return f.roulette, f.err
}

func (f *fakeArchive) SummaryPlots(_ context.Context, id int64) (*model.SummaryPlots, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plots[id], nil
}

func (f *fakeArchive) Templates(_ context.Context, id int64) (*model.TemplateImages, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.TemplateImages{
		DiaObjectID: id,
		Templates:   map[string][]byte{"g": []byte("stamp"), "r": []byte("longerstamp")},
	}, nil
}

func (f *fakeArchive) SSObject(_ context.Context, id int64) (*model.SSObject, error) {
	if f.err != nil {
		return nil, f.err
	}
	e := 0.1
	return &model.SSObject{SSObjectID: id, Orbit: &model.MPCOrbit{Eccentricity: &e}}, nil
}

func (f *fakeArchive) Nights(context.Context) ([]model.NightSummary, error) {
	return f.nights, f.err
}

func (f *fakeArchive) QueryAlerts(context.Context, model.AlertQuery) ([]model.Row, error) {
	return f.rows, f.err
}

func band(s string) *string { return &s }

func testAlert(id int64) *model.Alert {
	flux := 123.4
	return &model.Alert{
		DiaSourceID: id,
		DiaSource: model.DiaSource{
			DiaSourceID:    id,
			MidpointMjdTai: 60100.5,
			Band:           band("r"),
			PsfFlux:        &flux,
		},
	}
}

func TestAlertPageStaleResultIsDropped(t *testing.T) {
	client := &fakeArchive{alerts: map[int64]*model.Alert{
		1: testAlert(1),
		2: testAlert(2),
	}}
	p := NewAlertPage(client, DefaultStyles())

	first := p.Load("1")
	second := p.Load("2")

	// The superseded fetch completes, but its token is no longer current.
	p.Update(first())
	if !strings.Contains(p.View(), "loading") {
		t.Fatalf("stale result was applied:\n%s", p.View())
	}

	p.Update(second())
	view := p.View()
	if !strings.Contains(view, "Alert 2") || strings.Contains(view, "loading") {
		t.Fatalf("current result not applied:\n%s", view)
	}
}

func TestAlertPageResetsOnNewIdentifier(t *testing.T) {
	client := &fakeArchive{alerts: map[int64]*model.Alert{1: testAlert(1)}}
	p := NewAlertPage(client, DefaultStyles())

	p.Update(p.Load("1")())
	if !strings.Contains(p.View(), "60100.5") {
		t.Fatalf("alert not shown:\n%s", p.View())
	}

	p.Load("7")
	view := p.View()
	if strings.Contains(view, "60100.5") {
		t.Fatalf("old content survived identifier change:\n%s", view)
	}
	if !strings.Contains(view, "loading") {
		t.Fatalf("expected loading state:\n%s", view)
	}
}

func TestAlertPageShowsErrorKinds(t *testing.T) {
	client := &fakeArchive{alerts: map[int64]*model.Alert{}}
	p := NewAlertPage(client, DefaultStyles())
	p.Update(p.Load("99")())
	if !strings.Contains(p.View(), "not found") {
		t.Fatalf("404 not surfaced:\n%s", p.View())
	}

	client.err = &archive.RequestError{Kind: archive.KindNetwork, Detail: "dial refused"}
	p.Update(p.Load("1")())
	if !strings.Contains(p.View(), "network failure") {
		t.Fatalf("network error not surfaced:\n%s", p.View())
	}

	p.Update(p.Load("abc")())
	if !strings.Contains(p.View(), `bad alert id "abc"`) {
		t.Fatalf("bad identifier not surfaced:\n%s", p.View())
	}
}

func TestAlertPageNavigatesToObject(t *testing.T) {
	alert := testAlert(1)
	alert.DiaObject = &model.DiaObject{DiaObjectID: 42}
	client := &fakeArchive{alerts: map[int64]*model.Alert{1: alert}}
	p := NewAlertPage(client, DefaultStyles())
	p.Update(p.Load("1")())

	cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	nav, ok := cmd().(NavigateMsg)
	if !ok || nav.Route.Kind != PageObject || nav.Route.ID != "42" {
		t.Fatalf("got %#v", nav)
	}
}

func TestNightsPageFilterAndRatio(t *testing.T) {
	client := &fakeArchive{nights: []model.NightSummary{
		{Night: 20260101, NVisits: 8, NAlerts: 360, ByBand: map[string]int64{"g": 160, "r": 200}},
		{Night: 20260102, NVisits: 10, NAlerts: 20},
		{Night: 20260103, NVisits: 0, NAlerts: 0},
	}}
	p := NewNightsPage(client, DefaultStyles(), &Notifier{})
	p.Update(p.Load("")())

	view := p.View()
	if !strings.Contains(view, "45.00") {
		t.Fatalf("derived ratio missing:\n%s", view)
	}
	if !strings.Contains(view, "g:160 r:200") {
		t.Fatalf("band counts missing:\n%s", view)
	}

	p.Update(nightsFilterMsg{expr: "alertsPerVisit 10-"})
	view = p.View()
	if strings.Contains(view, "20260102") || !strings.Contains(view, "20260101") {
		t.Fatalf("filter not applied:\n%s", view)
	}
	if !strings.Contains(view, "1 of 3 nights") {
		t.Fatalf("filter count missing:\n%s", view)
	}

	p.Update(nightsFilterMsg{expr: ""})
	if !strings.Contains(p.View(), "20260102") {
		t.Fatalf("filter not cleared:\n%s", p.View())
	}

	p.Update(nightsFilterMsg{expr: "night is nonsense"})
	if !strings.Contains(p.View(), "field expression") {
		t.Fatalf("bad filter input not reported:\n%s", p.View())
	}
}

func TestNightsPageDebouncesKeystrokes(t *testing.T) {
	client := &fakeArchive{nights: []model.NightSummary{{Night: 1, NVisits: 1, NAlerts: 1}}}
	p := NewNightsPage(client, DefaultStyles(), &Notifier{})
	p.Update(p.Load("")())

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !p.input.Focused() {
		t.Fatal("filter input not focused")
	}
	// Keystrokes only schedule the debounced notify; no filter applies yet.
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if len(p.table.filters) != 0 {
		t.Fatal("filter applied before debounce settled")
	}
	p.debouncer.Cancel()
}

func TestQueryPagePreservesBigIdentifiers(t *testing.T) {
	client := &fakeArchive{rows: []model.Row{
		{"diaSource.diaSourceId": json.Number("9007199254740993"), "diaSource.snr": json.Number("7.5")},
	}}
	p := NewQueryPage(client, DefaultStyles(), &Notifier{})
	p.include.SetValue("diaSource.diaSourceId, diaSource.snr")

	cmd := p.run()
	if cmd == nil {
		t.Fatal("expected query command")
	}
	p.Update(cmd())

	view := p.View()
	if !strings.Contains(view, "9007199254740993") {
		t.Fatalf("identifier digits lost:\n%s", view)
	}
	if !strings.Contains(view, "diaSourceId") || !strings.Contains(view, "snr") {
		t.Fatalf("projected columns missing:\n%s", view)
	}
}

func TestQueryPageRequiresIncludePaths(t *testing.T) {
	p := NewQueryPage(&fakeArchive{}, DefaultStyles(), &Notifier{})
	if cmd := p.run(); cmd != nil {
		t.Fatal("expected no command without include paths")
	}
	if !strings.Contains(p.View(), "include path") {
		t.Fatalf("missing include error:\n%s", p.View())
	}
}

func TestAlertPageWritesCutouts(t *testing.T) {
	t.Chdir(t.TempDir())

	alert := testAlert(3)
	alert.CutoutScience = []byte("science")
	client := &fakeArchive{alerts: map[int64]*model.Alert{3: alert}}
	p := NewAlertPage(client, DefaultStyles())
	p.Update(p.Load("3")())

	cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	status, ok := cmd().(StatusMsg)
	if !ok || status.IsErr {
		t.Fatalf("got %#v", status)
	}
	data, err := os.ReadFile("3_science.fits")
	if err != nil {
		t.Fatalf("cutout not written: %v", err)
	}
	if string(data) != "science" {
		t.Errorf("cutout contents = %q", data)
	}
}

func TestHelpPageRendersRoutes(t *testing.T) {
	p := NewHelpPage(DefaultStyles())
	p.Load("")
	view := p.View()
	for _, want := range []string{"alertscope", "roulette", "/nights", "/ssobject/{id}"} {
		if !strings.Contains(view, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestBrowserNavigationAndRoulette(t *testing.T) {
	client := &fakeArchive{
		alerts:   map[int64]*model.Alert{5: testAlert(5)},
		roulette: 5,
		nights:   []model.NightSummary{{Night: 1, NVisits: 2, NAlerts: 4}},
	}
	b := NewBrowser(client, DefaultStyles(), zap.NewNop(), Route{Kind: PageNights})

	b.Update(b.pages[PageNights].Load("")())
	if !strings.Contains(b.View(), "Observing nights") {
		t.Fatalf("start page not shown:\n%s", b.View())
	}

	_, cmd := b.Update(NavigateMsg{Route: Route{Kind: PageAlert, ID: "5"}})
	if cmd == nil {
		t.Fatal("expected load command")
	}
	b.Update(cmd())
	if !strings.Contains(b.View(), "Alert 5") {
		t.Fatalf("navigation failed:\n%s", b.View())
	}

	_, cmd = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	if cmd == nil {
		t.Fatal("expected roulette command")
	}
	msg := cmd()
	if _, ok := msg.(rouletteMsg); !ok {
		t.Fatalf("got %#v", msg)
	}
	_, cmd = b.Update(msg)
	if cmd == nil {
		t.Fatal("expected navigation after roulette")
	}
}

func TestBrowserLocationBarParsesRoutes(t *testing.T) {
	client := &fakeArchive{nights: []model.NightSummary{}}
	b := NewBrowser(client, DefaultStyles(), zap.NewNop(), Route{Kind: PageHelp})

	b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	if !b.locating {
		t.Fatal("location bar not opened")
	}
	b.location.SetValue("/bogus/path")
	b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(b.View(), "unknown path") {
		t.Fatalf("parse error not shown:\n%s", b.View())
	}

	b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	b.location.SetValue("/nights")
	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected load command")
	}
	if b.route.Kind != PageNights {
		t.Fatalf("route = %v", b.route.Kind)
	}
}
