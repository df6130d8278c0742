package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"alertscope/internal/model"
)

func testNightRows() []model.Row {
	return []model.Row{
		{"night": json.Number("20260130"), "nVisits": json.Number("120"), "nAlerts": json.Number("5400")},
		{"night": json.Number("20260131"), "nVisits": json.Number("0"), "nAlerts": json.Number("0")},
		{"night": json.Number("20260201"), "nVisits": json.Number("80"), "nAlerts": json.Number("1200")},
	}
}

func alertsPerVisit(row model.Row) any {
	visits, err := row.Float64("nVisits")
	if err != nil || visits == 0 {
		return 0.0
	}
	alerts, err := row.Float64("nAlerts")
	if err != nil {
		return 0.0
	}
	return alerts / visits
}

func testNightColumns() []Column {
	return []Column{
		{Title: "Night", Field: "night", Format: FormatID},
		{Title: "Visits", Field: "nVisits", Format: FormatText, Filterable: true},
		{Title: "Alerts", Field: "nAlerts", Format: FormatBar},
		{Title: "Alerts/visit", Field: "ratio", Format: FormatNumber, Decimals: 2, Derive: alertsPerVisit, Filterable: true},
	}
}

func TestTableDerivedRatioColumn(t *testing.T) {
	tbl := NewTable(testNightColumns())
	tbl.SetRows(testNightRows())

	view := tbl.View(DefaultStyles())
	if !strings.Contains(view, "45.00") {
		t.Fatalf("expected derived ratio 45.00 in view:\n%s", view)
	}
	// Zero visits must yield 0, not a division error.
	if !strings.Contains(view, "0.00") {
		t.Fatalf("expected zero ratio for empty night:\n%s", view)
	}
}

func TestTablePreservesBigIdentifiers(t *testing.T) {
	tbl := NewTable([]Column{{Title: "ID", Field: "diaSourceId", Format: FormatID}})
	tbl.SetRows([]model.Row{{"diaSourceId": json.Number("9007199254740993")}})

	if view := tbl.View(DefaultStyles()); !strings.Contains(view, "9007199254740993") {
		t.Fatalf("identifier was mangled:\n%s", view)
	}
}

func TestTableRangeFilter(t *testing.T) {
	tbl := NewTable(testNightColumns())
	tbl.SetRows(testNightRows())

	if err := tbl.SetFilter("nVisits", "100-"); err != nil {
		t.Fatal(err)
	}
	if got := len(tbl.VisibleRows()); got != 1 {
		t.Fatalf("expected 1 visible row, got %d", got)
	}
	if !strings.Contains(tbl.View(DefaultStyles()), "20260130") {
		t.Fatal("filter kept the wrong row")
	}

	// Clearing restores everything.
	if err := tbl.SetFilter("nVisits", ""); err != nil {
		t.Fatal(err)
	}
	if got := len(tbl.VisibleRows()); got != 3 {
		t.Fatalf("expected 3 visible rows after clear, got %d", got)
	}
}

func TestTableFilterOnDerivedColumn(t *testing.T) {
	tbl := NewTable(testNightColumns())
	tbl.SetRows(testNightRows())

	if err := tbl.SetFilter("ratio", "-20"); err != nil {
		t.Fatal(err)
	}
	// Ratios are 45, 0, 15; at most 20 keeps the last two.
	if got := len(tbl.VisibleRows()); got != 2 {
		t.Fatalf("expected 2 visible rows, got %d", got)
	}
}

func TestTableFilterErrors(t *testing.T) {
	tbl := NewTable(testNightColumns())
	if err := tbl.SetFilter("nAlerts", "1-2"); err == nil {
		t.Fatal("filtering a non-filterable column should fail")
	}
	if err := tbl.SetFilter("nope", "1-2"); err == nil {
		t.Fatal("filtering an unknown column should fail")
	}
	if err := tbl.SetFilter("nVisits", "abc"); err == nil {
		t.Fatal("bad expression should fail")
	}
}

func TestParseRangeFilter(t *testing.T) {
	cases := []struct {
		expr          string
		match, reject float64
	}{
		{"10-20", 15, 25},
		{"10-", 1e9, 5},
		{"-20", -100, 21},
		{"15", 15, 14},
	}
	for _, tc := range cases {
		f, err := ParseRangeFilter(tc.expr)
		if err != nil {
			t.Fatalf("ParseRangeFilter(%q): %v", tc.expr, err)
		}
		if !f.Match(tc.match) {
			t.Fatalf("%q should match %v", tc.expr, tc.match)
		}
		if f.Match(tc.reject) {
			t.Fatalf("%q should reject %v", tc.expr, tc.reject)
		}
	}

	for _, expr := range []string{"", "-", "a-b", "20-10"} {
		if _, err := ParseRangeFilter(expr); err == nil {
			t.Fatalf("ParseRangeFilter(%q) should fail", expr)
		}
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(0, 100, 4); got != "░░░░" {
		t.Fatalf("zero bar: %q", got)
	}
	if got := renderBar(100, 100, 4); got != "████" {
		t.Fatalf("full bar: %q", got)
	}
	// Small but nonzero values still show one segment.
	if got := renderBar(1, 1000, 4); !strings.HasPrefix(got, "█") {
		t.Fatalf("tiny bar should be visible: %q", got)
	}
}
