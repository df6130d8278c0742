package model

// NightSummary is one observing night's totals as returned by
// /display/nights/list. Night is an integer date (YYYYMMDD).
type NightSummary struct {
	Night   int              `json:"night"`
	NVisits int64            `json:"nVisits"`
	NAlerts int64            `json:"nAlerts"`
	ByBand  map[string]int64 `json:"byBand,omitempty"`
}

// AlertsPerVisit is the mean number of alerts issued per visit that night.
// Nights with no visits yield 0 rather than dividing by zero.
func (n NightSummary) AlertsPerVisit() float64 {
	if n.NVisits == 0 {
		return 0
	}
	return float64(n.NAlerts) / float64(n.NVisits)
}
