package model

// AlertQuery is the body of POST /display/alerts/query: a list of columns to
// include (dotted paths into the alert packet, e.g. "diaSource.ra"), a SQL-ish
// condition string evaluated server-side, and optional row limit and cone
// constraint.
type AlertQuery struct {
	Include   []string `json:"include"`
	Condition string   `json:"condition"`
	Limit     int      `json:"limit,omitempty"`
	Location  *Cone    `json:"location,omitempty"`
}

// Cone is a small-circle sky constraint in degrees (J2000).
type Cone struct {
	RA     float64 `json:"ra"`
	Dec    float64 `json:"dec"`
	Radius float64 `json:"radius"`
}
