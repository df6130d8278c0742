package model

// Bands is the survey filter set, in wavelength order.
var Bands = []string{"u", "g", "r", "i", "z", "y"}

// DiaObject aggregates the detections associated with one sky position.
// Per-band statistics arrive as flat columns (u_psfFluxMean, g_psfFluxMean,
// ...); BandStats folds them back into one row per band for display.
type DiaObject struct {
	DiaObjectID          int64    `json:"diaObjectId"`
	ValidityStartMjdTai  float64  `json:"validityStartMjdTai"`
	RA                   float64  `json:"ra"`
	Dec                  float64  `json:"dec"`
	FirstDiaSourceMjdTai *float64 `json:"firstDiaSourceMjdTai,omitempty"`
	LastDiaSourceMjdTai  *float64 `json:"lastDiaSourceMjdTai,omitempty"`
	NDiaSources          int      `json:"nDiaSources"`

	UPsfFluxMean    *float64 `json:"u_psfFluxMean,omitempty"`
	UPsfFluxMeanErr *float64 `json:"u_psfFluxMeanErr,omitempty"`
	UPsfFluxSigma   *float64 `json:"u_psfFluxSigma,omitempty"`
	UPsfFluxNdata   *int     `json:"u_psfFluxNdata,omitempty"`

	GPsfFluxMean    *float64 `json:"g_psfFluxMean,omitempty"`
	GPsfFluxMeanErr *float64 `json:"g_psfFluxMeanErr,omitempty"`
	GPsfFluxSigma   *float64 `json:"g_psfFluxSigma,omitempty"`
	GPsfFluxNdata   *int     `json:"g_psfFluxNdata,omitempty"`

	RPsfFluxMean    *float64 `json:"r_psfFluxMean,omitempty"`
	RPsfFluxMeanErr *float64 `json:"r_psfFluxMeanErr,omitempty"`
	RPsfFluxSigma   *float64 `json:"r_psfFluxSigma,omitempty"`
	RPsfFluxNdata   *int     `json:"r_psfFluxNdata,omitempty"`

	IPsfFluxMean    *float64 `json:"i_psfFluxMean,omitempty"`
	IPsfFluxMeanErr *float64 `json:"i_psfFluxMeanErr,omitempty"`
	IPsfFluxSigma   *float64 `json:"i_psfFluxSigma,omitempty"`
	IPsfFluxNdata   *int     `json:"i_psfFluxNdata,omitempty"`

	ZPsfFluxMean    *float64 `json:"z_psfFluxMean,omitempty"`
	ZPsfFluxMeanErr *float64 `json:"z_psfFluxMeanErr,omitempty"`
	ZPsfFluxSigma   *float64 `json:"z_psfFluxSigma,omitempty"`
	ZPsfFluxNdata   *int     `json:"z_psfFluxNdata,omitempty"`

	YPsfFluxMean    *float64 `json:"y_psfFluxMean,omitempty"`
	YPsfFluxMeanErr *float64 `json:"y_psfFluxMeanErr,omitempty"`
	YPsfFluxSigma   *float64 `json:"y_psfFluxSigma,omitempty"`
	YPsfFluxNdata   *int     `json:"y_psfFluxNdata,omitempty"`
}

// BandStat is the per-band view of a DiaObject's flux statistics.
type BandStat struct {
	Band        string
	FluxMean    *float64
	FluxMeanErr *float64
	FluxSigma   *float64
	NData       *int
}

// BandStats returns one entry per band that has any data, in Bands order.
func (o *DiaObject) BandStats() []BandStat {
	all := []BandStat{
		{"u", o.UPsfFluxMean, o.UPsfFluxMeanErr, o.UPsfFluxSigma, o.UPsfFluxNdata},
		{"g", o.GPsfFluxMean, o.GPsfFluxMeanErr, o.GPsfFluxSigma, o.GPsfFluxNdata},
		{"r", o.RPsfFluxMean, o.RPsfFluxMeanErr, o.RPsfFluxSigma, o.RPsfFluxNdata},
		{"i", o.IPsfFluxMean, o.IPsfFluxMeanErr, o.IPsfFluxSigma, o.IPsfFluxNdata},
		{"z", o.ZPsfFluxMean, o.ZPsfFluxMeanErr, o.ZPsfFluxSigma, o.ZPsfFluxNdata},
		{"y", o.YPsfFluxMean, o.YPsfFluxMeanErr, o.YPsfFluxSigma, o.YPsfFluxNdata},
	}
	out := make([]BandStat, 0, len(all))
	for _, s := range all {
		if s.FluxMean != nil || s.NData != nil {
			out = append(out, s)
		}
	}
	return out
}

// SummaryPlots carries the series behind an object's lightcurve and
// centroid plots.
type SummaryPlots struct {
	DiaObjectID int64             `json:"diaObjectId"`
	Lightcurve  []LightcurvePoint `json:"lightcurve"`
	Centroid    []CentroidPoint   `json:"centroid"`
}

// LightcurvePoint is one photometric measurement in an object's lightcurve.
type LightcurvePoint struct {
	DiaSourceID    int64    `json:"diaSourceId"`
	MidpointMjdTai float64  `json:"midpointMjdTai"`
	Band           string   `json:"band"`
	PsfFlux        *float64 `json:"psfFlux,omitempty"`
	PsfFluxErr     *float64 `json:"psfFluxErr,omitempty"`
	Forced         bool     `json:"forced"`
}

// CentroidPoint is a detection's offset from the object's mean position,
// in arcseconds.
type CentroidPoint struct {
	DiaSourceID    int64   `json:"diaSourceId"`
	MidpointMjdTai float64 `json:"midpointMjdTai"`
	Band           string  `json:"band"`
	RAOffset       float64 `json:"raOffset"`
	DecOffset      float64 `json:"decOffset"`
}

// TemplateImages holds the per-band template stamps for an object.
type TemplateImages struct {
	DiaObjectID int64             `json:"diaObjectId"`
	Templates   map[string][]byte `json:"templates"`
}
