// Package model defines the entity records served by the alert archive
// display API. Identifiers are 64-bit and routinely exceed the range that is
// safe in double-precision floats, so every id field is an int64 and
// free-form query rows keep numbers as json.Number (see row.go).
package model

// Alert is a single alert packet: the triggering difference-image source,
// its history, the associated object (if any), and image cutouts.
type Alert struct {
	DiaSourceID       int64  `json:"diaSourceId"`
	ObservationReason string `json:"observation_reason,omitempty"`
	TargetName        string `json:"target_name,omitempty"`

	DiaSource           DiaSource         `json:"diaSource"`
	PrvDiaSources       []DiaSource       `json:"prvDiaSources,omitempty"`
	PrvDiaForcedSources []DiaForcedSource `json:"prvDiaForcedSources,omitempty"`
	DiaObject           *DiaObject        `json:"diaObject,omitempty"`
	SSSource            *SSSource         `json:"ssSource,omitempty"`
	MPCOrbit            *MPCOrbit         `json:"MPCORB,omitempty"`

	// Stamps around the detection. Base64 in transit, opaque bytes here;
	// the payload is a FITS image the terminal does not rasterize.
	CutoutTemplate   []byte `json:"cutoutTemplate,omitempty"`
	CutoutScience    []byte `json:"cutoutScience,omitempty"`
	CutoutDifference []byte `json:"cutoutDifference,omitempty"`
}

// Cutouts returns the stamp payloads keyed by kind, omitting absent ones.
func (a *Alert) Cutouts() map[string][]byte {
	out := make(map[string][]byte, 3)
	for kind, data := range map[string][]byte{
		"template":   a.CutoutTemplate,
		"science":    a.CutoutScience,
		"difference": a.CutoutDifference,
	} {
		if len(data) > 0 {
			out[kind] = data
		}
	}
	return out
}

// DiaSource is a difference-image detection. Nullable survey fields are
// pointers so that absent values render as missing rather than zero.
type DiaSource struct {
	DiaSourceID       int64  `json:"diaSourceId"`
	Visit             int64  `json:"visit"`
	Detector          int    `json:"detector"`
	DiaObjectID       *int64 `json:"diaObjectId,omitempty"`
	SSObjectID        *int64 `json:"ssObjectId,omitempty"`
	ParentDiaSourceID *int64 `json:"parentDiaSourceId,omitempty"`

	MidpointMjdTai float64  `json:"midpointMjdTai"`
	RA             float64  `json:"ra"`
	Dec            float64  `json:"dec"`
	RAErr          *float64 `json:"raErr,omitempty"`
	DecErr         *float64 `json:"decErr,omitempty"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`

	SNR            *float64 `json:"snr,omitempty"`
	ApFlux         *float64 `json:"apFlux,omitempty"`
	ApFluxErr      *float64 `json:"apFluxErr,omitempty"`
	PsfFlux        *float64 `json:"psfFlux,omitempty"`
	PsfFluxErr     *float64 `json:"psfFluxErr,omitempty"`
	ScienceFlux    *float64 `json:"scienceFlux,omitempty"`
	ScienceFluxErr *float64 `json:"scienceFluxErr,omitempty"`
	TemplateFlux   *float64 `json:"templateFlux,omitempty"`

	Band         *string  `json:"band,omitempty"`
	IsNegative   *bool    `json:"isNegative,omitempty"`
	IsDipole     *bool    `json:"isDipole,omitempty"`
	Extendedness *float64 `json:"extendedness,omitempty"`
	Reliability  *float64 `json:"reliability,omitempty"`
	BBoxSize     *int     `json:"bboxSize,omitempty"`

	TimeProcessedMjdTai float64  `json:"timeProcessedMjdTai"`
	TimeWithdrawnMjdTai *float64 `json:"timeWithdrawnMjdTai,omitempty"`
}

// DiaForcedSource is a forced-photometry measurement at a known position.
type DiaForcedSource struct {
	DiaForcedSourceID int64    `json:"diaForcedSourceId"`
	DiaObjectID       int64    `json:"diaObjectId"`
	RA                float64  `json:"ra"`
	Dec               float64  `json:"dec"`
	Visit             int64    `json:"visit"`
	Detector          int      `json:"detector"`
	MidpointMjdTai    float64  `json:"midpointMjdTai"`
	PsfFlux           *float64 `json:"psfFlux,omitempty"`
	PsfFluxErr        *float64 `json:"psfFluxErr,omitempty"`
	ScienceFlux       *float64 `json:"scienceFlux,omitempty"`
	ScienceFluxErr    *float64 `json:"scienceFluxErr,omitempty"`
	Band              *string  `json:"band,omitempty"`
}
