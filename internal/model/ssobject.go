package model

// SSObject is a solar-system object: its MPC designation, the most recent
// orbit solution, and the detections linked to it.
type SSObject struct {
	SSObjectID  int64          `json:"ssObjectId"`
	Designation *string        `json:"designation,omitempty"`
	Orbit       *MPCOrbit      `json:"MPCORB,omitempty"`
	SSSource    *SSSource      `json:"ssSource,omitempty"`
	Sources     []LinkedSource `json:"sources,omitempty"`
}

// LinkedSource is a detection attributed to a solar-system object.
type LinkedSource struct {
	DiaSourceID    int64   `json:"diaSourceId"`
	MidpointMjdTai float64 `json:"midpointMjdTai"`
	RA             float64 `json:"ra"`
	Dec            float64 `json:"dec"`
}

// SSSource holds the solar-system geometry of a single detection.
type SSSource struct {
	SSObjectID          *int64   `json:"ssObjectId,omitempty"`
	DiaSourceID         *int64   `json:"diaSourceId,omitempty"`
	EclipticLambda      *float64 `json:"eclipticLambda,omitempty"`
	EclipticBeta        *float64 `json:"eclipticBeta,omitempty"`
	GalacticL           *float64 `json:"galacticL,omitempty"`
	GalacticB           *float64 `json:"galacticB,omitempty"`
	PhaseAngle          *float64 `json:"phaseAngle,omitempty"`
	HeliocentricDist    *float64 `json:"heliocentricDist,omitempty"`
	TopocentricDist     *float64 `json:"topocentricDist,omitempty"`
	PredictedVMagnitude *float64 `json:"predictedVMagnitude,omitempty"`
	ResidualRA          *float64 `json:"residualRa,omitempty"`
	ResidualDec         *float64 `json:"residualDec,omitempty"`
}

// MPCOrbit is a Minor Planet Center orbit solution.
type MPCOrbit struct {
	MPCDesignation *string  `json:"mpcDesignation,omitempty"`
	SSObjectID     *int64   `json:"ssObjectId,omitempty"`
	H              *float64 `json:"mpcH,omitempty"`
	Epoch          *float64 `json:"epoch,omitempty"`
	MeanAnomaly    *float64 `json:"M,omitempty"`
	ArgPerihelion  *float64 `json:"peri,omitempty"`
	AscendingNode  *float64 `json:"node,omitempty"`
	Inclination    *float64 `json:"incl,omitempty"`
	Eccentricity   *float64 `json:"e,omitempty"`
	SemimajorAxis  *float64 `json:"a,omitempty"`
	PerihelionDist *float64 `json:"q,omitempty"`
	PerihelionTime *float64 `json:"t_p,omitempty"`
}
