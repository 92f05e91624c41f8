package models

// SurfaceSpec describes one absorptive surface of a room design. The
// material is referenced by library id; explicit coefficients override
// the library when present.
type SurfaceSpec struct {
	MaterialID   string      `json:"material_id" required:"true" doc:"Material library identifier"`
	Area         float64     `json:"area" minimum:"0" required:"true" doc:"Surface area in m²"`
	Coefficients []BandPoint `json:"coefficients,omitempty" doc:"Per-band absorption coefficients overriding the library entry"`
}

// OpeningSpec describes a window or door cut into a host surface. The
// opening's area is deducted from the host.
type OpeningSpec struct {
	MaterialID string  `json:"material_id" required:"true" doc:"Material library identifier for the opening itself"`
	HostID     string  `json:"host_id" required:"true" doc:"Material id of the surface the opening sits in"`
	Area       float64 `json:"area" minimum:"0" required:"true" doc:"Opening area in m²"`
}

// ObjectSpec describes countable absorbers such as seats or persons,
// whose library entry carries absorption units per item.
type ObjectSpec struct {
	MaterialID string  `json:"material_id" required:"true" doc:"Material library identifier"`
	Count      float64 `json:"count" minimum:"0" required:"true" doc:"Number of items"`
}

// RoomDesign is the full input to a reverberation evaluation: geometry,
// indoor climate, the absorption inventory and the prediction setup. It
// is stored verbatim with the evaluation record.
type RoomDesign struct {
	Name        string `json:"name" maxLength:"200" doc:"Room name"`
	Description string `json:"description,omitempty" maxLength:"1000" doc:"Free-form room description"`

	Volume       float64 `json:"volume" required:"true" doc:"Room volume in m³"`
	BoundingArea float64 `json:"bounding_area,omitempty" doc:"Total bounding surface area in m²; sum of surfaces when omitted"`

	Temperature float64 `json:"temperature" doc:"Air temperature in °C"`
	Humidity    float64 `json:"humidity" minimum:"0" maximum:"100" doc:"Relative humidity in %"`
	Pressure    float64 `json:"pressure" doc:"Atmospheric pressure in kPa"`

	Surfaces []SurfaceSpec `json:"surfaces" required:"true" doc:"Absorptive surfaces"`
	Openings []OpeningSpec `json:"openings,omitempty" doc:"Windows and doors deducted from host surfaces"`
	Objects  []ObjectSpec  `json:"objects,omitempty" doc:"Countable absorbers (seats, persons)"`

	Model string `json:"model,omitempty" enum:"sabine,eyring,millington,composite" doc:"Reverberation model; composite picks per the standard's decision table when omitted"`

	Category string `json:"category,omitempty" doc:"Room usage category for target-curve compliance, e.g. 'classroom'"`
	Edition  string `json:"edition,omitempty" enum:"1998,2023" doc:"Standard edition for compliance; service default when omitted"`
}
