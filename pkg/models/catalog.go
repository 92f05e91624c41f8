package models

// RoomTypeInfo describes one usage category of the target-curve registry.
type RoomTypeInfo struct {
	Category   string  `json:"category" doc:"Category identifier, e.g. 'classroom'"`
	LimitClass string  `json:"limit_class" doc:"Annex table the tolerance limits come from"`
	VolumeMin  float64 `json:"volume_min,omitempty" doc:"Lower bound of the valid volume range in m³"`
	VolumeMax  float64 `json:"volume_max,omitempty" doc:"Upper bound of the valid volume range in m³"`
}

// ListRoomTypesRequest represents a request to list usage categories
type ListRoomTypesRequest struct {
	Edition string `query:"edition" enum:"1998,2023" doc:"Standard edition; service default when omitted"`
}

// ListRoomTypesResponse represents the registered usage categories
type ListRoomTypesResponse struct {
	Body struct {
		Edition   string         `json:"edition" doc:"Standard edition the categories come from"`
		RoomTypes []RoomTypeInfo `json:"room_types" doc:"Registered usage categories"`
	}
}

// GetRoomTypeTargetRequest represents a request for a category's target envelope
type GetRoomTypeTargetRequest struct {
	Category string  `path:"category" doc:"Usage category identifier"`
	Edition  string  `query:"edition" enum:"1998,2023" doc:"Standard edition; service default when omitted"`
	Volume   float64 `query:"volume" required:"true" doc:"Room volume in m³"`
}

// GetRoomTypeTargetResponseBody is the body of the target envelope response
type GetRoomTypeTargetResponseBody struct {
	Category      string      `json:"category" doc:"Usage category identifier"`
	Edition       string      `json:"edition" doc:"Standard edition"`
	OptimalLow    float64     `json:"optimal_low" doc:"Lower optimal T60 at the given volume, in seconds"`
	OptimalHigh   float64     `json:"optimal_high" doc:"Upper optimal T60 at the given volume, in seconds"`
	UpperLimit    []BandPoint `json:"upper_limit" doc:"Upper envelope bound per band, in seconds; ungoverned bands omitted"`
	LowerLimit    []BandPoint `json:"lower_limit" doc:"Lower envelope bound per band, in seconds; ungoverned bands omitted"`
	VolumeWarning string      `json:"volume_warning,omitempty" doc:"Set when the volume lies outside the category's valid range"`
}

// GetRoomTypeTargetResponse represents a category's target envelope at a volume
type GetRoomTypeTargetResponse struct {
	Body GetRoomTypeTargetResponseBody
}

// MaterialInfo describes one material library entry on the wire.
type MaterialInfo struct {
	ID           string      `json:"id" doc:"Material identifier"`
	Name         string      `json:"name" doc:"Material display name"`
	Coefficients []BandPoint `json:"coefficients" doc:"Per-band absorption coefficients"`
}

// ListMaterialsResponse represents the material library listing
type ListMaterialsResponse struct {
	Body struct {
		Materials []MaterialInfo `json:"materials" doc:"Registered absorption materials"`
	}
}

// GetMaterialRequest represents a request for one material entry
type GetMaterialRequest struct {
	ID string `path:"id" doc:"Material identifier"`
}

// GetMaterialResponse represents one material library entry
type GetMaterialResponse struct {
	Body MaterialInfo
}
