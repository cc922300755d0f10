package models

// Distance is a directed distance between two colleges, in miles
type Distance struct {
	StartCollege string  `json:"start_college" yaml:"start_college"`
	EndCollege   string  `json:"end_college" yaml:"end_college"`
	Miles        float64 `json:"distance" yaml:"distance"`
}

// Souvenir is an item sold at a college
type Souvenir struct {
	College string  `json:"college" yaml:"college"`
	Name    string  `json:"souvenir" yaml:"souvenir"`
	Price   float64 `json:"price" yaml:"price"`
}

// TripStop is a single college on a planned trip
type TripStop struct {
	Order                   int     `json:"order" yaml:"order"`
	College                 string  `json:"college" yaml:"college"`
	DistanceFromPrevMiles   float64 `json:"distance_from_prev" yaml:"distance_from_prev"`
	CumulativeDistanceMiles float64 `json:"cumulative_distance" yaml:"cumulative_distance"`
	// KnownLeg is false when no distance was stored for the leg into this stop
	KnownLeg bool `json:"known_leg" yaml:"known_leg"`
}

// TripResult is the outcome of a trip calculation
type TripResult struct {
	Path               []string   `json:"path" yaml:"path"`
	Stops              []TripStop `json:"stops" yaml:"stops"`
	TotalDistanceMiles float64    `json:"total_distance" yaml:"total_distance"`
	UnknownLegs        int        `json:"unknown_legs" yaml:"unknown_legs"`
	Feasible           bool       `json:"feasible" yaml:"feasible"`
	Strategy           string     `json:"strategy" yaml:"strategy"`
	StatesExpanded     int        `json:"states_expanded" yaml:"states_expanded"`
}

// Start returns the first college of the trip
func (t *TripResult) Start() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[0]
}

// Visits reports whether the trip passes through the college
func (t *TripResult) Visits(college string) bool {
	for _, c := range t.Path {
		if c == college {
			return true
		}
	}
	return false
}

// Purchase is a souvenir bought on a trip
type Purchase struct {
	College  string  `json:"college"`
	Souvenir string  `json:"souvenir"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity
func (p *Purchase) Subtotal() float64 {
	return p.Price * float64(p.Quantity)
}

// DistanceListing is one row of a college's distance list
type DistanceListing struct {
	College string  `json:"college"`
	Miles   float64 `json:"distance"`
}
