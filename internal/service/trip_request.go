package service

import (
	"strings"
)

// Defaults applied to optional trip fields.
const (
	DefaultDates         = "Flexible"
	DefaultBudget        = "Moderate budget"
	DefaultDepartureCity = "United States"
	DefaultPace          = "moderate"
)

// DefaultInterests is used when the request carries no interests.
var DefaultInterests = []string{"sightseeing", "culture", "food"}

// TripRequest is the inbound trip-planning payload.
type TripRequest struct {
	Destination     string   `json:"destination"`
	Travelers       string   `json:"travelers"`
	Duration        string   `json:"duration"`
	Dates           string   `json:"dates"`
	Budget          string   `json:"budget"`
	DepartureCity   string   `json:"departureCity"`
	Interests       []string `json:"interests"`
	Pace            string   `json:"pace"`
	SpecialRequests string   `json:"specialRequests"`
}

// MissingFields lists the absent required fields in check order:
// destination, travelers, duration. Only empty strings count as absent.
func (r TripRequest) MissingFields() []string {
	var missing []string
	if r.Destination == "" {
		missing = append(missing, "destination")
	}
	if r.Travelers == "" {
		missing = append(missing, "travelers")
	}
	if r.Duration == "" {
		missing = append(missing, "duration")
	}
	return missing
}

// Validate returns a *MissingFieldsError naming every absent required field.
func (r TripRequest) Validate() error {
	if missing := r.MissingFields(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// WithDefaults returns a copy with every empty optional field defaulted.
func (r TripRequest) WithDefaults() TripRequest {
	if r.Dates == "" {
		r.Dates = DefaultDates
	}
	if r.Budget == "" {
		r.Budget = DefaultBudget
	}
	if r.DepartureCity == "" {
		r.DepartureCity = DefaultDepartureCity
	}
	if len(r.Interests) == 0 {
		r.Interests = append([]string(nil), DefaultInterests...)
	}
	if r.Pace == "" {
		r.Pace = DefaultPace
	}
	return r
}

// InterestList joins interests with ", " for interpolation and echoing.
func (r TripRequest) InterestList() string {
	interests := r.Interests
	if len(interests) == 0 {
		interests = DefaultInterests
	}
	return strings.Join(interests, ", ")
}
