package models

// DateLayout is the calendar-date format used throughout the dataset.
const DateLayout = "2006-01-02"

// Canonical event categories. The data pipeline maps the upstream
// Portuguese taxonomy onto this set.
const (
	CategoryMarathon       = "marathon"
	CategoryHalfMarathon   = "half-marathon"
	CategoryTenK           = "10k"
	CategoryFiveK          = "5k"
	CategoryRun            = "run"
	CategoryTrail          = "trail"
	CategoryWalk           = "walk"
	CategoryCrossCountry   = "cross-country"
	CategorySaintSilvester = "saint-silvester"
	CategoryKids           = "kids"
	CategoryRelay          = "relay"
)

type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

type Event struct {
	ID               int          `json:"id" validate:"required,gt=0"`
	Name             string       `json:"name" validate:"required"`
	Date             string       `json:"date,omitempty"`
	EndDate          string       `json:"end_date,omitempty"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	Categories       []string     `json:"categories"`
	Distances        []int        `json:"distances,omitempty"`
	Location         string       `json:"location,omitempty"`
	Locality         string       `json:"locality,omitempty"`
	Country          string       `json:"country,omitempty"`
	Images           []string     `json:"images,omitempty"`
	Description      string       `json:"description,omitempty"`
	DescriptionShort string       `json:"description_short,omitempty"`
	RegistrationURL  string       `json:"registration_url,omitempty"`
}

// HasCategory reports whether the event carries the given canonical category.
func (e Event) HasCategory(category string) bool {
	for _, c := range e.Categories {
		if c == category {
			return true
		}
	}
	return false
}
