package weather

// Snapshot is one immutable weather observation for a location, either
// fetched live from the upstream provider or synthesized in demo mode.
type Snapshot struct {
	Location    string  `json:"location"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// Result wraps a snapshot with its provenance. DemoMode is set whenever the
// snapshot was synthesized rather than fetched, with a disclosed reason.
type Result struct {
	Snapshot   Snapshot `json:"weather"`
	DemoMode   bool     `json:"demoMode"`
	DemoReason string   `json:"demoReason,omitempty"`
}

// Config wires runtime dependencies for the weather domain.
type Config struct {
	APIKey  string
	BaseURL string
}
