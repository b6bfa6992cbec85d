package outfit

// Item is a single wardrobe piece. Query is the descriptive search string
// later resolved to an illustrative image URL.
type Item struct {
	Name     string `json:"name"`
	Query    string `json:"query"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Variation is one of the three alternative styles offered per weather result.
type Variation struct {
	Style string `json:"style"`
	Items []Item `json:"items"`
}

// Recommendation is derived deterministically from a weather snapshot.
type Recommendation struct {
	Summary    string      `json:"summary"`
	Note       string      `json:"note,omitempty"`
	Variations []Variation `json:"variations"`
}
