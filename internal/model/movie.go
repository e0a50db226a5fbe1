package model

// Movie is a catalog record keyed by movie ID.
type Movie struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Rating   float64 `json:"rating"`
	Director string  `json:"director,omitempty"`
	URI      string  `json:"uri,omitempty"`
}
