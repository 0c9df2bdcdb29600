package domain

import "time"

// Review represents one user-submitted rating with optional comment,
// as fetched from a storefront. Immutable after fetch.
type Review struct {
	ID      string // store-assigned review id, stable across fetches
	Title   string
	Text    string
	Rating  string // kept as reported by the store, may be non-numeric
	Author  string
	Version string
	Region  string
	Link    string
	Updated time.Time
}
