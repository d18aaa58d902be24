package model

// StatsOrigin records which computation path produced a Stats value.
// Remote and local counts may cover different universes (the backend
// aggregates over everything it knows, the local path only over the
// loaded page), so the two must never be mixed within one render cycle.
type StatsOrigin string

const (
	StatsRemote StatsOrigin = "remote"
	StatsLocal  StatsOrigin = "local"
)

// Stats holds aggregate counts over a notification set. It is derived
// state: either fetched from the backend verbatim or recomputed locally
// from the store, never independently mutated.
type Stats struct {
	// Total is the number of notifications in the counted set.
	Total int `json:"total"`

	// Unread is how many of them are not yet read.
	Unread int `json:"unread"`

	// Today is how many fall on the current local calendar day.
	Today int `json:"today"`

	// ByUser maps a manager to their notification count.
	ByUser map[string]int `json:"by_user"`

	// Origin tags which path computed these counts.
	Origin StatsOrigin `json:"-"`
}
