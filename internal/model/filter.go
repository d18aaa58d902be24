package model

// FilterAll is the sentinel value meaning "no restriction" on a filter axis.
const FilterAll = "all"

// Filter holds the current selection on both filter axes. Each axis is
// either FilterAll or a concrete value; there is always exactly one
// active selection per axis. Filters live for the session only and are
// never persisted.
type Filter struct {
	// Type restricts the feed to one notification type. Applied locally
	// against the already-loaded page; changing it does not refetch.
	Type string

	// Manager restricts the feed to one manager's UserID. Sent to the
	// backend as a query parameter, so changing it triggers a reload.
	Manager string
}

// DefaultFilter returns a filter with both axes open.
func DefaultFilter() Filter {
	return Filter{Type: FilterAll, Manager: FilterAll}
}

// IsAll reports whether both axes are open.
func (f Filter) IsAll() bool {
	return f.Type == FilterAll && f.Manager == FilterAll
}

// MatchesType reports whether the type axis admits the given type.
func (f Filter) MatchesType(t NotificationType) bool {
	return f.Type == FilterAll || string(t) == f.Type
}

// MatchesManager reports whether the manager axis admits the given user ID.
func (f Filter) MatchesManager(userID string) bool {
	return f.Manager == FilterAll || userID == f.Manager
}

// Matches reports whether a record passes both axes.
func (f Filter) Matches(n Notification) bool {
	return f.MatchesType(n.Type) && f.MatchesManager(n.UserID)
}
