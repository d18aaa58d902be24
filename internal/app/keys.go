package app

import "notifeed/internal/keys"

// KeyMap aliases keys.KeyMap so the root model and its views share one
// binding table.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
