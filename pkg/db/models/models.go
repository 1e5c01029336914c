package models

// All lists every model auto-migrated in dev.
func All() []any {
	return []any{&CartItem{}, &Order{}}
}
