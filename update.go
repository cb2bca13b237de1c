package musictag

// Update is a two-variant setter input: either a value to store or an
// instruction to clear the field. Clearing removes the underlying
// native key entirely, which formats that distinguish "absent" from
// "empty" preserve on round-trip.
type Update[T any] struct {
	value T
	set   bool
}

// Set returns an Update carrying v.
func Set[T any](v T) Update[T] {
	return Update[T]{value: v, set: true}
}

// Clear returns an Update that removes the field.
func Clear[T any]() Update[T] {
	return Update[T]{}
}

// Value returns the carried value and whether the update sets (true)
// or clears (false).
func (u Update[T]) Value() (T, bool) {
	return u.value, u.set
}
