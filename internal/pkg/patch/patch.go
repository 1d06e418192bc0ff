package patch

import "encoding/json"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Field overwrites *dst when the PATCH body carried a value for it.
func Field[T any](dst *T, src *T) {
	if dst != nil && src != nil {
		*dst = *src
	}
}

// Nullable is a PATCH field for optional values. It tells an absent key
// (keep) from an explicit null (clear) and from a value (replace).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Value[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

// UnmarshalJSON runs only when the key is present, null included.
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Apply writes the patched value, nil included, into *dst when the key was sent.
func (n Nullable[T]) Apply(dst **T) {
	if dst != nil && n.Set {
		*dst = n.Value
	}
}

// Map converts the carried value, keeping the absent and null states.
func Map[T, U any](n Nullable[T], fn func(T) U) Nullable[U] {
	if n.Value == nil {
		return Nullable[U]{Set: n.Set}
	}
	return Value(fn(*n.Value))
}
