package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a three state patch field: untouched, explicitly null, or set to a value.
//
// The zero value is untouched. In JSON an absent key stays untouched, null becomes [Null] and anything else [Some].
// Tag fields with `json:",omitzero"` so untouched fields are omitted when marshaling.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Some returns an Optional set to v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// FromPtr maps nil to [Null] and anything else to [Some].
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Null[T]()
	}
	return Some(*p)
}

// IsSet reports whether the field was present in the patch, null or not.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was explicitly set to null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// IsZero reports whether the field is untouched. Used by the omitzero JSON option.
func (o Optional[T]) IsZero() bool { return !o.set }

// Get returns the value and true when the field is set to a non-null value.
func (o Optional[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Ptr returns nil for null, a pointer to a copy of the value otherwise. Only meaningful when [Optional.IsSet].
func (o Optional[T]) Ptr() *T {
	if o.null || !o.set {
		return nil
	}
	v := o.value
	return &v
}

// Apply writes the patch onto dst: null clears it, a value replaces it, untouched leaves it alone.
func (o Optional[T]) Apply(dst **T) {
	if o.set {
		*dst = o.Ptr()
	}
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Null[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
