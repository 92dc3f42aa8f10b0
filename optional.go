// Copyright © 2020 Yoshiki Shibata. All rights reserved.

package compgraph

import (
	"fmt"

	"github.com/wyborski/compgraph/function"
)

// Optional is a container object which may or may not contain a value.
// If a value is present, IsPresent() returns true; if no value is
// present, the object is considered empty and IsPresent() returns false.
// The zero value for Optional is an empty object ready to use.
//
// compgraph uses Optional to carry the group-walker's one-row lookahead
// (groupwalk.go): "is there a next row, and if so what is it" is exactly
// the shape Optional exists for.
type Optional[T any] struct {
	value   T
	present bool
}

// OptionalOf returns an Optional describing the given value.
func OptionalOf[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// OptionalEmpty returns an empty Optional instance.
func OptionalEmpty[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value if it is present. Otherwise, Get panics.
func (o Optional[T]) Get() T {
	if o.present {
		return o.value
	}
	panic("compgraph: value is not present")
}

// IsPresent returns true if a value is present.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// IsEmpty returns true if no value is present.
func (o Optional[T]) IsEmpty() bool {
	return !o.present
}

// IfPresent performs action with the value if one is present, otherwise
// does nothing.
func (o Optional[T]) IfPresent(action function.Consumer[T]) {
	if o.present {
		action(o.value)
	}
}

// OrElse returns the value if present, otherwise other.
func (o Optional[T]) OrElse(other T) T {
	if o.present {
		return o.value
	}
	return other
}

// String returns a non-empty string representation of this Optional
// suitable for debugging.
func (o Optional[T]) String() string {
	if o.present {
		return fmt.Sprintf("Optional[%v]", o.value)
	}
	return "Optional.empty"
}
