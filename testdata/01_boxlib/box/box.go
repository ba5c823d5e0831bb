// Package box is a one-value container.
package box

import "example.com/boxlib/box/internal/unsafebox"

// Box holds a single value.
type Box[A any] struct {
	value A
}

// Of wraps a value.
func Of[A any](a A) Box[A] { return Box[A]{value: a} }

// Get returns the wrapped value.
func Get[A any](self Box[A]) A { return self.value }

// Set replaces the wrapped value.
func Set[A any](self Box[A], a A) Box[A] { return Box[A]{value: a} }

// Map transforms the wrapped value.
func Map[A, B any](f func(A) B) func(Box[A]) Box[B] {
	return func(self Box[A]) Box[B] { return Box[B]{value: f(self.value)} }
}

// Peek returns a copy without any checks.
func Peek[A any](self Box[A]) A { return unsafebox.Copy(self.value) }

// Empty is a box holding the zero int.
var Empty = Box[int]{}
