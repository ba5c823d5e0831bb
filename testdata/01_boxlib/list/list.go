// Package list is an immutable list.
package list

// List is an immutable sequence.
type List[A any] struct {
	items []A
}

// From builds a list from a slice.
func From[A any](items []A) List[A] { return List[A]{items: items} }

// Make builds a list of n zero values.
func Make[A any](n int) List[A] { return List[A]{items: make([]A, n)} }

// Len returns the number of items.
func Len[A any](self List[A]) int { return len(self.items) }

// Append adds an item at the end.
func Append[A any](self List[A], a A) List[A] {
	return List[A]{items: append(append([]A(nil), self.items...), a)}
}

// Filter keeps the items matching pred.
func Filter[A any](pred func(A) bool) func(List[A]) List[A] {
	return func(self List[A]) List[A] {
		var out []A
		for _, a := range self.items {
			if pred(a) {
				out = append(out, a)
			}
		}
		return List[A]{items: out}
	}
}

// Reduce folds the list into a single value.
func Reduce[A, B any](init B, f func(B, A) B) func(List[A]) B {
	return func(self List[A]) B {
		acc := init
		for _, a := range self.items {
			acc = f(acc, a)
		}
		return acc
	}
}

// Sequence is the read-only view of a list.
type Sequence interface {
	Size() int
}
