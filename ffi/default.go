package ffi

// Default returns the safe zero representation of a lowered type: false, 0,
// a nil pointer, or the null Buffer. It is used to fill an output slot before
// a call that may fail, so a failed call never leaves it uninitialized.
func Default[T any]() T {
	var zero T
	return zero
}
