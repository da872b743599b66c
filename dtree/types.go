package dtree

// A List is a general array type which can have an arbitrary getter.
// This can be useful for avoiding contiguous slice allocations.
type List[T any] struct {
	Len int
	Get func(int) T
}

func NewListSlice[T any](s []T) List[T] {
	return List[T]{
		Len: len(s),
		Get: func(i int) T {
			return s[i]
		},
	}
}

// NewListIndices views the entries of s selected by indices, in order.
func NewListIndices[T any](s []T, indices []int) List[T] {
	return List[T]{
		Len: len(indices),
		Get: func(i int) T {
			return s[indices[i]]
		},
	}
}

// Slice copies the list into a new slice.
func (l List[T]) Slice() []T {
	res := make([]T, l.Len)
	for i := range res {
		res[i] = l.Get(i)
	}
	return res
}
