package dtree

import "github.com/unixpickle/essentials"

// builder grows a tree from the root down, one branch at a time.
//
// Pending branches live on an explicit stack rather than the call stack, so
// the depth of the tree is limited only by memory.
type builder[L any, T any] struct {
	X    [][]float64
	Y    []L
	Loss SplitLoss[L, T]

	MaxDepth        int
	MinSamplesSplit int

	// Depth is the greatest depth of any branch created so far.
	Depth int
}

type growTask[T any] struct {
	Branch *Branch[T]
	Split  *Split
	Depth  int
}

// Build splits the given rows at the root, then grows both sides until every
// path ends in a leaf.
func (b *builder[L, T]) Build(rows []int) Node[T] {
	split := BestSplit(b.X, b.Y, rows, b.Loss.Cost)
	root := newBranch[T](split)

	stack := []*growTask[T]{{Branch: root, Split: split, Depth: 1}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.Depth = essentials.MaxInt(b.Depth, task.Depth)

		left, right := task.Split.Left, task.Split.Right
		if len(left) == 0 || len(right) == 0 {
			// No threshold separated the rows, so both sides predict the
			// whole group.
			all := append(append([]int{}, left...), right...)
			task.Branch.LessThan = b.leaf(all)
			task.Branch.GreaterEqual = b.leaf(all)
			continue
		}
		if b.MaxDepth > 0 && task.Depth >= b.MaxDepth {
			task.Branch.LessThan = b.leaf(left)
			task.Branch.GreaterEqual = b.leaf(right)
			continue
		}

		var leftTask, rightTask *growTask[T]
		task.Branch.LessThan, leftTask = b.child(left, task.Depth+1)
		task.Branch.GreaterEqual, rightTask = b.child(right, task.Depth+1)

		// Push right first so the left subtree is grown first.
		if rightTask != nil {
			stack = append(stack, rightTask)
		}
		if leftTask != nil {
			stack = append(stack, leftTask)
		}
	}

	return root
}

func (b *builder[L, T]) child(rows []int, depth int) (Node[T], *growTask[T]) {
	if len(rows) <= b.MinSamplesSplit {
		return b.leaf(rows), nil
	}
	split := BestSplit(b.X, b.Y, rows, b.Loss.Cost)
	branch := newBranch[T](split)
	return branch, &growTask[T]{Branch: branch, Split: split, Depth: depth}
}

func (b *builder[L, T]) leaf(rows []int) *Leaf[T] {
	return &Leaf[T]{Value: b.Loss.Predict(NewListIndices(b.Y, rows))}
}

func newBranch[T any](split *Split) *Branch[T] {
	return &Branch[T]{
		Feature:   split.Feature,
		Threshold: split.Threshold,
	}
}
