package dtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// A Node is one vertex of a binary decision tree. It is either a *Branch or a
// *Leaf; no other implementations exist.
type Node[T any] interface {
	fmt.Stringer
	json.Marshaler

	// isNode mentions T so that nodes of different value types never satisfy
	// each other's interface.
	isNode(T)
}

// A Branch routes a row to LessThan when row[Feature] < Threshold, and to
// GreaterEqual otherwise. Each child is owned by exactly one branch.
type Branch[T any] struct {
	Feature   int
	Threshold float64

	LessThan     Node[T]
	GreaterEqual Node[T]
}

// A Leaf holds the terminal value returned for every row routed to it.
type Leaf[T any] struct {
	Value T
}

func (b *Branch[T]) isNode(T) {}

func (l *Leaf[T]) isNode(T) {}

// Predict walks from n down to a leaf for the given row and returns the leaf's
// value.
//
// The walk is iterative, so arbitrarily deep trees are fine. The row must have
// at least as many columns as the largest feature index in the tree.
func Predict[T any](n Node[T], row []float64) T {
	for {
		switch t := n.(type) {
		case *Leaf[T]:
			return t.Value
		case *Branch[T]:
			if row[t.Feature] < t.Threshold {
				n = t.LessThan
			} else {
				n = t.GreaterEqual
			}
		default:
			panic(fmt.Sprintf("unexpected node type: %T", n))
		}
	}
}

// Walk calls f for every node of the tree in pre-order, left before right.
//
// The depth passed to f is the number of branches on the path from the root to
// the node, counting the node itself if it is a branch. Thus the root branch
// has depth 1, matching the depth reported by a fitted estimator.
func Walk[T any](n Node[T], f func(n Node[T], depth int)) {
	type item struct {
		node  Node[T]
		depth int
	}
	stack := []item{{node: n}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch t := top.node.(type) {
		case *Leaf[T]:
			f(t, top.depth)
		case *Branch[T]:
			depth := top.depth + 1
			f(t, depth)
			stack = append(stack, item{t.GreaterEqual, depth}, item{t.LessThan, depth})
		}
	}
}

// NumLeaves counts the leaves below n.
func NumLeaves[T any](n Node[T]) int {
	var count int
	Walk(n, func(n Node[T], depth int) {
		if _, ok := n.(*Leaf[T]); ok {
			count++
		}
	})
	return count
}

// MaxDepth returns the greatest branch depth in the tree, or 0 if n is a leaf.
func MaxDepth[T any](n Node[T]) int {
	var res int
	Walk(n, func(n Node[T], depth int) {
		if depth > res {
			res = depth
		}
	})
	return res
}

// String formats the tree as nested if/else blocks, indenting each level by
// two spaces. The tree is traversed without recursion.
func (b *Branch[T]) String() string {
	return formatTree[T](b)
}

func (l *Leaf[T]) String() string {
	return fmt.Sprintf("return %v", l.Value)
}

// MarshalJSON encodes the tree as nested objects with "feature",
// "threshold", "less_than" and "greater_equal" keys.
//
// The encoding is built without recursion, but json.Marshal itself rejects
// documents nested more than 10000 levels deep, so very deep trees must call
// MarshalJSON directly.
func (b *Branch[T]) MarshalJSON() ([]byte, error) {
	return marshalTree[T](b)
}

func (l *Leaf[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value T `json:"value"`
	}{l.Value})
}

// A textItem is either a node to expand or a literal line to emit.
type textItem[T any] struct {
	node   Node[T]
	text   string
	indent int
}

func formatTree[T any](n Node[T]) string {
	var lines []string
	emit := func(indent int, text string) {
		prefix := strings.Repeat("  ", indent)
		for _, line := range strings.Split(text, "\n") {
			lines = append(lines, prefix+line)
		}
	}
	stack := []textItem[T]{{node: n}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch t := top.node.(type) {
		case nil:
			emit(top.indent, top.text)
		case *Leaf[T]:
			emit(top.indent, t.String())
		case *Branch[T]:
			emit(top.indent, fmt.Sprintf("if row[%d] < %v {", t.Feature, t.Threshold))
			stack = append(stack,
				textItem[T]{text: "}", indent: top.indent},
				textItem[T]{node: t.GreaterEqual, indent: top.indent + 1},
				textItem[T]{text: "} else {", indent: top.indent},
				textItem[T]{node: t.LessThan, indent: top.indent + 1},
			)
		}
	}
	return strings.Join(lines, "\n")
}

func marshalTree[T any](n Node[T]) ([]byte, error) {
	var buf bytes.Buffer
	stack := []textItem[T]{{node: n}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch t := top.node.(type) {
		case nil:
			buf.WriteString(top.text)
		case *Leaf[T]:
			data, err := t.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		case *Branch[T]:
			threshold, err := json.Marshal(t.Threshold)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&buf, `{"feature":%d,"threshold":%s,"less_than":`, t.Feature, threshold)
			stack = append(stack,
				textItem[T]{text: "}"},
				textItem[T]{node: t.GreaterEqual},
				textItem[T]{text: `,"greater_equal":`},
				textItem[T]{node: t.LessThan},
			)
		}
	}
	return buf.Bytes(), nil
}
