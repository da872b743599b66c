// Package treeviz renders decision trees with Graphviz.
package treeviz

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"
	"github.com/unixpickle/dtree/dtree"
)

// Formats maps file extensions to Graphviz output formats.
var Formats = map[string]graphviz.Format{
	"dot": graphviz.Format("dot"),
	"png": graphviz.PNG,
	"svg": graphviz.SVG,
	"jpg": graphviz.JPG,
}

// ParseFormat looks up an output format by name or file extension.
func ParseFormat(name string) (graphviz.Format, error) {
	f, ok := Formats[strings.ToLower(strings.TrimPrefix(name, "."))]
	if !ok {
		return "", errors.Errorf("unknown graph format: %s", name)
	}
	return f, nil
}

// Draw builds a graph with one vertex per node of the tree. Branch vertices
// show their test and leaf vertices are boxes labeled by leafLabel.
//
// The caller must close both results.
func Draw[T any](root dtree.Node[T], featureNames []string,
	leafLabel func(T) string) (*graphviz.Graphviz, *cgraph.Graph, error) {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		gv.Close()
		return nil, nil, errors.Wrap(err, "draw tree")
	}

	type item struct {
		node   dtree.Node[T]
		parent *cgraph.Node
		label  string
	}
	stack := []item{{node: root}}
	for id := 0; len(stack) > 0; id++ {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		vertex, err := graph.CreateNode(fmt.Sprint(id))
		if err != nil {
			graph.Close()
			gv.Close()
			return nil, nil, errors.Wrap(err, "draw tree")
		}
		if top.parent != nil {
			edge, err := graph.CreateEdge("", top.parent, vertex)
			if err != nil {
				graph.Close()
				gv.Close()
				return nil, nil, errors.Wrap(err, "draw tree")
			}
			edge.SetLabel(top.label)
		}

		switch n := top.node.(type) {
		case *dtree.Leaf[T]:
			vertex.SetLabel(leafLabel(n.Value))
			vertex.SetShape(cgraph.BoxShape)
		case *dtree.Branch[T]:
			vertex.SetLabel(fmt.Sprintf("%s < %v", featureName(featureNames, n.Feature), n.Threshold))
			stack = append(stack,
				item{node: n.GreaterEqual, parent: vertex, label: "no"},
				item{node: n.LessThan, parent: vertex, label: "yes"},
			)
		}
	}
	return gv, graph, nil
}

// Render draws the tree and writes it to w in the given format.
func Render[T any](w io.Writer, root dtree.Node[T], featureNames []string,
	leafLabel func(T) string, format graphviz.Format) error {
	gv, graph, err := Draw(root, featureNames, leafLabel)
	if err != nil {
		return err
	}
	defer gv.Close()
	defer graph.Close()
	return errors.Wrap(gv.Render(graph, format, w), "render tree")
}

// ClassLabel describes a classification leaf.
func ClassLabel(p dtree.ClassPrediction) string {
	probs := make([]string, len(p.Probabilities))
	for i, x := range p.Probabilities {
		probs[i] = fmt.Sprintf("%.3f", x)
	}
	return fmt.Sprintf("class %d\n[%s]", p.Class, strings.Join(probs, " "))
}

// ValueLabel describes a regression leaf.
func ValueLabel(x float64) string {
	return fmt.Sprintf("%.4g", x)
}

func featureName(names []string, feature int) string {
	if feature < len(names) {
		return names[feature]
	}
	return fmt.Sprintf("x[%d]", feature)
}
