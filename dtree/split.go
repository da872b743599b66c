package dtree

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Split describes a partition of rows by a single feature threshold.
type Split struct {
	Feature   int
	Threshold float64

	// Cost is the impurity of both groups, each weighted by its share of the
	// rows.
	Cost float64

	// Left holds the rows with x[row][Feature] < Threshold, and Right holds
	// the remaining rows. Either may be empty.
	Left  []int
	Right []int
}

// BestSplit exhaustively searches for the (feature, threshold) pair with the
// lowest weighted cost over the given rows of x.
//
// Every distinct value of every feature among the rows is tried as a
// threshold. Only a strictly lower cost replaces the current best, so ties
// resolve to the lowest feature index and then the lowest threshold.
//
// The result may put every row on one side, which happens when no split
// improves on leaving the rows together. The rows must not be empty.
func BestSplit[L any](x [][]float64, y []L, rows []int, cost func(List[L]) float64) *Split {
	if len(rows) == 0 {
		panic("cannot split an empty set of rows")
	}

	numFeatures := len(x[rows[0]])
	column := make([]float64, len(rows))
	left := make([]int, 0, len(rows))
	right := make([]int, 0, len(rows))

	var best Split
	found := false
	for feature := 0; feature < numFeatures; feature++ {
		for i, row := range rows {
			column[i] = x[row][feature]
		}
		for _, threshold := range uniqueSorted(column) {
			left, right = partitionRows(x, rows, feature, threshold, left[:0], right[:0])
			c := weightedCost(y, len(rows), cost, left, right)
			if !found || c < best.Cost {
				found = true
				best.Feature = feature
				best.Threshold = threshold
				best.Cost = c
			}
		}
	}

	best.Left, best.Right = partitionRows(x, rows, best.Feature, best.Threshold, nil, nil)
	return &best
}

func partitionRows(x [][]float64, rows []int, feature int, threshold float64,
	left, right []int) ([]int, []int) {
	for _, row := range rows {
		if x[row][feature] < threshold {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	return left, right
}

func weightedCost[L any](y []L, total int, cost func(List[L]) float64, groups ...[]int) float64 {
	var res float64
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		res += cost(NewListIndices(y, group)) * (float64(len(group)) / float64(total))
	}
	return res
}

func uniqueSorted[F constraints.Float](values []F) []F {
	res := append([]F{}, values...)
	slices.Sort(res)
	return slices.Compact(res)
}
