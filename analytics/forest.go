package analytics

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"
)

// ForestConfig controls the regression forest.
type ForestConfig struct {
	Trees    int    // number of bootstrap trees
	MaxDepth int    // 0 grows until leaves are pure or too small
	MinLeaf  int    // minimum samples per leaf
	Seed     uint64 // bootstrap seed; equal seeds give equal forests
}

// DefaultForestConfig mirrors the usual random-forest defaults.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 100, MaxDepth: 0, MinLeaf: 1, Seed: 42}
}

func (c ForestConfig) normalized() ForestConfig {
	if c.Trees <= 0 {
		c.Trees = 100
	}
	if c.MinLeaf <= 0 {
		c.MinLeaf = 1
	}
	return c
}

var errNoSamples = errors.New("regression forest: no samples")

// RegressionForest is an ensemble of CART regression trees, each grown on a
// bootstrap sample with variance-reduction splits. Predictions average the
// trees.
type RegressionForest struct {
	cfg   ForestConfig
	trees []*treeNode
}

type treeNode struct {
	feature   int
	threshold float64
	value     float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) leaf() bool { return n.left == nil }

// NewRegressionForest returns an unfitted forest.
func NewRegressionForest(cfg ForestConfig) *RegressionForest {
	return &RegressionForest{cfg: cfg.normalized()}
}

// Fit grows the forest on the feature rows x and targets y.
func (f *RegressionForest) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return errNoSamples
	}
	rng := rand.New(rand.NewPCG(f.cfg.Seed, f.cfg.Seed^0x9e3779b97f4a7c15))

	f.trees = make([]*treeNode, 0, f.cfg.Trees)
	for range f.cfg.Trees {
		sample := make([]int, len(x))
		for i := range sample {
			sample[i] = rng.IntN(len(x))
		}
		f.trees = append(f.trees, f.grow(x, y, sample, 0))
	}
	return nil
}

// Predict averages the trees' predictions for the feature row v.
// An unfitted forest predicts 0.
func (f *RegressionForest) Predict(v []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.trees {
		n := t
		for !n.leaf() {
			if v[n.feature] <= n.threshold {
				n = n.left
			} else {
				n = n.right
			}
		}
		sum += n.value
	}
	return sum / float64(len(f.trees))
}

func (f *RegressionForest) grow(x [][]float64, y []float64, idx []int, depth int) *treeNode {
	mean, sse := meanSSE(y, idx)
	node := &treeNode{value: mean}

	if sse <= 1e-12 || len(idx) < 2*f.cfg.MinLeaf {
		return node
	}
	if f.cfg.MaxDepth > 0 && depth >= f.cfg.MaxDepth {
		return node
	}

	feature, threshold, ok := f.bestSplit(x, y, idx, sse)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	node.feature = feature
	node.threshold = threshold
	node.left = f.grow(x, y, left, depth+1)
	node.right = f.grow(x, y, right, depth+1)
	return node
}

// bestSplit scans every feature for the threshold with the lowest summed
// squared error of the two children. It only accepts strict improvements.
func (f *RegressionForest) bestSplit(x [][]float64, y []float64, idx []int, parentSSE float64) (int, float64, bool) {
	bestFeature, bestThreshold := -1, 0.0
	bestSSE := parentSSE - 1e-12

	order := make([]int, len(idx))
	for feature := range x[idx[0]] {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return x[order[a]][feature] < x[order[b]][feature] })

		var totalSum, totalSq float64
		for _, i := range order {
			totalSum += y[i]
			totalSq += y[i] * y[i]
		}

		var leftSum, leftSq float64
		n := len(order)
		for k := 0; k < n-1; k++ {
			yi := y[order[k]]
			leftSum += yi
			leftSq += yi * yi

			nl, nr := k+1, n-k-1
			if nl < f.cfg.MinLeaf || nr < f.cfg.MinLeaf {
				continue
			}
			cur, next := x[order[k]][feature], x[order[k+1]][feature]
			if cur == next {
				continue
			}
			rightSum, rightSq := totalSum-leftSum, totalSq-leftSq
			sse := (leftSq - leftSum*leftSum/float64(nl)) + (rightSq - rightSum*rightSum/float64(nr))
			if sse < bestSSE {
				bestSSE = sse
				bestFeature = feature
				bestThreshold = cur + (next-cur)/2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func meanSSE(y []float64, idx []int) (mean, sse float64) {
	if len(idx) == 0 {
		return 0, 0
	}
	for _, i := range idx {
		mean += y[i]
	}
	mean /= float64(len(idx))
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return mean, math.Max(sse, 0)
}
