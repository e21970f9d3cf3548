package forest

import (
	"github.com/montanaflynn/stats"
	gstat "gonum.org/v1/gonum/stat"

	"crimerisk/ports"
)

// EnsembleDiagnostics summarizes per-tree depth and leaf counts across
// the forest. Structure-only: it never touches input data, so it is safe
// to expose on the model-info endpoint.
func (f *Forest) EnsembleDiagnostics() (ports.EnsembleDiagnostics, error) {
	depths := make([]float64, len(f.artifact.Trees))
	leaves := make([]float64, len(f.artifact.Trees))

	for i := range f.artifact.Trees {
		t := &f.artifact.Trees[i]
		depths[i] = float64(treeDepth(t, 0))
		leaves[i] = float64(leafCount(t))
	}

	depthDist, err := summarize(depths)
	if err != nil {
		return ports.EnsembleDiagnostics{}, err
	}
	leafDist, err := summarize(leaves)
	if err != nil {
		return ports.EnsembleDiagnostics{}, err
	}

	return ports.EnsembleDiagnostics{
		TreeDepth: depthDist,
		LeafCount: leafDist,
	}, nil
}

func summarize(data []float64) (ports.Distribution, error) {
	dist := ports.Distribution{}

	median, err := stats.Median(data)
	if err != nil {
		return dist, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return dist, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return dist, err
	}
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		return dist, err
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		return dist, err
	}

	mean, std := gstat.MeanStdDev(data, nil)

	dist.Mean = mean
	dist.StdDev = std
	dist.Median = median
	dist.Min = min
	dist.Max = max
	dist.Q25 = q25
	dist.Q75 = q75
	return dist, nil
}

// treeDepth walks from node idx to the deepest leaf below it. Load-time
// validation already rejected out-of-range child indices.
func treeDepth(t *Tree, idx int) int {
	node := t.Nodes[idx]
	if node.Leaf() {
		return 0
	}
	left := treeDepth(t, node.Left)
	right := treeDepth(t, node.Right)
	if left > right {
		return left + 1
	}
	return right + 1
}

func leafCount(t *Tree) int {
	count := 0
	for _, node := range t.Nodes {
		if node.Leaf() {
			count++
		}
	}
	return count
}
