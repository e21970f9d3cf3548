package forest

import (
	"fmt"

	"crimerisk/domain/encoding"
	"crimerisk/internal/errors"
	"crimerisk/ports"
)

// PredictProbability averages the leaf class distributions of every tree
// for the given vector, returning (P(class 0), P(class 1)). Stateless per
// call: nothing in the forest is mutated.
func (f *Forest) PredictProbability(v encoding.FeatureVector) (float64, float64, error) {
	var sumPos float64
	for ti := range f.artifact.Trees {
		pPos, err := walkTree(&f.artifact.Trees[ti], v)
		if err != nil {
			return 0, 0, errors.Inference(
				fmt.Sprintf("tree %d rejected the feature vector", ti), err)
		}
		sumPos += pPos
	}
	pPos := sumPos / float64(len(f.artifact.Trees))
	return 1 - pPos, pPos, nil
}

// walkTree follows splits from the root to a leaf and returns the leaf's
// positive-class fraction. The step budget guards against cyclic node
// references in a corrupt artifact.
func walkTree(t *Tree, v encoding.FeatureVector) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.Leaf() {
			total := node.Counts[0] + node.Counts[1]
			return node.Counts[1] / total, nil
		}
		if v[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0, fmt.Errorf("no leaf reached after %d steps", len(t.Nodes))
}

// Info describes the loaded artifact.
func (f *Forest) Info() ports.ModelInfo {
	return ports.ModelInfo{
		Name:          f.artifact.Name,
		Version:       f.artifact.Version,
		ModelType:     f.artifact.ModelType,
		TreeCount:     len(f.artifact.Trees),
		FeatureNames:  f.artifact.FeatureNames,
		PositiveClass: f.artifact.PositiveClass,
	}
}

var _ ports.ClassifierPort = (*Forest)(nil)
var _ ports.EnsembleDiagnoserPort = (*Forest)(nil)
