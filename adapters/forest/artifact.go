// Package forest loads a serialized random-forest artifact and serves
// probability predictions from it. The artifact is read once at process
// start and the resulting Forest is immutable: predictions only walk the
// tree structures, so one handle is safely shared across requests.
package forest

import (
	"encoding/json"
	"fmt"
	"os"

	"crimerisk/domain/encoding"
	"crimerisk/internal/errors"
)

// Artifact is the on-disk JSON layout of a trained forest.
type Artifact struct {
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	ModelType     string   `json:"model_type"`
	PositiveClass string   `json:"positive_class"`
	Classes       []int    `json:"classes"`
	FeatureNames  []string `json:"feature_names"`
	Trees         []Tree   `json:"trees"`
}

// Tree is a flattened decision tree: nodes reference each other by index.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is either a split (Feature >= 0) or a leaf (Feature == -1, Counts
// holding per-class training sample counts).
type Node struct {
	Feature   int        `json:"feature"`
	Threshold float64    `json:"threshold"`
	Left      int        `json:"left"`
	Right     int        `json:"right"`
	Counts    [2]float64 `json:"counts"`
}

// Leaf reports whether the node terminates a path.
func (n Node) Leaf() bool {
	return n.Feature < 0
}

// Forest is the loaded, validated classifier handle.
type Forest struct {
	artifact Artifact
}

// Load reads and validates the model artifact at path. Any failure here
// is a provisioning error: the process cannot predict without the
// artifact, so callers should treat it as fatal.
func Load(path string) (*Forest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ModelProvisioning(
			fmt.Sprintf("model artifact not readable at %s", path), err)
	}

	var art Artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, errors.ModelProvisioning(
			fmt.Sprintf("model artifact at %s is not valid JSON", path), err)
	}

	if err := validate(art); err != nil {
		return nil, errors.ModelProvisioning(
			fmt.Sprintf("model artifact at %s failed validation", path), err)
	}

	return &Forest{artifact: art}, nil
}

// validate enforces the contract the encoder depends on: a binary
// classifier over exactly the canonical 16 columns, in order.
func validate(art Artifact) error {
	if len(art.Classes) != 2 || art.Classes[0] != 0 || art.Classes[1] != 1 {
		return fmt.Errorf("expected binary classes [0,1], got %v", art.Classes)
	}
	if len(art.FeatureNames) != encoding.Width {
		return fmt.Errorf("expected %d feature names, got %d",
			encoding.Width, len(art.FeatureNames))
	}
	for i, name := range art.FeatureNames {
		if name != encoding.FeatureNames[i] {
			return fmt.Errorf("feature column %d is %q, expected %q",
				i, name, encoding.FeatureNames[i])
		}
	}
	if len(art.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}
	for ti, tree := range art.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Leaf() {
				if node.Counts[0]+node.Counts[1] <= 0 {
					return fmt.Errorf("tree %d leaf %d has empty class counts", ti, ni)
				}
				continue
			}
			if node.Feature >= encoding.Width {
				return fmt.Errorf("tree %d node %d splits on feature %d, vector width is %d",
					ti, ni, node.Feature, encoding.Width)
			}
			if node.Left < 0 || node.Left >= len(tree.Nodes) ||
				node.Right < 0 || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has child index out of range", ti, ni)
			}
		}
	}
	return nil
}
