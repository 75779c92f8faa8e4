package artifact

import (
	"errors"
	"fmt"
)

// TreeNode is one node of a flattened binary decision tree. Node 0 is the
// root; children are indexes into the same slice.
type TreeNode struct {
	FeatureIdx  int      `json:"feature_idx" yaml:"feature_idx"`
	Threshold   float64  `json:"threshold" yaml:"threshold"`
	LeftChild   int      `json:"left_child" yaml:"left_child"`
	RightChild  int      `json:"right_child" yaml:"right_child"`
	ClassLabel  int      `json:"class_label" yaml:"class_label"`
	IsLeaf      bool     `json:"is_leaf" yaml:"is_leaf"`
	Probability *float64 `json:"probability,omitempty" yaml:"probability,omitempty"`
}

type decisionTree struct {
	contract
	nodes []TreeNode
}

func newDecisionTree(c contract, nodes []TreeNode) (*decisionTree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("decision tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if node.Probability != nil && (*node.Probability < 0 || *node.Probability > 1) {
				return nil, fmt.Errorf("node %d: probability %v outside [0,1]", i, *node.Probability)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(c.names) {
			return nil, fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) || node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("node %d: child index out of range", i)
		}
	}
	return &decisionTree{contract: c, nodes: nodes}, nil
}

func (dt *decisionTree) ModelType() string {
	return ModelTypeDecisionTree
}

func (dt *decisionTree) Predict(vector []float64) (int, error) {
	leaf, err := dt.leaf(vector)
	if err != nil {
		return 0, err
	}
	return leaf.ClassLabel, nil
}

// PredictProbability returns the churn probability stored on the reached
// leaf. Leaves without one score 1 for the churn label and 0 otherwise.
func (dt *decisionTree) PredictProbability(vector []float64) (float64, error) {
	leaf, err := dt.leaf(vector)
	if err != nil {
		return 0, err
	}
	if leaf.Probability != nil {
		return *leaf.Probability, nil
	}
	if leaf.ClassLabel == 1 {
		return 1, nil
	}
	return 0, nil
}

func (dt *decisionTree) leaf(vector []float64) (TreeNode, error) {
	if err := dt.checkWidth(vector); err != nil {
		return TreeNode{}, err
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if vector[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
