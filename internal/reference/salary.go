package reference

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Salary model feature order. Missing values are NaN.
const (
	FeaturePosition = iota
	FeatureAge
	FeatureOvr
	FeatureSalary
	numFeatures
)

var featureNames = [numFeatures]string{"pos", "age", "ovr", "salary"}

// Features is one salary model input row: position code, age, rating and
// prior salary.
type Features [numFeatures]float64

// NewFeatures builds a feature row; nil rating or salary become NaN.
func NewFeatures(positionCode, age int, ovr, salary *float64) Features {
	f := Features{float64(positionCode), float64(age), math.NaN(), math.NaN()}
	if ovr != nil {
		f[FeatureOvr] = *ovr
	}
	if salary != nil {
		f[FeatureSalary] = *salary
	}
	return f
}

// SalaryModel predicts a player's next-contract salary.
type SalaryModel interface {
	// Predict returns ok=false when the model cannot produce a finite value.
	Predict(f Features) (float64, bool)
}

// LinearSalaryModel is intercept + Σ coef·x. NaN inputs are replaced by the
// matching Impute entry; without imputation a NaN input gives no prediction.
type LinearSalaryModel struct {
	Coef      [numFeatures]float64  `json:"coef"`
	Intercept float64               `json:"intercept"`
	Impute    *[numFeatures]float64 `json:"impute,omitempty"`
}

func (m *LinearSalaryModel) Predict(f Features) (float64, bool) {
	y := m.Intercept
	for i, x := range f {
		if math.IsNaN(x) {
			if m.Impute == nil {
				return 0, false
			}
			x = m.Impute[i]
		}
		y += m.Coef[i] * x
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	return y, true
}

// TreeNode is one node of a gradient-boosted tree dump. Leaves carry Leaf;
// split nodes route x<SplitCondition to Yes, otherwise No, and NaN to Missing.
// Both sides of the comparison are float32, matching how XGBoost stores
// features and thresholds.
type TreeNode struct {
	NodeID         int         `json:"nodeid"`
	Split          string      `json:"split,omitempty"`
	SplitCondition float64     `json:"split_condition,omitempty"`
	Yes            int         `json:"yes,omitempty"`
	No             int         `json:"no,omitempty"`
	Missing        int         `json:"missing,omitempty"`
	Children       []*TreeNode `json:"children,omitempty"`
	Leaf           *float64    `json:"leaf,omitempty"`

	feature   int
	threshold float32
	children  map[int]*TreeNode
}

// TreeEnsemble sums leaf outputs over all trees on top of BaseScore.
type TreeEnsemble struct {
	BaseScore float64     `json:"base_score"`
	Trees     []*TreeNode `json:"trees"`
}

func (m *TreeEnsemble) Predict(f Features) (float64, bool) {
	y := m.BaseScore
	for _, tree := range m.Trees {
		y += tree.eval(f)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	return y, true
}

func (n *TreeNode) eval(f Features) float64 {
	for n.Leaf == nil {
		x := f[n.feature]
		switch {
		case math.IsNaN(x):
			n = n.children[n.Missing]
		case float32(x) < n.threshold:
			n = n.children[n.Yes]
		default:
			n = n.children[n.No]
		}
	}
	return *n.Leaf
}

// compile resolves split feature names and child links, failing on any
// dangling reference so evaluation never meets a nil node.
func (n *TreeNode) compile() error {
	if n.Leaf != nil {
		return nil
	}
	feature, err := resolveFeature(n.Split)
	if err != nil {
		return fmt.Errorf("node %d: %w", n.NodeID, err)
	}
	n.feature = feature
	n.threshold = float32(n.SplitCondition)
	n.children = make(map[int]*TreeNode, len(n.Children))
	for _, c := range n.Children {
		if c == nil {
			return fmt.Errorf("node %d: nil child", n.NodeID)
		}
		n.children[c.NodeID] = c
	}
	for _, id := range []int{n.Yes, n.No, n.Missing} {
		if _, ok := n.children[id]; !ok {
			return fmt.Errorf("node %d: child %d not found", n.NodeID, id)
		}
	}
	for _, c := range n.Children {
		if err := c.compile(); err != nil {
			return err
		}
	}
	return nil
}

// resolveFeature accepts positional names ("f2") and column names ("ovr").
func resolveFeature(split string) (int, error) {
	if strings.HasPrefix(split, "f") {
		if i, err := strconv.Atoi(split[1:]); err == nil && i >= 0 && i < numFeatures {
			return i, nil
		}
	}
	for i, name := range featureNames {
		if split == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown split feature %q", split)
}

// ErrMalformedModel is returned for a salary model definition whose shape
// does not match the feature row.
var ErrMalformedModel = errors.New("malformed salary model")

type salaryModelDef struct {
	Kind      string      `json:"kind"`
	Coef      []float64   `json:"coef"`
	Intercept float64     `json:"intercept"`
	Impute    []float64   `json:"impute"`
	BaseScore float64     `json:"base_score"`
	Trees     []*TreeNode `json:"trees"`
}

// linear copies coef and impute into fixed-size vectors, rejecting any
// length other than one entry per feature.
func (d salaryModelDef) linear() (*LinearSalaryModel, error) {
	if len(d.Coef) != numFeatures {
		return nil, fmt.Errorf("%w: coef has %d entries, want %d", ErrMalformedModel, len(d.Coef), numFeatures)
	}
	m := &LinearSalaryModel{Intercept: d.Intercept}
	copy(m.Coef[:], d.Coef)
	if d.Impute != nil {
		if len(d.Impute) != numFeatures {
			return nil, fmt.Errorf("%w: impute has %d entries, want %d", ErrMalformedModel, len(d.Impute), numFeatures)
		}
		var impute [numFeatures]float64
		copy(impute[:], d.Impute)
		m.Impute = &impute
	}
	return m, nil
}

// ParseSalaryModel decodes a salary model definition: {"kind":"linear",...} or
// {"kind":"xgboost","base_score":..,"trees":[...]}.
func ParseSalaryModel(data []byte) (SalaryModel, error) {
	var def salaryModelDef
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode salary model: %w", err)
	}
	switch def.Kind {
	case "linear":
		m, err := def.linear()
		if err != nil {
			return nil, err
		}
		return m, nil
	case "xgboost", "trees":
		if len(def.Trees) == 0 {
			return nil, fmt.Errorf("%w: tree ensemble has no trees", ErrMalformedModel)
		}
		for i, tree := range def.Trees {
			if tree == nil {
				return nil, fmt.Errorf("%w: tree %d is null", ErrMalformedModel, i)
			}
			if err := tree.compile(); err != nil {
				return nil, fmt.Errorf("%w: tree %d: %v", ErrMalformedModel, i, err)
			}
		}
		return &TreeEnsemble{BaseScore: def.BaseScore, Trees: def.Trees}, nil
	default:
		return nil, fmt.Errorf("salary model: unknown kind %q", def.Kind)
	}
}
