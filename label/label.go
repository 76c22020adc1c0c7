// Package label defines the label set produced by the pattern segmenters.
package label

import (
	"fmt"
)

// Labels is the per-frame output consumed by the pattern geometry
// estimator and the dataset writer.
type Labels struct {
	Detected        bool  `json:"detected" yaml:"detected"`
	Idxs            []int `json:"idxs" yaml:"idxs"`
	IdxsLimitPoints []int `json:"idxs_limit_points" yaml:"idxs_limit_points"`
}

// Miss returns the labels of a frame where the pattern was not found.
func Miss() Labels {
	return Labels{
		Detected:        false,
		Idxs:            []int{},
		IdxsLimitPoints: []int{},
	}
}

func LinearIndex(col, row, width int) int {
	return col + row*width
}

func FromLinearIndex(idx, width int) (col, row int) {
	return idx % width, idx / width
}

type InvariantError struct {
	Field string
	Index int
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("label: %s[%d]: %s", e.Field, e.Index, e.Msg)
}

// Check validates l against an index domain of [0, domain).
// If limitSubset is set, every limit point must also be in Idxs.
func (l Labels) Check(domain int, limitSubset bool) error {
	if !l.Detected {
		if len(l.Idxs) > 0 {
			return &InvariantError{Field: "idxs", Index: 0, Msg: "must be empty when not detected"}
		}
		if len(l.IdxsLimitPoints) > 0 {
			return &InvariantError{Field: "idxs_limit_points", Index: 0, Msg: "must be empty when not detected"}
		}
		return nil
	}
	solid, err := indexSet("idxs", l.Idxs, domain)
	if err != nil {
		return err
	}
	if _, err := indexSet("idxs_limit_points", l.IdxsLimitPoints, domain); err != nil {
		return err
	}
	if limitSubset {
		for i, idx := range l.IdxsLimitPoints {
			if _, ok := solid[idx]; !ok {
				return &InvariantError{Field: "idxs_limit_points", Index: i, Msg: fmt.Sprintf("%d is not in idxs", idx)}
			}
		}
	}
	return nil
}

func indexSet(field string, idxs []int, domain int) (map[int]struct{}, error) {
	set := make(map[int]struct{}, len(idxs))
	for i, idx := range idxs {
		if idx < 0 || idx >= domain {
			return nil, &InvariantError{Field: field, Index: i, Msg: fmt.Sprintf("%d out of range [0, %d)", idx, domain)}
		}
		if _, ok := set[idx]; ok {
			return nil, &InvariantError{Field: field, Index: i, Msg: fmt.Sprintf("duplicated %d", idx)}
		}
		set[idx] = struct{}{}
	}
	return set, nil
}

// Point classes of Classes.
const (
	ClassNone uint32 = iota
	ClassPattern
	ClassLimit
)

// Classes returns the class of each of n indices, for writing the labels
// as a per-point field. Limit points take precedence.
func (l Labels) Classes(n int) []uint32 {
	c := make([]uint32, n)
	for _, i := range l.Idxs {
		if i >= 0 && i < n {
			c[i] = ClassPattern
		}
	}
	for _, i := range l.IdxsLimitPoints {
		if i >= 0 && i < n {
			c[i] = ClassLimit
		}
	}
	return c
}
