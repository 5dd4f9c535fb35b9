package keyboard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/reoring/keyboard/i18n"
	eng "github.com/reoring/keyboard/internal/engine"
)

// Document keys of a keyboard description.
const (
	FieldMatrixPositions      = "matrix_positions"
	FieldPositions            = "positions"
	FieldHands                = "hands"
	FieldFingers              = "fingers"
	FieldKeyCosts             = "key_costs"
	FieldSymmetries           = "symmetries"
	FieldUnbalancingPositions = "unbalancing_positions"
	FieldPlotTemplate         = "plot_template"
	FieldPlotTemplateShort    = "plot_template_short"
)

var fields = []string{
	FieldMatrixPositions,
	FieldPositions,
	FieldHands,
	FieldFingers,
	FieldKeyCosts,
	FieldSymmetries,
	FieldUnbalancingPositions,
	FieldPlotTemplate,
	FieldPlotTemplateShort,
}

// Fields lists every required document key in canonical order. The slice is
// a fresh copy on each call.
func Fields() []string { return slices.Clone(fields) }

// Config is the raw, row-structured keyboard description as found in a
// document. Rows of the seven key attributes are meant to line up: after
// concatenating the rows of each attribute, the i-th elements of all seven
// describe the i-th key.
type Config struct {
	MatrixPositions      [][]MatrixPosition `json:"matrix_positions" yaml:"matrix_positions"`
	Positions            [][]Position       `json:"positions" yaml:"positions"`
	Hands                [][]Hand           `json:"hands" yaml:"hands"`
	Fingers              [][]Finger         `json:"fingers" yaml:"fingers"`
	KeyCosts             [][]float64        `json:"key_costs" yaml:"key_costs"`
	Symmetries           [][]int            `json:"symmetries" yaml:"symmetries"`
	UnbalancingPositions [][]float64        `json:"unbalancing_positions" yaml:"unbalancing_positions"`
	PlotTemplate         string             `json:"plot_template" yaml:"plot_template"`
	PlotTemplateShort    string             `json:"plot_template_short" yaml:"plot_template_short"`
}

type fieldCount struct {
	name string
	n    int
}

// counts returns the flattened length of every key attribute in document order.
func (c Config) counts() []fieldCount {
	return []fieldCount{
		{FieldMatrixPositions, rowsLen(c.MatrixPositions)},
		{FieldPositions, rowsLen(c.Positions)},
		{FieldHands, rowsLen(c.Hands)},
		{FieldFingers, rowsLen(c.Fingers)},
		{FieldKeyCosts, rowsLen(c.KeyCosts)},
		{FieldSymmetries, rowsLen(c.Symmetries)},
		{FieldUnbalancingPositions, rowsLen(c.UnbalancingPositions)},
	}
}

// Validate checks the cross-field consistency of the description. Checks run
// in a fixed order and stop at the first failing class:
//
//  1. all seven attributes describe the same number of keys
//     (CodeMismatchedFieldCount);
//  2. no two keys share a matrix position (CodeDuplicateMatrixPosition);
//  3. no two keys share a spatial position (CodeDuplicatePosition).
//
// Failures are returned as Issues. A configuration with no rows at all is
// valid.
func (c Config) Validate() error {
	counts := c.counts()
	distinct := make(map[int]struct{}, len(counts))
	for _, fc := range counts {
		distinct[fc.n] = struct{}{}
	}
	if len(distinct) > 1 {
		return Issues{mismatchIssue(counts)}
	}

	if iss := duplicateIssues(FieldMatrixPositions, CodeDuplicateMatrixPosition, c.MatrixPositions); len(iss) > 0 {
		return iss
	}
	if iss := duplicateIssues(FieldPositions, CodeDuplicatePosition, c.Positions); len(iss) > 0 {
		return iss
	}
	return nil
}

func mismatchIssue(counts []fieldCount) Issue {
	params := make(map[string]any, len(counts))
	parts := make([]string, 0, len(counts))
	for _, fc := range counts {
		params[fc.name] = fc.n
		parts = append(parts, fmt.Sprintf("%s=%d", fc.name, fc.n))
	}
	return Issue{
		Path:    Root().Pointer(),
		Code:    CodeMismatchedFieldCount,
		Message: i18n.T(CodeMismatchedFieldCount, nil),
		Hint:    "keys per field: " + strings.Join(parts, ", "),
		Params:  params,
	}
}

// duplicateIssues reports every element of rows that repeats an earlier one,
// pointing at the repeated element and recording the first occurrence.
func duplicateIssues[T interface {
	comparable
	fmt.Stringer
}](field, code string, rows [][]T) Issues {
	flat := flatten(rows)
	dups := eng.FindDuplicates(flat)
	if len(dups) == 0 {
		return nil
	}
	base := Root().Field(field)
	iss := make(Issues, 0, len(dups))
	for _, d := range dups {
		r, c := locate(rows, d.Index)
		fr, fc := locate(rows, d.First)
		value := flat[d.Index].String()
		it := base.Index(r).Index(c).Issue(code, i18n.T(code, map[string]string{"value": value}),
			"first", base.Index(fr).Index(fc).Pointer(),
			"value", value,
			"index", d.Index,
			"first_index", d.First,
		)
		iss = AppendIssues(iss, it)
	}
	return iss
}

// flatten concatenates rows in row-major order.
func flatten[T any](rows [][]T) []T {
	return slices.Concat(rows...)
}

func rowsLen[T any](rows [][]T) int {
	n := 0
	for _, r := range rows {
		n += len(r)
	}
	return n
}

// locate maps a flat row-major index back to its (row, column).
func locate[T any](rows [][]T, flat int) (int, int) {
	for r, row := range rows {
		if flat < len(row) {
			return r, flat
		}
		flat -= len(row)
	}
	return -1, -1
}
