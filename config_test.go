package keyboard

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoByTwo is two rows of two keys with every attribute consistently sized.
func twoByTwo() Config {
	return Config{
		MatrixPositions:      [][]MatrixPosition{{{0, 0}, {1, 0}}, {{0, 1}, {1, 1}}},
		Positions:            [][]Position{{{0, 0}, {1, 0}}, {{0, 1}, {1, 1}}},
		Hands:                [][]Hand{{Left, Right}, {Left, Right}},
		Fingers:              [][]Finger{{Index, Index}, {Middle, Middle}},
		KeyCosts:             [][]float64{{1, 1.5}, {2, 2.5}},
		Symmetries:           [][]int{{0, 0}, {1, 1}},
		UnbalancingPositions: [][]float64{{0, 0.1}, {0.2, 0.3}},
		PlotTemplate:         "{{0}}{{1}}\n{{2}}{{3}}\n",
		PlotTemplateShort:    "{{0}}{{1}}{{2}}{{3}}",
	}
}

// singleKeyRows builds one row per matrix position; every other attribute is
// unique per key.
func singleKeyRows(mps ...MatrixPosition) Config {
	var c Config
	for i, mp := range mps {
		c.MatrixPositions = append(c.MatrixPositions, []MatrixPosition{mp})
		c.Positions = append(c.Positions, []Position{{X: float64(i), Y: 0}})
		c.Hands = append(c.Hands, []Hand{Left})
		c.Fingers = append(c.Fingers, []Finger{Index})
		c.KeyCosts = append(c.KeyCosts, []float64{float64(i)})
		c.Symmetries = append(c.Symmetries, []int{i})
		c.UnbalancingPositions = append(c.UnbalancingPositions, []float64{0})
	}
	return c
}

func TestValidate_ConsistentConfig(t *testing.T) {
	c := twoByTwo()
	require.NoError(t, c.Validate())

	kb := Assemble(c)
	want := []Key{
		{Hand: Left, Finger: Index, MatrixPosition: MatrixPosition{0, 0}, Position: Position{0, 0}, SymmetryIndex: 0, Cost: 1, Unbalancing: 0},
		{Hand: Right, Finger: Index, MatrixPosition: MatrixPosition{1, 0}, Position: Position{1, 0}, SymmetryIndex: 0, Cost: 1.5, Unbalancing: 0.1},
		{Hand: Left, Finger: Middle, MatrixPosition: MatrixPosition{0, 1}, Position: Position{0, 1}, SymmetryIndex: 1, Cost: 2, Unbalancing: 0.2},
		{Hand: Right, Finger: Middle, MatrixPosition: MatrixPosition{1, 1}, Position: Position{1, 1}, SymmetryIndex: 1, Cost: 2.5, Unbalancing: 0.3},
	}
	if diff := cmp.Diff(want, kb.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, c.PlotTemplate, kb.PlotTemplate())
	assert.Equal(t, c.PlotTemplateShort, kb.PlotTemplateShort())
}

func TestValidate_MismatchedFieldCount(t *testing.T) {
	c := twoByTwo()
	c.KeyCosts = [][]float64{{1, 1.5}, {2}}

	err := c.Validate()
	require.ErrorIs(t, err, ErrMismatchedFieldCount)
	assert.NotErrorIs(t, err, ErrDuplicateMatrixPosition)

	iss, ok := AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, CodeMismatchedFieldCount, iss[0].Code)
	assert.Equal(t, "/", iss[0].Path)
	assert.Equal(t, 3, iss[0].Params[FieldKeyCosts])
	assert.Equal(t, 4, iss[0].Params[FieldHands])
	assert.Contains(t, iss[0].Hint, "key_costs=3")
}

func TestValidate_MismatchInAnyField(t *testing.T) {
	cut := map[string]func(*Config){
		FieldMatrixPositions:      func(c *Config) { c.MatrixPositions[1] = c.MatrixPositions[1][:1] },
		FieldPositions:            func(c *Config) { c.Positions = c.Positions[:1] },
		FieldHands:                func(c *Config) { c.Hands[0] = append(c.Hands[0], Left) },
		FieldFingers:              func(c *Config) { c.Fingers = nil },
		FieldKeyCosts:             func(c *Config) { c.KeyCosts = append(c.KeyCosts, []float64{9}) },
		FieldSymmetries:           func(c *Config) { c.Symmetries[0] = nil },
		FieldUnbalancingPositions: func(c *Config) { c.UnbalancingPositions[1] = nil },
	}
	for field, mutate := range cut {
		t.Run(field, func(t *testing.T) {
			c := twoByTwo()
			mutate(&c)
			require.ErrorIs(t, c.Validate(), ErrMismatchedFieldCount)
		})
	}
}

func TestValidate_RowShapeDoesNotMatter(t *testing.T) {
	// Same four keys, but costs given as one row: only flattened lengths count.
	c := twoByTwo()
	c.KeyCosts = [][]float64{{1, 1.5, 2, 2.5}}
	c.Symmetries = [][]int{{0}, {0, 1}, {}, {1}}
	require.NoError(t, c.Validate())
	if diff := cmp.Diff(Assemble(twoByTwo()).Keys(), Assemble(c).Keys()); diff != "" {
		t.Fatalf("row shape changed the keys (-want +got):\n%s", diff)
	}
}

func TestValidate_DuplicateMatrixPosition(t *testing.T) {
	c := twoByTwo()
	c.MatrixPositions[1][1] = MatrixPosition{0, 0}

	err := c.Validate()
	require.ErrorIs(t, err, ErrDuplicateMatrixPosition)
	iss, _ := AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, CodeDuplicateMatrixPosition, iss[0].Code)
	assert.Equal(t, "/matrix_positions/1/1", iss[0].Path)
	assert.Equal(t, "/matrix_positions/0/0", iss[0].Params["first"])
	assert.Equal(t, 3, iss[0].Params["index"])
	assert.Equal(t, 0, iss[0].Params["first_index"])
	assert.Contains(t, err.Error(), "(0,0)")
}

func TestValidate_DuplicatePosition(t *testing.T) {
	c := twoByTwo()
	c.Positions[0][1] = Position{0, 1}

	err := c.Validate()
	require.ErrorIs(t, err, ErrDuplicatePosition)
	assert.NotErrorIs(t, err, ErrDuplicateMatrixPosition)
	iss, _ := AsIssues(err)
	require.Len(t, iss, 1)
	// the later occurrence is reported, the earlier one is referenced
	assert.Equal(t, "/positions/1/0", iss[0].Path)
	assert.Equal(t, "/positions/0/1", iss[0].Params["first"])
}

func TestValidate_ReportsEveryRepeat(t *testing.T) {
	c := singleKeyRows(
		MatrixPosition{0, 0}, MatrixPosition{1, 0}, MatrixPosition{0, 0},
		MatrixPosition{1, 0}, MatrixPosition{0, 0},
	)
	iss, ok := AsIssues(c.Validate())
	require.True(t, ok)
	paths := make([]string, len(iss))
	for i, it := range iss {
		paths[i] = it.Path
	}
	assert.Equal(t, []string{"/matrix_positions/2/0", "/matrix_positions/3/0", "/matrix_positions/4/0"}, paths)
	assert.Equal(t, "/matrix_positions/0/0", iss[2].Params["first"])
}

func TestValidate_CheckOrder(t *testing.T) {
	t.Run("length mismatch wins over duplicates", func(t *testing.T) {
		c := twoByTwo()
		c.MatrixPositions[1][1] = MatrixPosition{0, 0}
		c.Positions[1][1] = Position{0, 0}
		c.Hands = c.Hands[:1]
		err := c.Validate()
		require.ErrorIs(t, err, ErrMismatchedFieldCount)
		assert.NotErrorIs(t, err, ErrDuplicateMatrixPosition)
		assert.NotErrorIs(t, err, ErrDuplicatePosition)
	})
	t.Run("matrix duplicates win over position duplicates", func(t *testing.T) {
		c := twoByTwo()
		c.MatrixPositions[1][1] = MatrixPosition{0, 0}
		c.Positions[1][1] = Position{0, 0}
		err := c.Validate()
		require.ErrorIs(t, err, ErrDuplicateMatrixPosition)
		assert.NotErrorIs(t, err, ErrDuplicatePosition)
	})
}

func TestValidate_DuplicateDetectionIsOrderIndependent(t *testing.T) {
	const n = 5
	dup := MatrixPosition{7, 7}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			t.Run(fmt.Sprintf("rows_%d_%d", i, j), func(t *testing.T) {
				mps := make([]MatrixPosition, n)
				for k := range mps {
					mps[k] = MatrixPosition{uint8(k), 0}
				}
				mps[i], mps[j] = dup, dup
				err := singleKeyRows(mps...).Validate()
				require.ErrorIs(t, err, ErrDuplicateMatrixPosition)
				iss, _ := AsIssues(err)
				require.Len(t, iss, 1)
				assert.Equal(t, fmt.Sprintf("/matrix_positions/%d/0", j), iss[0].Path)
			})
		}
	}
}

func TestValidate_Empty(t *testing.T) {
	var c Config
	require.NoError(t, c.Validate())
	kb := Assemble(c)
	assert.Equal(t, 0, kb.Len())
	assert.Empty(t, kb.Keys())

	// empty rows are still zero keys everywhere
	c = Config{
		MatrixPositions: [][]MatrixPosition{{}},
		Hands:           [][]Hand{{}, {}},
	}
	require.NoError(t, c.Validate())
	assert.Equal(t, 0, Assemble(c).Len())
}

func TestValidate_FloatEquality(t *testing.T) {
	c := twoByTwo()
	// +0 and -0 are the same coordinate
	negZero := math.Copysign(0, -1)
	c.Positions[0][0] = Position{0, 0}
	c.Positions[1][1] = Position{negZero, 0}
	require.ErrorIs(t, c.Validate(), ErrDuplicatePosition)
}

func TestAssemble_Idempotent(t *testing.T) {
	c := twoByTwo()
	a, b := Assemble(c), Assemble(c)
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Keyboard{})); diff != "" {
		t.Fatalf("assemble is not deterministic (-a +b):\n%s", diff)
	}
}

func TestAssemble_DoesNotAliasConfig(t *testing.T) {
	c := twoByTwo()
	kb := Assemble(c)
	c.MatrixPositions[0][0] = MatrixPosition{9, 9}
	c.KeyCosts[0][0] = 42
	assert.Equal(t, MatrixPosition{0, 0}, kb.Key(0).MatrixPosition)
	assert.Equal(t, 1.0, kb.Key(0).Cost)
}

func TestFromConfig(t *testing.T) {
	kb, err := FromConfig(twoByTwo())
	require.NoError(t, err)
	assert.Equal(t, 4, kb.Len())

	bad := twoByTwo()
	bad.Positions[1][1] = Position{0, 0}
	kb, err = FromConfig(bad)
	require.ErrorIs(t, err, ErrDuplicatePosition)
	assert.Nil(t, kb)
}

func TestIssues_Error(t *testing.T) {
	iss := Issues{
		{Path: "/a", Code: CodeDuplicatePosition, Message: "m1"},
		{Path: "/b", Code: CodeDuplicatePosition, Message: "m2"},
		{Path: "/c", Code: CodeDuplicatePosition, Message: "m3"},
		{Path: "/d", Code: CodeDuplicatePosition, Message: "m4"},
	}
	assert.Equal(t, "m1 at /a; m2 at /b; m3 at /c; ... (total 4)", iss.Error())
	assert.Equal(t, "duplicate position", Issue{Code: CodeDuplicatePosition}.Error())

	var wrapped error = fmt.Errorf("load: %w", iss)
	got, ok := AsIssues(wrapped)
	require.True(t, ok)
	assert.Len(t, got, 4)
	assert.True(t, errors.Is(wrapped, ErrDuplicatePosition))

	_, ok = AsIssues(nil)
	assert.False(t, ok)
}
