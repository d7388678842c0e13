package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, g *Grid, cells ...[3]int) {
	t.Helper()
	for _, c := range cells {
		require.NoError(t, g.SetValue(c[0], c[1], c[2]))
	}
}

func mustValue(t *testing.T, g *Grid, row, col int) int {
	t.Helper()
	v, err := g.Value(row, col)
	require.NoError(t, err)
	return v
}

func TestNewGridIsZeroed(t *testing.T) {
	g := New(3, 3)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 3, g.Cols())
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			assert.Zero(t, mustValue(t, g, r, c))
		}
	}
}

func TestSetAndGetValue(t *testing.T) {
	g := New(3, 3)
	mustSet(t, g, [3]int{0, 0, 1}, [3]int{1, 1, 2}, [3]int{2, 2, 3})

	assert.Equal(t, 1, mustValue(t, g, 0, 0))
	assert.Equal(t, 2, mustValue(t, g, 1, 1))
	assert.Equal(t, 3, mustValue(t, g, 2, 2))
	assert.Equal(t, 0, mustValue(t, g, 1, 2))
}

func TestBoundsChecks(t *testing.T) {
	g := New(3, 3)
	_, err := g.Cell(0, 0)
	require.NoError(t, err)
	_, err = g.Cell(2, 2)
	require.NoError(t, err)

	for _, p := range []Coord{{3, 3}, {-1, 0}, {0, 3}, {3, 0}, {0, -1}} {
		_, err := g.Cell(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfRange, "Cell%v", p)
		_, err = g.Value(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfRange, "Value%v", p)
		assert.ErrorIs(t, g.SetValue(p.Row, p.Col, 1), ErrOutOfRange, "SetValue%v", p)
	}
}

func TestCellReferenceWritesThrough(t *testing.T) {
	g := New(3, 3)
	c, err := g.Cell(0, 0)
	require.NoError(t, err)
	c.SetValue(123)
	assert.Equal(t, 123, mustValue(t, g, 0, 0))
}

func TestEmptyGrid(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {0, 5}, {4, 0}, {-1, 3}} {
		g := New(dims[0], dims[1])
		assert.True(t, g.Empty())
		assert.Equal(t, 0, g.Rows())
		assert.Equal(t, 0, g.Cols())
		assert.Equal(t, "", g.String())
		assert.Empty(t, g.Regions())
		assert.False(t, g.Update())
		_, err := g.Value(0, 0)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestString(t *testing.T) {
	g := New(2, 3)
	assert.Equal(t, "0 0 0 \n0 0 0 \n", g.String())

	mustSet(t, g, [3]int{0, 0, 1}, [3]int{0, 1, 2}, [3]int{1, 2, 3})
	assert.Equal(t, "1 2 0 \n0 0 3 \n", g.String())

	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			mustSet(t, g, [3]int{r, c, 4})
		}
	}
	assert.Equal(t, "4 4 4 \n4 4 4 \n", g.String())
}

func TestStringDependsOnlyOnValues(t *testing.T) {
	a := New(2, 2)
	b := New(2, 2)
	mustSet(t, a, [3]int{0, 1, 1}, [3]int{1, 0, 7})
	mustSet(t, b, [3]int{1, 0, 7}, [3]int{0, 1, 1})
	assert.Equal(t, a.String(), b.String())
	assert.True(t, a.Equal(b))

	// Same values, different shape.
	assert.NotEqual(t, New(1, 4).String(), New(2, 2).String())
}

func TestFromValues(t *testing.T) {
	g, err := FromValues([][]int{{1, 0, 2}, {0, 3, 0}})
	require.NoError(t, err)
	assert.Equal(t, "1 0 2 \n0 3 0 \n", g.String())
	if diff := cmp.Diff([][]int{{1, 0, 2}, {0, 3, 0}}, g.Values()); diff != "" {
		t.Fatalf("Values mismatch (-want +got):\n%s", diff)
	}

	_, err = FromValues([][]int{{1, 0}, {1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	g, err = FromValues(nil)
	require.NoError(t, err)
	assert.True(t, g.Empty())

	_, err = FromValues([][]int{{}, {1, 1}})
	assert.ErrorIs(t, err, ErrInvalidArgument, "empty first row with data below")

	g, err = FromValues([][]int{{}, {}})
	require.NoError(t, err)
	assert.True(t, g.Empty())
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(2, 2)
	mustSet(t, g, [3]int{0, 0, 1})
	cp := g.Clone()
	mustSet(t, g, [3]int{0, 0, 5}, [3]int{1, 1, 1})

	assert.Equal(t, 1, mustValue(t, cp, 0, 0))
	assert.Equal(t, 0, mustValue(t, cp, 1, 1))
	assert.False(t, g.Equal(cp))
}

type seqSource struct {
	samples []float64
	i       int
}

func (s *seqSource) Float64() float64 {
	v := s.samples[s.i%len(s.samples)]
	s.i++
	return v
}

func TestFillRandomUsesCumulativeDistribution(t *testing.T) {
	g := New(2, 3)
	src := &seqSource{samples: []float64{0.1, 0.25, 0.3, 0.5, 0.6, 0.99}}
	require.NoError(t, g.FillRandom([]int{0, 1, 2}, []float64{0.25, 0.25, 0.5}, src))

	want := [][]int{{0, 0, 1}, {1, 2, 2}}
	if diff := cmp.Diff(want, g.Values()); diff != "" {
		t.Fatalf("fill mismatch (-want +got):\n%s", diff)
	}
}

func TestFillRandomRejectsBadProbabilities(t *testing.T) {
	g := New(2, 2)
	mustSet(t, g, [3]int{0, 0, 9})
	src := &seqSource{samples: []float64{0.5}}

	cases := map[string]struct {
		values []int
		probs  []float64
	}{
		"sum below one":   {[]int{0, 1}, []float64{0.5, 0.4}},
		"sum above one":   {[]int{0, 1}, []float64{0.7, 0.5}},
		"length mismatch": {[]int{0, 1, 2}, []float64{0.5, 0.5}},
		"empty":           {nil, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := g.FillRandom(tc.values, tc.probs, src)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, 9, mustValue(t, g, 0, 0), "grid must be untouched")
		})
	}
}

func TestFillRandomDeterministicWithSeededSource(t *testing.T) {
	a := New(5, 5)
	b := New(5, 5)
	require.NoError(t, a.FillRandom([]int{0, 1}, []float64{0.5, 0.5}, &seqSource{samples: []float64{0.2, 0.8, 0.5, 0.51}}))
	require.NoError(t, b.FillRandom([]int{0, 1}, []float64{0.5, 0.5}, &seqSource{samples: []float64{0.2, 0.8, 0.5, 0.51}}))
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "0 1 0 1 0 \n1 0 1 0 1 \n0 1 0 1 0 \n1 0 1 0 1 \n0 1 0 1 0 \n", a.String())
}
