package tree

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/infra"
)

func TestNew_Errors(t *testing.T) {
	type testcase struct {
		name   string
		create func() (ThreadedTree[float64], error)
		target error
	}
	testcases := []testcase{
		{
			name: "unknown variant",
			create: func() (ThreadedTree[float64], error) {
				return New[float64](_variantMax)
			},
			target: ErrInvalidArgument,
		},
		{
			name: "count duplicates",
			create: func() (ThreadedTree[float64], error) {
				return NewAVLTree(WithDuplicatePolicy[float64](CountDuplicates))
			},
			target: ErrUnsupportedPolicy,
		},
		{
			name: "materialize duplicates",
			create: func() (ThreadedTree[float64], error) {
				return NewRBTree(WithDuplicatePolicy[float64](MaterializeDuplicates))
			},
			target: ErrUnsupportedPolicy,
		},
		{
			name: "unknown policy",
			create: func() (ThreadedTree[float64], error) {
				return NewRBTree(WithDuplicatePolicy[float64](DuplicatePolicy(9)))
			},
			target: ErrInvalidArgument,
		},
		{
			name: "unsupported source",
			create: func() (ThreadedTree[float64], error) {
				return NewThreadedTree(WithSource[float64](42))
			},
			target: ErrInvalidArgument,
		},
		{
			name: "nil source",
			create: func() (ThreadedTree[float64], error) {
				return NewThreadedTree(WithSource[float64](nil))
			},
			target: ErrInvalidArgument,
		},
		{
			name: "nan source",
			create: func() (ThreadedTree[float64], error) {
				return NewAVLTree(WithValues(1, math.NaN()))
			},
			target: ErrInvalidArgument,
		},
		{
			name: "nil logger",
			create: func() (ThreadedTree[float64], error) {
				return NewAVLTree(WithLogger[float64](nil))
			},
			target: ErrInvalidArgument,
		},
		{
			name: "negative capacity",
			create: func() (ThreadedTree[float64], error) {
				return NewAVLTree(WithCapacity[float64](-1))
			},
			target: ErrInvalidArgument,
		},
		{
			name: "nil meter provider",
			create: func() (ThreadedTree[float64], error) {
				return NewRBTree(WithMeterProvider[float64](nil))
			},
			target: ErrInvalidArgument,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree, err := tc.create()
			require.Nil(tt, tree)
			require.ErrorIs(tt, err, tc.target)
			require.True(tt, infra.IsErrorStack(err))
		})
	}
}

func TestNew_Variants(t *testing.T) {
	tree, err := NewThreadedTree[int]()
	require.NoError(t, err)
	require.Equal(t, Unbalanced, tree.Variant())
	tree, err = NewAVLTree[int]()
	require.NoError(t, err)
	require.Equal(t, AVL, tree.Variant())
	tree, err = NewRBTree[int]()
	require.NoError(t, err)
	require.Equal(t, RedBlack, tree.Variant())
	require.Equal(t, "redblack", tree.Variant().String())
	require.Equal(t, "variant(unknown)", _variantMax.String())
}

func TestWithSource(t *testing.T) {
	src := mustNew[int](t, AVL, WithValues(3, 1, 2))
	seq := slices.Values([]int{9, 8})
	testcases := []struct {
		name     string
		src      any
		expected []int
	}{
		{name: "slice", src: []int{5, 4}, expected: []int{4, 5}},
		{name: "iter.Seq", src: seq, expected: []int{8, 9}},
		{name: "func", src: func(yield func(int) bool) { _ = yield(6) }, expected: []int{6}},
		{name: "tree", src: src, expected: []int{1, 2, 3}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree, err := NewRBTree(WithSource[int](tc.src))
			require.NoError(tt, err)
			require.Equal(tt, tc.expected, Collect(tree.Forward()))
		})
	}

	// Sources load in option order after the values.
	tree, err := NewThreadedTree(WithValues(10), WithSource[int]([]int{0}), WithValues(5))
	require.NoError(t, err)
	require.Equal(t, []int{0, 5, 10}, Collect(tree.Forward()))
	tt := tree.(*threadedTree[int])
	require.Equal(t, 10, keyOf(tt, tt.root))
}

func TestWithDesc(t *testing.T) {
	for _, v := range variants {
		t.Run(v.String(), func(tt *testing.T) {
			tree := mustNew[int](tt, v, WithDesc[int](), WithValues(1, 5, 3, 2, 4))
			require.Equal(tt, []int{5, 4, 3, 2, 1}, Collect(tree.Forward()))
			head, _ := tree.Min()
			require.Equal(tt, 5, head)
			require.True(tt, tree.Remove(3))
			require.Equal(tt, []int{1, 2, 4, 5}, Collect(tree.Backward()))
			require.NoError(tt, tree.Validate())
		})
	}
}

func TestWithCapacity(t *testing.T) {
	tree := mustNew[int](t, AVL, WithCapacity[int](128))
	require.Equal(t, 129, cap(tree.arena.nodes))
	require.NoError(t, tree.Insert(1))
	require.Equal(t, 1, tree.arena.inUse())
}

func TestNew_NilOptionSkipped(t *testing.T) {
	tree, err := NewAVLTree[int](nil, WithValues(1))
	require.NoError(t, err)
	require.Equal(t, int64(1), tree.Len())
}
