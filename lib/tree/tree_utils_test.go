package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

type foreignTree struct {
	ThreadedTree[int]
}

func TestValidators_ForeignTree(t *testing.T) {
	validators := []func(ThreadedTree[int]) error{
		OrderViolationValidate[int],
		ThreadViolationValidate[int],
		BoundaryViolationValidate[int],
		ParentViolationValidate[int],
		AVLViolationValidate[int],
		RedViolationValidate[int],
		BlackViolationValidate[int],
	}
	for _, validate := range validators {
		require.ErrorIs(t, validate(foreignTree{}), ErrForeignTree)
		require.ErrorIs(t, validate(nil), ErrForeignTree)
	}
}

func TestValidators_Corruption(t *testing.T) {
	type testcase struct {
		name     string
		variant  Variant
		corrupt  func(tree *threadedTree[int])
		validate func(ThreadedTree[int]) error
	}
	testcases := []testcase{
		{
			name:    "order",
			variant: Unbalanced,
			corrupt: func(tree *threadedTree[int]) {
				tree.node(tree.root).key = 100
			},
			validate: OrderViolationValidate[int],
		},
		{
			name:    "order count",
			variant: Unbalanced,
			corrupt: func(tree *threadedTree[int]) {
				tree.count++
			},
			validate: OrderViolationValidate[int],
		},
		{
			name:    "thread target",
			variant: Unbalanced,
			corrupt: func(tree *threadedTree[int]) {
				tree.node(tree.head).links[right] = threadLink(tree.tail)
			},
			validate: ThreadViolationValidate[int],
		},
		{
			name:    "absent inside",
			variant: Unbalanced,
			corrupt: func(tree *threadedTree[int]) {
				tree.node(tree.tail).links[left] = absent
			},
			validate: ThreadViolationValidate[int],
		},
		{
			name:    "boundary",
			variant: AVL,
			corrupt: func(tree *threadedTree[int]) {
				tree.head = tree.root
			},
			validate: BoundaryViolationValidate[int],
		},
		{
			name:    "parent",
			variant: AVL,
			corrupt: func(tree *threadedTree[int]) {
				tree.node(tree.head).parent = tree.tail
			},
			validate: ParentViolationValidate[int],
		},
		{
			name:    "avl height",
			variant: AVL,
			corrupt: func(tree *threadedTree[int]) {
				tree.node(tree.root).height = 7
			},
			validate: AVLViolationValidate[int],
		},
		{
			name:    "red root",
			variant: RedBlack,
			corrupt: func(tree *threadedTree[int]) {
				tree.node(tree.root).color = Red
			},
			validate: RedViolationValidate[int],
		},
		{
			name:    "black depth",
			variant: RedBlack,
			corrupt: func(tree *threadedTree[int]) {
				tree.node(tree.head).color = Black
			},
			validate: BlackViolationValidate[int],
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := mustNew[int](tt, tc.variant, WithValues(2, 1, 3))
			require.NoError(tt, tc.validate(tree))
			tc.corrupt(tree)
			err := tc.validate(tree)
			require.Error(tt, err)
			require.True(tt, infra.IsErrorStack(err))
			require.Error(tt, tree.Validate())
		})
	}
}

func TestValidators_AVLBalance(t *testing.T) {
	tree := mustNew[int](t, Unbalanced, WithValues(1, 2, 3))
	// An unbalanced chain with consistent heights still breaks the balance.
	for _, h := range tree.postorder() {
		tree.updateHeight(h)
	}
	require.Error(t, AVLViolationValidate[int](tree))
	require.NoError(t, tree.Validate())
}

func TestValidate_Aggregated(t *testing.T) {
	tree := mustNew[int](t, AVL, WithValues(2, 1, 3))
	tree.node(tree.root).height = 9
	tree.head = tree.tail
	errs := multierr.Errors(tree.Validate())
	require.Len(t, errs, 2)
}

func TestRedViolation_RedChild(t *testing.T) {
	tree := mustNew[int](t, RedBlack, WithValues(2, 1, 3, 4))
	require.NoError(t, tree.Validate())
	// 4 is red under black 3.
	tree.paint(tree.child(tree.root, right), Red)
	require.Error(t, RedViolationValidate[int](tree))
}
