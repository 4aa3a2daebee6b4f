package tree

import (
	"math"
	randv2 "math/rand/v2"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/xlog"
)

func TestAVL_InsertCases(t *testing.T) {
	type testcase struct {
		name string
		keys []int
	}
	testcases := []testcase{
		{name: "a1 left left", keys: []int{3, 2, 1}},
		{name: "a2 left right", keys: []int{3, 1, 2}},
		{name: "a3 right right", keys: []int{1, 2, 3}},
		{name: "a4 right left", keys: []int{1, 3, 2}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := mustNew[int](tt, AVL, WithValues(tc.keys...))
			require.Equal(tt, 2, keyOf(tree, tree.root))
			require.Equal(tt, int32(2), tree.node(tree.root).height)
			require.Equal(tt, int32(0), tree.balanceFactor(tree.root))
			require.Equal(tt, 2, tree.Height())
			require.NoError(tt, tree.Validate())
		})
	}
}

func TestAVL_RemoveRebalance(t *testing.T) {
	tree := mustNew[int](t, AVL, WithValues(2, 1, 3, 4))
	require.Equal(t, int32(1), tree.balanceFactor(tree.root))

	require.True(t, tree.Remove(1))
	require.Equal(t, 3, keyOf(tree, tree.root))
	require.Equal(t, []int{2, 3, 4}, Collect(tree.Forward()))
	require.NoError(t, tree.Validate())
}

func TestAVL_HeightBound(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100, 1000, 4096} {
		tree := mustNew[int](t, AVL, WithValues(lo.Range(n)...))
		bound := 1.4405 * math.Log2(float64(n+2))
		require.LessOrEqual(t, float64(tree.Height()), bound, "n=%d", n)
		require.NoError(t, tree.Validate())
	}
}

func TestAVL_AllCasesHit(t *testing.T) {
	logger, buf := memLogger(t, xlog.LogLevelDebug)
	tree := mustNew[int](t, AVL, WithLogger[int](logger))
	keys := lo.Shuffle(lo.Range(512))
	for _, key := range keys {
		require.NoError(t, tree.Insert(key))
	}
	for _, key := range lo.Shuffle(keys)[:384] {
		require.True(t, tree.Remove(key))
	}
	require.NoError(t, tree.Validate())

	hit := map[string]int{}
	for _, line := range decodeLines(t, buf) {
		if line["msg"] == "[xtree] avl rebalance" {
			hit[line["case"].(string)]++
		}
	}
	for _, c := range []string{"a1", "a2", "a3", "a4"} {
		require.Positive(t, hit[c], c)
	}
}

func TestUnbalanced_Degenerate(t *testing.T) {
	tree := mustNew[int](t, Unbalanced, WithValues(lo.Range(64)...))
	require.Equal(t, 64, tree.Height())
	require.NoError(t, tree.Validate())
	require.Equal(t, lo.Range(64), Collect(tree.Forward()))
}

func BenchmarkAVL_Remove(b *testing.B) {
	b.StopTimer()
	keys := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		keys = append(keys, randv2.Int())
	}
	tree := mustNew[int](b, AVL, WithValues(keys...))
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Remove(keys[i])
	}
}
