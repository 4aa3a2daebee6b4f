package tree

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var variants = []Variant{Unbalanced, AVL, RedBlack}

func mustNew[K infra.OrderedKey](t testing.TB, variant Variant, opts ...Option[K]) *threadedTree[K] {
	t.Helper()
	tree, err := New[K](variant, opts...)
	require.NoError(t, err)
	tt, ok := tree.(*threadedTree[K])
	require.True(t, ok)
	return tt
}

func keyOf[K infra.OrderedKey](tree *threadedTree[K], h handle) K {
	return tree.node(h).key
}

type bufCore struct {
	buf *bytes.Buffer
}

func (c *bufCore) Build(
	lvlEnabler zapcore.LevelEnabler,
	_ xlog.LogEncoderType,
	_ xlog.LogOutWriterType,
	_ zapcore.LevelEncoder,
	_ zapcore.TimeEncoder,
) (zapcore.Core, error) {
	return zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(c.buf),
		lvlEnabler,
	), nil
}

func memLogger(t *testing.T, lvl xlog.LogLevel) (xlog.XLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return xlog.NewXLogger(
		xlog.WithXLoggerCore(&bufCore{buf: buf}),
		xlog.WithXLoggerLevel(lvl),
	), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	res := make([]map[string]any, 0, 8)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		res = append(res, m)
	}
	return res
}
