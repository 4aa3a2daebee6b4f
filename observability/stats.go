package observability

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/infra"
)

var (
	once sync.Once
)

// Sized is anything reporting its number of keys, a tree for example.
type Sized interface {
	Len() int64
}

// Watched is a container observed by InitAppStats. Locker is the lock
// the application holds around every mutation of Container; for a
// sync.RWMutex pass its RLocker.
type Watched struct {
	Container Sized
	Locker    sync.Locker
}

type appStats struct {
	ctx              context.Context
	shutdownCallback ShutdownFunc
	keys             metric.Int64ObservableUpDownCounter
}

func (stats *appStats) waitForShutdown() {
	if stats == nil || stats.shutdownCallback == nil {
		return
	}
	go func() {
		<-stats.ctx.Done()
		_ = stats.shutdownCallback(context.Background())
	}()
}

func meterName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString("xtree/app")
	builder.WriteString("/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	return builder.String()
}

// observeKeys reads Len under the container's lock, the callback runs
// on the reader's goroutine.
func observeKeys(watched map[string]Watched) metric.Int64Callback {
	names := lo.Keys(watched)
	return func(_ context.Context, ob metric.Int64Observer) error {
		for _, n := range names {
			w := watched[n]
			w.Locker.Lock()
			size := w.Container.Len()
			w.Locker.Unlock()
			ob.Observe(size, metric.WithAttributes(attribute.String("container", n)))
		}
		return nil
	}
}

// InitAppStats observes the number of keys of every named container
// and starts the runtime instrumentation on the global meter provider.
// Only the first successful call takes effect. The shutdown callback,
// if any, runs once ctx is done.
func InitAppStats(ctx context.Context, name string, shutdown ShutdownFunc, containers map[string]Watched) error {
	for n, w := range containers {
		if w.Container == nil || w.Locker == nil {
			return infra.NewErrorStack("[xtree] container " + n + " is watched without a lock")
		}
	}
	watched := lo.Assign(containers)
	once.Do(func() {
		meter := otel.Meter(
			meterName(name),
			metric.WithInstrumentationVersion(otelruntime.Version()),
		)
		stats := &appStats{
			ctx:              ctx,
			shutdownCallback: shutdown,
			keys: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
				"app.xtree.keys",
				metric.WithDescription(`The number of keys held by each container.`),
				metric.WithInt64Callback(observeKeys(watched)),
			)),
		}
		lo.Must0(otelruntime.Start())
		stats.waitForShutdown()
	})
	return nil
}
