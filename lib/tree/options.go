package tree

import (
	"iter"

	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

type treeConfig[K infra.OrderedKey] struct {
	logger         xlog.XLogger
	meter          metric.Meter
	sources        []iter.Seq[K]
	capacity       int
	policy         DuplicatePolicy
	isDesc         bool
	isRmBorrowSucc bool
}

type Option[K infra.OrderedKey] func(*treeConfig[K]) error

// WithDesc reverses the order of keys, the head is the maximum.
func WithDesc[K infra.OrderedKey]() Option[K] {
	return func(cfg *treeConfig[K]) error {
		cfg.isDesc = true
		return nil
	}
}

// WithRemoveBorrowSucc makes the balanced variants replace a removed
// node with two children by its in-order successor instead of the
// predecessor.
func WithRemoveBorrowSucc[K infra.OrderedKey]() Option[K] {
	return func(cfg *treeConfig[K]) error {
		cfg.isRmBorrowSucc = true
		return nil
	}
}

func WithDuplicatePolicy[K infra.OrderedKey](policy DuplicatePolicy) Option[K] {
	return func(cfg *treeConfig[K]) error {
		if policy > MaterializeDuplicates {
			return infra.WrapErrorStack(ErrInvalidArgument, "[xtree] unknown duplicate policy")
		}
		cfg.policy = policy
		return nil
	}
}

// WithCapacity preallocates the node arena.
func WithCapacity[K infra.OrderedKey](capacity int) Option[K] {
	return func(cfg *treeConfig[K]) error {
		if capacity < 0 {
			return infra.WrapErrorStack(ErrInvalidArgument, "[xtree] negative capacity")
		}
		cfg.capacity = capacity
		return nil
	}
}

// WithValues inserts the keys in the given order after construction.
func WithValues[K infra.OrderedKey](keys ...K) Option[K] {
	return func(cfg *treeConfig[K]) error {
		cfg.sources = append(cfg.sources, sliceSeq(keys))
		return nil
	}
}

// WithSource inserts every key of src after construction.
// src is a []K, an iter.Seq[K] (or its underlying func type)
// or another ThreadedTree[K]. Anything else is rejected.
func WithSource[K infra.OrderedKey](src any) Option[K] {
	return func(cfg *treeConfig[K]) error {
		seq, err := sourceSeq[K](src)
		if err != nil {
			return err
		}
		cfg.sources = append(cfg.sources, seq)
		return nil
	}
}

func sourceSeq[K infra.OrderedKey](src any) (iter.Seq[K], error) {
	var seq iter.Seq[K]
	switch s := src.(type) {
	case []K:
		seq = sliceSeq(s)
	case iter.Seq[K]:
		seq = s
	case func(func(K) bool):
		seq = s
	case ThreadedTree[K]:
		seq = s.Forward()
	default:
	}
	if seq == nil {
		return nil, infra.WrapErrorStack(ErrInvalidArgument, "[xtree] unsupported source")
	}
	return seq, nil
}

func WithLogger[K infra.OrderedKey](logger xlog.XLogger) Option[K] {
	return func(cfg *treeConfig[K]) error {
		if logger == nil {
			return infra.WrapErrorStack(ErrInvalidArgument, "[xtree] nil logger")
		}
		cfg.logger = logger
		return nil
	}
}

// WithMeter records mutations into the meter. Without it no
// instrument is created.
func WithMeter[K infra.OrderedKey](meter metric.Meter) Option[K] {
	return func(cfg *treeConfig[K]) error {
		cfg.meter = meter
		return nil
	}
}

func WithMeterProvider[K infra.OrderedKey](mp metric.MeterProvider) Option[K] {
	return func(cfg *treeConfig[K]) error {
		if mp == nil {
			return infra.WrapErrorStack(ErrInvalidArgument, "[xtree] nil meter provider")
		}
		cfg.meter = mp.Meter(meterName)
		return nil
	}
}

func sliceSeq[K infra.OrderedKey](keys []K) iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, key := range keys {
			if !yield(key) {
				return
			}
		}
	}
}

// New creates an empty tree of the variant, then loads the sources
// in option order.
func New[K infra.OrderedKey](variant Variant, opts ...Option[K]) (ThreadedTree[K], error) {
	if variant >= _variantMax {
		return nil, infra.WrapErrorStack(ErrInvalidArgument, "[xtree] unknown variant")
	}
	cfg := &treeConfig[K]{
		policy: RejectDuplicates,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.policy != RejectDuplicates {
		return nil, infra.WrapErrorStack(ErrUnsupportedPolicy, "[xtree] only duplicates rejection is supported")
	}
	if cfg.logger == nil {
		cfg.logger = xlog.NewNopXLogger()
	}
	stats, err := newTreeStats(cfg.meter, variant)
	if err != nil {
		return nil, infra.WrapErrorStack(err, "[xtree] unable to create tree instruments")
	}

	kcmp := infra.AscComparator[K]()
	if cfg.isDesc {
		kcmp = infra.DescComparator[K]()
	}
	tree := &threadedTree[K]{
		arena:          newNodeArena[K](cfg.capacity),
		kcmp:           kcmp,
		logger:         cfg.logger,
		stats:          stats,
		variant:        variant,
		policy:         cfg.policy,
		isDesc:         cfg.isDesc,
		isRmBorrowSucc: cfg.isRmBorrowSucc,
	}
	for _, seq := range cfg.sources {
		for key := range seq {
			if err = tree.Insert(key); err != nil {
				tree.Release()
				return nil, infra.WrapErrorStack(err, "[xtree] unable to load source")
			}
		}
	}
	return tree, nil
}

func NewThreadedTree[K infra.OrderedKey](opts ...Option[K]) (ThreadedTree[K], error) {
	return New[K](Unbalanced, opts...)
}

func NewAVLTree[K infra.OrderedKey](opts ...Option[K]) (ThreadedTree[K], error) {
	return New[K](AVL, opts...)
}

func NewRBTree[K infra.OrderedKey](opts ...Option[K]) (ThreadedTree[K], error) {
	return New[K](RedBlack, opts...)
}
