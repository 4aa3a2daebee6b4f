package tree

import (
	"encoding/binary"
	"iter"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/benz9527/xtree/lib/infra"
)

// Collect materializes the keys in tree order.
func Collect[K infra.OrderedKey](seq iter.Seq[K]) []K {
	keys := make([]K, 0, 16)
	for key := range seq {
		keys = append(keys, key)
	}
	return keys
}

// Equal reports whether both trees yield the same keys in the same
// order. Variants and shapes are ignored.
func Equal[K infra.OrderedKey](a, b ThreadedTree[K]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Len() != b.Len() {
		return false
	}
	next, stop := iter.Pull(b.Forward())
	defer stop()
	for key := range a.Forward() {
		other, ok := next()
		if !ok || other != key {
			return false
		}
	}
	_, ok := next()
	return !ok
}

// EqualSlice compares the tree order against keys.
func EqualSlice[K infra.OrderedKey](tree ThreadedTree[K], keys []K) bool {
	if tree == nil {
		return len(keys) == 0
	}
	if tree.Len() != int64(len(keys)) {
		return false
	}
	i := 0
	for key := range tree.Forward() {
		if keys[i] != key {
			return false
		}
		i++
	}
	return true
}

// Hash digests the forward sequence, equal trees hash equally.
func Hash[K infra.OrderedKey](tree ThreadedTree[K]) uint64 {
	d := xxhash.New()
	if tree == nil {
		return d.Sum64()
	}
	buf := make([]byte, 0, 16)
	for key := range tree.Forward() {
		buf = appendKey(buf[:0], key)
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

// appendKey encodes a key with a fixed width per kind. Keys equal by
// the comparator encode equally. Strings are prefixed by their length
// so that adjacent keys never merge.
func appendKey[K infra.OrderedKey](buf []byte, key K) []byte {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.LittleEndian.AppendUint64(buf, uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return binary.LittleEndian.AppendUint64(buf, rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == 0 {
			f = 0 // -0 and +0 are the same key
		}
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	case reflect.String:
		s := rv.String()
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s)))
		return append(buf, s...)
	default:
	}
	// impossible run to here
	panic( /* debug assertion */ "[xtree] unknown key kind")
}

// inherit carries the order, the removal borrow side and the logger
// of tree into a derived tree, followed by opts.
func inherit[K infra.OrderedKey](tree ThreadedTree[K], opts ...Option[K]) []Option[K] {
	inherited := make([]Option[K], 0, len(opts)+3)
	if t, ok := tree.(*threadedTree[K]); ok && t != nil {
		if t.isDesc {
			inherited = append(inherited, WithDesc[K]())
		}
		if t.isRmBorrowSucc {
			inherited = append(inherited, WithRemoveBorrowSucc[K]())
		}
		inherited = append(inherited, WithLogger[K](t.logger))
	}
	return append(inherited, opts...)
}

// Clone copies the keys into a new tree of the same variant and order.
// The copy is independent, it shares no node with the source.
func Clone[K infra.OrderedKey](tree ThreadedTree[K], opts ...Option[K]) (ThreadedTree[K], error) {
	if tree == nil {
		return nil, infra.WrapErrorStack(ErrInvalidArgument, "[xtree] clone nil tree")
	}
	opts = append(inherit[K](tree, WithCapacity[K](int(tree.Len())), WithSource[K](tree)), opts...)
	return New[K](tree.Variant(), opts...)
}

// Union builds a tree like a holding keys of a and of the source b.
// b is anything WithSource accepts.
func Union[K infra.OrderedKey](a ThreadedTree[K], b any, opts ...Option[K]) (ThreadedTree[K], error) {
	if a == nil {
		return nil, infra.WrapErrorStack(ErrInvalidArgument, "[xtree] union nil tree")
	}
	opts = append(inherit[K](a, WithSource[K](a), WithSource[K](b)), opts...)
	return New[K](a.Variant(), opts...)
}

// Difference builds a tree like a holding keys of a that are
// absent from the source b.
func Difference[K infra.OrderedKey](a ThreadedTree[K], b any, opts ...Option[K]) (ThreadedTree[K], error) {
	if a == nil {
		return nil, infra.WrapErrorStack(ErrInvalidArgument, "[xtree] difference nil tree")
	}
	seq, err := sourceSeq[K](b)
	if err != nil {
		return nil, err
	}
	res, err := Clone[K](a, opts...)
	if err != nil {
		return nil, err
	}
	for key := range seq {
		res.Remove(key)
	}
	return res, nil
}
