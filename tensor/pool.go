package tensor

import (
	"strconv"
	"sync"
)

// Pool is a thread-safe pool for reusing tensors.
//
// Pool groups tensors by their shape and element type, allowing efficient
// reuse of identically-sized payloads. This reduces GC pressure in training
// loops that materialize the same batch slots epoch after epoch.
//
// Thread safety: All methods are safe for concurrent use. The tensors handed
// out are not; each belongs to exactly one caller until returned.
type Pool struct {
	mu      sync.Mutex
	buckets map[string][]Tensor
	maxSize int // max tensors per bucket
}

// NewPool creates a tensor pool with the given maximum tensors per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[string][]Tensor),
		maxSize: maxPerBucket,
	}
}

// poolKey identifies a bucket of identical tensor specifications.
func poolKey(dt DType, shape []int) string {
	key := dt.String()
	for _, d := range shape {
		key += "x" + strconv.Itoa(d)
	}
	return key
}

// Get retrieves a tensor from the pool or creates a new one.
// The returned tensor is guaranteed to have the given shape and element
// type, and is zero-filled whether reused or fresh.
func Get[T Scalar](p *Pool, shape ...int) (*Dense[T], error) {
	key := poolKey(DTypeOf[T](), shape)

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		t := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		// The bucket is keyed by concrete type, so this cannot fail.
		d := t.(*Dense[T])
		d.Zero()
		return d, nil
	}
	p.mu.Unlock()

	return New[T](shape...)
}

// Put returns a tensor to the pool for reuse. If t is nil or the bucket is
// at capacity, the tensor is discarded.
func (p *Pool) Put(t Tensor) {
	if t == nil {
		return
	}
	key := poolKey(t.DType(), t.Shape())

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, t)
}
