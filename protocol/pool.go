package protocol

import "sync"

// Pool recycles Writers so that building a packet does not allocate a new
// buffer each time. A Writer handed out by Acquire belongs to the caller
// until it is passed to Release.
//
// Pool never blocks: when no idle Writer is available a new one is made.
type Pool struct {
	mu   sync.Mutex
	idle []*Writer

	writerSize  int
	maxRetained int
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// InitialWriterSize sets the capacity of Writers created by the pool.
func InitialWriterSize(size int) PoolOption {
	return func(p *Pool) {
		p.writerSize = size
	}
}

// MaxRetainedCapacity makes Release drop Writers whose buffer has grown
// beyond size bytes rather than keeping them idle. Zero keeps everything.
func MaxRetainedCapacity(size int) PoolOption {
	return func(p *Pool) {
		p.maxRetained = size
	}
}

// DefaultPool is the process-wide pool used when none is configured.
var DefaultPool = NewPool()

// NewPool creates an empty Pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{writerSize: defaultWriterSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire returns an empty Writer. Reused Writers keep their capacity.
func (p *Pool) Acquire() *Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.idle); n > 0 {
		w := p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
		w.idle = false
		w.Reset()
		poolAcquisitionsHit.Inc()
		return w
	}

	poolAcquisitionsMiss.Inc()
	return NewWriter(p.writerSize)
}

// Release hands w back to the pool. The caller must not use w afterwards.
// Releasing a Writer that is already idle is a no-op.
func (p *Pool) Release(w *Writer) {
	if w == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if w.idle {
		return
	}
	if p.maxRetained > 0 && w.Cap() > p.maxRetained {
		poolDiscardsTotal.Inc()
		return
	}
	w.idle = true
	w.Reset()
	p.idle = append(p.idle, w)
}

// Idle returns the number of Writers waiting in the pool.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}
