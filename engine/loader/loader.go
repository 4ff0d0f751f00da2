package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/frame"
)

// ErrClosed is reported for loads requested after Close.
var ErrClosed = errors.New("loader closed")

// Result is the outcome of one asynchronous load.
type Result struct {
	// Src is the requested source path.
	Src string
	// Image holds the decoded pixels when Err is nil.
	Image common.TextureStagingData
	// Err is non-nil when the image could not be read or decoded.
	Err error
	// Elapsed is the time spent reading and decoding.
	Elapsed time.Duration
}

// Loader fetches and decodes images off the loop goroutine.
// Completion callbacks are delivered through the configured Poster so callers only ever
// observe results on their own loop; without a Poster they run on a worker goroutine.
type Loader interface {
	// Load starts an asynchronous load. done is invoked once per load, except for loads still
	// queued when Close is called, which are dropped.
	//
	// Parameters:
	//   - ctx: cancels the load if done before a worker picks it up
	//   - src: path of the image inside the loader's filesystem
	//   - done: completion callback
	Load(ctx context.Context, src string, done func(Result))

	// LoadSync reads and decodes an image on the calling goroutine, using the cache.
	//
	// Parameters:
	//   - src: path of the image inside the loader's filesystem
	//
	// Returns:
	//   - common.TextureStagingData: the decoded pixels
	//   - error: error if reading or decoding fails
	LoadSync(src string) (common.TextureStagingData, error)

	// Get returns a previously decoded image from the cache.
	//
	// Parameters:
	//   - src: the source path
	//
	// Returns:
	//   - common.TextureStagingData: the cached pixels
	//   - bool: true if present
	Get(src string) (common.TextureStagingData, bool)

	// Pending returns the number of loads not yet completed.
	//
	// Returns:
	//   - int: in-flight load count
	Pending() int

	// Close drops queued loads and stops the worker pool. Later loads fail with ErrClosed.
	//
	// Returns:
	//   - error: always nil, present for io.Closer compatibility
	Close() error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fsys      fs.FS
	poster    frame.Poster
	backends  map[string]loaderBackend
	fallback  loaderBackend
	maxEdge   int
	workers   int
	queueSize int
	useCache  bool

	cache   map[string]common.TextureStagingData
	pool    worker.DynamicWorkerPool
	nextID  atomic.Int64
	pending atomic.Int64
	closed  atomic.Bool
}

var _ Loader = &loader{}

// NewLoader creates a new Loader reading from the working directory unless WithFS is given.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the newly created loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	std := &stdImageBackend{}
	l := &loader{
		fsys: os.DirFS("."),
		backends: map[string]loaderBackend{
			".png":  std,
			".jpg":  std,
			".jpeg": std,
			".gif":  std,
			".webp": std,
		},
		fallback:  std,
		workers:   max(1, runtime.NumCPU()-1),
		queueSize: 256,
		useCache:  true,
		cache:     make(map[string]common.TextureStagingData),
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, time.Second)
	return l
}

func (l *loader) backendFor(src string) loaderBackend {
	if b, ok := l.backends[strings.ToLower(path.Ext(src))]; ok {
		return b
	}
	return l.fallback
}

func (l *loader) deliver(done func(Result), res Result) {
	l.pending.Add(-1)
	if done == nil {
		return
	}
	if l.poster != nil {
		l.poster.Post(func() { done(res) })
		return
	}
	done(res)
}

func (l *loader) Load(ctx context.Context, src string, done func(Result)) {
	l.pending.Add(1)
	if l.closed.Load() {
		l.deliver(done, Result{Src: src, Err: ErrClosed})
		return
	}

	id := int(l.nextID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: src,
		Do: func() (any, error) {
			if err := ctx.Err(); err != nil {
				l.deliver(done, Result{Src: src, Err: err})
				return nil, err
			}
			start := time.Now()
			img, err := l.LoadSync(src)
			res := Result{Src: src, Image: img, Err: err, Elapsed: time.Since(start)}
			if err != nil {
				log.Printf("[Loader] %s: %v", src, err)
			}
			l.deliver(done, res)
			return img, err
		},
	})
}

func (l *loader) LoadSync(src string) (common.TextureStagingData, error) {
	if img, ok := l.Get(src); ok {
		return img, nil
	}
	if l.closed.Load() {
		return common.TextureStagingData{}, ErrClosed
	}

	f, err := l.fsys.Open(strings.TrimPrefix(path.Clean("/"+src), "/"))
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to open image %s: %w", src, err)
	}
	defer f.Close()

	img, err := l.backendFor(src).Decode(f, l.maxEdge)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to load image %s: %w", src, err)
	}

	if l.useCache {
		l.mu.Lock()
		l.cache[src] = img
		l.mu.Unlock()
	}
	return img, nil
}

func (l *loader) Get(src string) (common.TextureStagingData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.cache[src]
	return img, ok
}

func (l *loader) Pending() int {
	return int(l.pending.Load())
}

func (l *loader) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	l.pool.ClearTaskQueue()
	l.pool.Stop()
	return nil
}
