package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/imgsphere/engine/frame"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFS sets the filesystem image sources are resolved against.
//
// Parameters:
//   - fsys: the filesystem
//
// Returns:
//   - LoaderBuilderOption: a function that applies the filesystem option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		if fsys != nil {
			l.fsys = fsys
		}
	}
}

// WithPoster routes completion callbacks through a loop's task queue.
//
// Parameters:
//   - p: the poster, usually a frame.Scheduler
//
// Returns:
//   - LoaderBuilderOption: a function that applies the poster option to a loader
func WithPoster(p frame.Poster) LoaderBuilderOption {
	return func(l *loader) {
		l.poster = p
	}
}

// WithWorkers sets the number of decode workers.
//
// Parameters:
//   - n: worker count (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(1, n)
	}
}

// WithQueueSize sets how many loads may wait for a worker before Load blocks.
//
// Parameters:
//   - n: queue capacity
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue option to a loader
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// WithMaxEdge downsamples images whose longest edge exceeds px.
//
// Parameters:
//   - px: maximum edge length, 0 for no limit
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size limit to a loader
func WithMaxEdge(px int) LoaderBuilderOption {
	return func(l *loader) {
		if px >= 0 {
			l.maxEdge = px
		}
	}
}

// WithCache enables or disables the decoded image cache.
//
// Parameters:
//   - enabled: true to cache decoded images by source path
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cache option to a loader
func WithCache(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.useCache = enabled
	}
}
