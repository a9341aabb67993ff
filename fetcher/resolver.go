package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ewintr.nl/tldw/model"
)

// DefaultDebounce is the delay between the last URL change and the metadata
// lookup it triggers.
const DefaultDebounce = 500 * time.Millisecond

type Status string

const (
	StatusEmpty     Status = "empty"
	StatusResolving Status = "resolving"
	StatusResolved  Status = "resolved"
	StatusFailed    Status = "failed"
)

// Resolver debounces metadata lookups for a changing candidate URL. Every
// SetURL restarts the delay window and invalidates the result of any lookup
// still in flight, so only the last entered URL's metadata is ever applied.
// Lookup failures clear the metadata and set StatusFailed without surfacing
// an error.
type Resolver struct {
	fetch    MetadataFetcher
	delay    time.Duration
	onUpdate func(Status, *model.VideoMetadata)

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	status Status
	meta   *model.VideoMetadata
}

func NewResolver(fetch MetadataFetcher, delay time.Duration, onUpdate func(Status, *model.VideoMetadata)) *Resolver {
	return &Resolver{
		fetch:    fetch,
		delay:    delay,
		onUpdate: onUpdate,
		status:   StatusEmpty,
	}
}

// SetURL registers the current candidate URL. An invalid candidate clears the
// metadata immediately; a valid one schedules a lookup after the debounce
// window.
func (r *Resolver) SetURL(candidate string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	if r.timer != nil {
		r.timer.Stop()
	}

	if !model.IsVideoURL(candidate) {
		r.meta = nil
		r.status = StatusEmpty
		r.notify()
		return
	}

	r.status = StatusResolving
	r.meta = nil
	r.notify()

	gen := r.gen
	r.timer = time.AfterFunc(r.delay, func() {
		r.lookup(gen, candidate)
	})
}

func (r *Resolver) lookup(gen uint64, candidate string) {
	videoID, ok := model.VideoID(candidate)
	if !ok {
		return
	}
	md, err := r.fetch.FetchMetadata(context.Background(), videoID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		// superseded by a newer candidate, discard
		return
	}
	if err != nil {
		r.meta = nil
		r.status = StatusFailed
	} else {
		r.meta = &md
		r.status = StatusResolved
	}
	r.notify()
}

// Resolve looks up metadata for a candidate immediately, bypassing the
// debounce. Used by request/response callers that already hold a settled URL.
func (r *Resolver) Resolve(ctx context.Context, candidate string) (model.VideoMetadata, error) {
	videoID, ok := model.VideoID(candidate)
	if !ok {
		return model.VideoMetadata{}, fmt.Errorf("not a valid video url: %s", candidate)
	}
	return r.fetch.FetchMetadata(ctx, videoID)
}

func (r *Resolver) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Metadata returns the currently applied metadata, or nil while unresolved.
func (r *Resolver) Metadata() *model.VideoMetadata {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.meta == nil {
		return nil
	}
	md := *r.meta
	return &md
}

// Stop cancels any pending lookup. Results that arrive afterwards are
// discarded.
func (r *Resolver) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
	}
}

// notify runs with r.mu held, so the callback must not call back into the
// resolver. It receives a copy of the metadata.
func (r *Resolver) notify() {
	if r.onUpdate == nil {
		return
	}
	var md *model.VideoMetadata
	if r.meta != nil {
		cp := *r.meta
		md = &cp
	}
	r.onUpdate(r.status, md)
}
