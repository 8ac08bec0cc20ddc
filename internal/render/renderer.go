// Package render resolves complete segments to paths and draws them on a
// map surface.
package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"busplanner.dev/internal/directions"
	"busplanner.dev/internal/logging"
	"busplanner.dev/internal/models"
	"busplanner.dev/internal/planner"
)

// ErrSurfaceClosed is returned by Init after Teardown.
var ErrSurfaceClosed = errors.New("render: surface has been torn down")

type Option func(*Renderer)

// WithStaleDiscard drops results from a pass once a newer pass has started.
// Without it the latest result to arrive wins, whichever pass issued it.
func WithStaleDiscard() Option {
	return func(r *Renderer) {
		r.discardStale = true
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// Renderer owns the map surface. The surface is created once by Init and is
// never re-created; draws issued before Init are no-ops.
type Renderer struct {
	source       directions.RouteSource
	factory      SurfaceFactory
	discardStale bool
	logger       *slog.Logger

	mu         sync.Mutex
	surface    Surface
	closed     bool
	generation atomic.Uint64
}

func NewRenderer(source directions.RouteSource, factory SurfaceFactory, opts ...Option) *Renderer {
	r := &Renderer{source: source, factory: factory, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.ForComponent(r.logger, "renderer")
	return r
}

// Init creates the surface on the first call and returns it on later calls.
func (r *Renderer) Init() (Surface, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrSurfaceClosed
	}
	if r.surface != nil {
		return r.surface, nil
	}
	surface, err := r.factory()
	if err != nil {
		return nil, err
	}
	r.surface = surface
	return surface, nil
}

func (r *Renderer) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surface != nil
}

// Teardown releases the surface. Later draws are no-ops and Init fails.
func (r *Renderer) Teardown() error {
	r.mu.Lock()
	surface := r.surface
	r.surface = nil
	r.closed = true
	r.mu.Unlock()

	if closer, ok := surface.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Outcome reports what happened to one segment of a pass.
type Outcome struct {
	Leg     planner.Leg
	Result  *models.RouteResult
	Err     error
	Applied bool
}

// Pass is one draw pass. Each segment resolves independently.
type Pass struct {
	Generation uint64
	wg         sync.WaitGroup
	outcomes   []Outcome
}

// Wait blocks until every segment of the pass has resolved and returns the
// outcomes in plan order.
func (p *Pass) Wait() []Outcome {
	p.wg.Wait()
	return p.outcomes
}

// Draw starts a pass over legs. Each leg is routed on its own goroutine and
// drawn as soon as it resolves; a failing leg is logged and does not affect
// the others. The map center follows the origin of whichever leg is applied
// last. Layers of segments not in legs are removed from the surface, and an
// empty pass still supersedes earlier ones. When the surface is not
// initialized Draw does nothing.
func (r *Renderer) Draw(ctx context.Context, legs []planner.Leg) *Pass {
	pass := &Pass{}
	if !r.Initialized() {
		return pass
	}

	pass.Generation = r.generation.Add(1)
	r.retain(legs)
	if len(legs) == 0 {
		return pass
	}

	pass.outcomes = make([]Outcome, len(legs))
	for i, leg := range legs {
		pass.outcomes[i].Leg = leg
		pass.wg.Add(1)
		go func(out *Outcome) {
			defer pass.wg.Done()
			r.drawLeg(ctx, pass.Generation, out)
		}(&pass.outcomes[i])
	}
	return pass
}

func (r *Renderer) retain(legs []planner.Leg) {
	indexes := make([]int, len(legs))
	for i, leg := range legs {
		indexes[i] = leg.Index
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.surface == nil {
		return
	}
	if err := r.surface.Retain(indexes); err != nil {
		logging.LogError(r.logger, "pruning stale layers failed", err)
	}
}

func (r *Renderer) drawLeg(ctx context.Context, generation uint64, out *Outcome) {
	seg := out.Leg.Segment
	attrs := logging.SegmentAttrs(out.Leg.Index, seg.From, seg.To)

	result, err := r.source.Route(ctx, seg.From, seg.To)
	if err != nil {
		out.Err = err
		logging.LogError(r.logger, "segment route failed", err, attrs...)
		return
	}
	out.Result = result

	layer := SegmentLayer{
		Index:       out.Leg.Index,
		From:        seg.From,
		To:          seg.To,
		Path:        result.Geometry,
		Origin:      result.OriginCoordinate,
		Destination: result.DestinationCoordinate,
		Style:       StyleFor(out.Leg.Index),
	}
	if seg.Bus != nil {
		layer.Line = *seg.Bus
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.surface == nil {
		return
	}
	if r.discardStale && generation < r.generation.Load() {
		logging.LogOperation(r.logger, "stale_segment_discarded",
			append(attrs, slog.Uint64("generation", generation))...)
		return
	}
	if err := r.surface.DrawSegment(layer); err != nil {
		out.Err = err
		logging.LogError(r.logger, "segment draw failed", err, attrs...)
		return
	}
	if err := r.surface.SetCenter(result.OriginCoordinate); err != nil {
		logging.LogError(r.logger, "set center failed", err, attrs...)
	}
	out.Applied = true
}

// Watch redraws the plan's complete segments after every change to it.
func (r *Renderer) Watch(ctx context.Context, plan *planner.Plan) {
	plan.Subscribe(func(segments []models.Segment) {
		r.Draw(ctx, planner.CompletedLegs(segments))
	})
}
