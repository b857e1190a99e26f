package roadmap

import (
	"context"

	"github.com/jonathan/career-pilot/internal/cache"
	"github.com/jonathan/career-pilot/internal/types"
)

// Planner combines the generator with a hash-keyed cache: identical profile
// attributes reuse the stored roadmap instead of calling the model again.
type Planner struct {
	gen   *Generator
	cache cache.Cache[[]types.RoadmapItem]
}

// NewPlanner creates a planner over the given generator and cache.
func NewPlanner(gen *Generator, c cache.Cache[[]types.RoadmapItem]) *Planner {
	return &Planner{gen: gen, cache: c}
}

// Tasks returns the roadmap for the attrs, generating and caching it on a
// miss. The second return reports whether the result came from the cache.
func (p *Planner) Tasks(ctx context.Context, attrs GenerationAttrs) ([]types.RoadmapItem, bool, error) {
	key := ProfileHash(attrs)
	if tasks, ok := p.cache.Get(key); ok {
		return tasks, true, nil
	}

	tasks, err := p.gen.Generate(ctx, attrs)
	if err != nil {
		return nil, false, err
	}
	p.cache.Put(key, tasks)
	return tasks, false, nil
}

// Regenerate bypasses and replaces the cached roadmap for the attrs. Used by
// "more tasks" style requests where the user explicitly wants a fresh set.
func (p *Planner) Regenerate(ctx context.Context, attrs GenerationAttrs) ([]types.RoadmapItem, error) {
	key := ProfileHash(attrs)
	tasks, err := p.gen.Generate(ctx, attrs)
	if err != nil {
		return nil, err
	}
	p.cache.Put(key, tasks)
	return tasks, nil
}

// Save stores an externally modified task list (e.g. after a toggle) under
// the attrs' cache key so completion state survives alongside the roadmap.
func (p *Planner) Save(attrs GenerationAttrs, tasks []types.RoadmapItem) {
	p.cache.Put(ProfileHash(attrs), tasks)
}

// Cached returns the stored roadmap without generating on a miss.
func (p *Planner) Cached(attrs GenerationAttrs) ([]types.RoadmapItem, bool) {
	return p.cache.Get(ProfileHash(attrs))
}

// Invalidate drops the cached roadmap for the attrs.
func (p *Planner) Invalidate(attrs GenerationAttrs) {
	p.cache.Invalidate(ProfileHash(attrs))
}
