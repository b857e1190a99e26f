package profile

import (
	"github.com/jonathan/career-pilot/internal/cache"
	"github.com/jonathan/career-pilot/internal/types"
)

// TaskCache exposes the snapshot's roadmap-task map as a cache keyed by
// profile hash, so cached roadmaps survive restarts alongside the profiles
// that produced them.
func (s *Store) TaskCache() cache.Cache[[]types.RoadmapItem] {
	return &taskCache{store: s}
}

type taskCache struct {
	store *Store
}

func (c *taskCache) Get(key string) ([]types.RoadmapItem, bool) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	tasks, ok := c.store.state.RoadmapTasks[key]
	if !ok {
		return nil, false
	}
	return types.CloneRoadmapItems(tasks), true
}

// Put stores the task list under its hash and drops every other entry: the
// session keeps only the most recently generated roadmap, so stale hashes
// never accumulate in the persisted snapshot.
func (c *taskCache) Put(key string, tasks []types.RoadmapItem) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.state.RoadmapTasks = map[string][]types.RoadmapItem{
		key: types.CloneRoadmapItems(tasks),
	}
	c.store.save()
}

func (c *taskCache) Invalidate(key string) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	delete(c.store.state.RoadmapTasks, key)
	c.store.save()
}
