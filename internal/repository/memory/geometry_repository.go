package memory

import (
	"fmt"
	"time"

	"bookmark-reorder-be/pkg/reorder"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ZoneGeometry is the most recent client-reported sibling geometry for one
// container. It only bridges the gap between a hover tick and the drop call;
// hover resolution itself never reads stale geometry.
type ZoneGeometry struct {
	ContainerId uuid.UUID
	Bounds      []reorder.SiblingBounds
	ReportedAt  time.Time
}

type GeometryRepository struct {
	cache *cache.Cache
}

func NewGeometryRepository(ttl time.Duration) *GeometryRepository {
	// Purge expired geometry twice per TTL window
	c := cache.New(ttl, ttl/2)
	return &GeometryRepository{
		cache: c,
	}
}

func (r *GeometryRepository) Save(geometry *ZoneGeometry) {
	r.cache.Set(key(geometry.ContainerId), geometry, cache.DefaultExpiration)
}

func (r *GeometryRepository) Get(containerId uuid.UUID) (*ZoneGeometry, bool) {
	if x, found := r.cache.Get(key(containerId)); found {
		return x.(*ZoneGeometry), true
	}
	return nil, false
}

func (r *GeometryRepository) Delete(containerId uuid.UUID) {
	r.cache.Delete(key(containerId))
}

func (r *GeometryRepository) Flush() {
	r.cache.Flush()
}

func key(containerId uuid.UUID) string {
	return fmt.Sprintf("zone:%s", containerId)
}
