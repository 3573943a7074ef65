package workflows

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jonathan/yassu-studio/internal/types"
)

// DefaultCacheSize is the number of artifacts whose sections are kept.
const DefaultCacheSize = 256

// SectionCache memoizes ExtractSections per artifact. Artifacts are immutable,
// so entries never need invalidation.
type SectionCache struct {
	cache *lru.Cache[uuid.UUID, map[types.WorkflowType]string]
}

// NewSectionCache creates a cache holding up to size artifacts.
func NewSectionCache(size int) (*SectionCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[uuid.UUID, map[types.WorkflowType]string](size)
	if err != nil {
		return nil, err
	}
	return &SectionCache{cache: cache}, nil
}

// Sections returns the parsed sections of an artifact.
// The returned map is shared and must not be modified.
func (c *SectionCache) Sections(artifact *types.WorkflowArtifact) map[types.WorkflowType]string {
	if sections, ok := c.cache.Get(artifact.ID); ok {
		return sections
	}
	sections := ExtractSections(artifact.Content)
	c.cache.Add(artifact.ID, sections)
	return sections
}

// Len returns the number of cached artifacts.
func (c *SectionCache) Len() int {
	return c.cache.Len()
}
