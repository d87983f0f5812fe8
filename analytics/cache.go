package analytics

import (
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"retail-bi/models"
)

// DefaultForecastCacheSize bounds the number of cached forecast sets.
const DefaultForecastCacheSize = 64

// ForecastCache keeps forecast results per snapshot version and filter
// signature so repeated requests skip the forest fits. Safe for concurrent use.
type ForecastCache struct {
	entries *lru.Cache[string, []models.ForecastResult]
}

// NewForecastCache creates a cache holding up to size forecast sets.
func NewForecastCache(size int) (*ForecastCache, error) {
	if size <= 0 {
		size = DefaultForecastCacheSize
	}
	entries, err := lru.New[string, []models.ForecastResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast cache: %w", err)
	}
	return &ForecastCache{entries: entries}, nil
}

// Signature renders c as a stable cache key. Filters meaning "all" share a key.
func Signature(c models.FilterCriteria) string {
	norm := func(v string) string {
		if IsAll(v) {
			return "*"
		}
		return v
	}
	date := func(t time.Time) string {
		if t.IsZero() {
			return "*"
		}
		return Day(t).Format(time.DateOnly)
	}
	return strings.Join([]string{
		date(c.Start), date(c.End), norm(c.Region), norm(c.Category), norm(c.Segment),
	}, "|")
}

func cacheKey(version uint64, c models.FilterCriteria) string {
	return fmt.Sprintf("v%d|%s", version, Signature(c))
}

// GetOrCompute returns the cached forecasts for (version, c), or runs compute
// and stores its result. cached reports whether the cache answered.
func (fc *ForecastCache) GetOrCompute(version uint64, c models.FilterCriteria, compute func() []models.ForecastResult) (results []models.ForecastResult, cached bool) {
	key := cacheKey(version, c)
	if res, ok := fc.entries.Get(key); ok {
		return res, true
	}
	res := compute()
	fc.entries.Add(key, res)
	return res, false
}

// Purge empties the cache.
func (fc *ForecastCache) Purge() {
	fc.entries.Purge()
}

// Len returns the number of cached forecast sets.
func (fc *ForecastCache) Len() int {
	return fc.entries.Len()
}
