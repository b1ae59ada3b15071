package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	CountriesKey      = "ref:countries"
	CategoriesKey     = "ref:categories"
	TagsKey           = "ref:tags"
	CountryCodePrefix = "ref:country:code:%s"
)

// Reference data is seeded and immutable at runtime, so TTLs mostly guard
// against a stale cache after a reseed.
const (
	ReferenceTTL = 1 * time.Hour
)

func CountryCodeKey(code string) string {
	return fmt.Sprintf(CountryCodePrefix, strings.ToLower(code))
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateReferenceData drops the cached reference lists. Used after
// seeding so fresh rows are visible immediately.
func InvalidateReferenceData(ctx context.Context) {
	Invalidate(ctx, CountriesKey)
	Invalidate(ctx, CategoriesKey)
	Invalidate(ctx, TagsKey)
}
