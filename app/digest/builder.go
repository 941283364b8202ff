package digest

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/lysyi3m/skybrief/app/feed"
)

type EntryFetcher interface {
	Fetch(ctx context.Context, url string) ([]feed.Entry, error)
}

var _ EntryFetcher = (*feed.Fetcher)(nil)

type Limits struct {
	PerFeed int // entries kept per feed before normalization
	Total   int // items kept after sorting
}

type Metadata struct {
	Project   string
	Headline  string
	Window    string
	Generator string
	Location  *time.Location
}

type Builder struct {
	fetcher    EntryFetcher
	normalizer *feed.Normalizer
	limits     Limits
	meta       Metadata
}

func NewBuilder(fetcher EntryFetcher, normalizer *feed.Normalizer, limits Limits, meta Metadata) *Builder {
	if meta.Location == nil {
		meta.Location = time.UTC
	}
	return &Builder{
		fetcher:    fetcher,
		normalizer: normalizer,
		limits:     limits,
		meta:       meta,
	}
}

// Run fetches every feed in catalog order and assembles the envelope for now.
// Feed failures only cost that feed's items.
func (b *Builder) Run(ctx context.Context, catalog feed.Catalog, now time.Time) feed.Envelope {
	var items []feed.Item

	for _, source := range catalog.Feeds {
		entries, err := b.fetcher.Fetch(ctx, source.URL)
		if err != nil {
			slog.Warn("Feed skipped", "feed", source.Name, "url", source.URL, "error", err)
			continue
		}
		if len(entries) == 0 {
			slog.Warn("Feed returned no entries", "feed", source.Name, "url", source.URL)
			continue
		}

		sourceItems := b.normalize(entries, source)
		slog.Debug("Feed processed", "feed", source.Name, "entries", len(entries), "items", len(sourceItems))
		items = append(items, sourceItems...)
	}

	SortItems(items)
	items = take(items, b.limits.Total)

	return b.envelope(catalog, items, now)
}

func (b *Builder) normalize(entries []feed.Entry, source feed.Source) []feed.Item {
	entries = take(entries, b.limits.PerFeed)

	items := make([]feed.Item, 0, len(entries))
	for _, entry := range entries {
		item, ok := b.normalizer.Run(entry, source)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

func (b *Builder) envelope(catalog feed.Catalog, items []feed.Item, now time.Time) feed.Envelope {
	utc := now.UTC().Truncate(time.Second)
	local := utc.In(b.meta.Location)
	nightOf := local.Format(time.DateOnly)

	if items == nil {
		items = []feed.Item{}
	}

	return feed.Envelope{
		Project:          b.meta.Project,
		BriefID:          strings.ToUpper(cmp.Or(b.meta.Project, "brief")) + "-" + nightOf,
		Headline:         b.meta.Headline,
		NightOf:          nightOf,
		WindowLocal:      b.meta.Window,
		GeneratedAt:      utc.Format(time.RFC3339),
		GeneratedAtLocal: local.Format(time.RFC3339),
		Generator:        b.meta.Generator,
		Sources:          catalog.All(),
		Items:            items,
	}
}

// SortItems orders items newest first. Undated items go last; ties keep
// their input order.
func SortItems(items []feed.Item) {
	slices.SortStableFunc(items, func(a, b feed.Item) int {
		switch {
		case a.PublishedAt == nil && b.PublishedAt == nil:
			return 0
		case a.PublishedAt == nil:
			return 1
		case b.PublishedAt == nil:
			return -1
		}
		return b.PublishedAt.Compare(*a.PublishedAt)
	})
}

func take[T any](s []T, n int) []T {
	if n <= 0 || len(s) <= n {
		return s
	}
	return lo.Subset(s, 0, uint(n))
}
