package feed

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	UntitledPlaceholder = "Untitled update"
	Ellipsis            = "…"
)

type Normalizer struct {
	titleLimit   int
	summaryLimit int
	location     *time.Location
}

// NewNormalizer returns a Normalizer capping titles and summaries at the given
// rune counts. A nil or UTC location disables published_at_local.
func NewNormalizer(titleLimit, summaryLimit int, location *time.Location) *Normalizer {
	return &Normalizer{
		titleLimit:   titleLimit,
		summaryLimit: summaryLimit,
		location:     location,
	}
}

// Run normalizes one entry. The second result is false when the entry carries
// neither a title nor a link and must be dropped.
func (n *Normalizer) Run(entry Entry, source Source) (Item, bool) {
	title := truncateRunes(strings.TrimSpace(entry.Title), n.titleLimit)
	link := strings.TrimSpace(entry.Link)

	if title == "" && link == "" {
		return Item{}, false
	}
	if title == "" {
		title = UntitledPlaceholder
	}

	summary := entry.Summary
	if strings.TrimSpace(summary) == "" {
		summary = entry.Content
	}

	item := Item{
		Title:   title,
		Summary: Ellipsize(CollapseWhitespace(summary), n.summaryLimit),
		URL:     link,
		Tags:    UniqueTags(source.Tags),
		Source:  source.Ref(),
	}

	if published := entryTime(entry); published != nil {
		item.PublishedAt = published
		if n.location != nil && n.location != time.UTC {
			item.PublishedAtLocal = published.In(n.location).Format(time.RFC3339)
		}
	}

	return item, true
}

// CollapseWhitespace replaces every whitespace run, newlines included, with a
// single space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Ellipsize cuts s to limit runes and appends Ellipsis. Strings within the
// limit are returned unchanged.
func Ellipsize(s string, limit int) string {
	if limit <= 0 || len([]rune(s)) <= limit {
		return s
	}
	return truncateRunes(s, limit) + Ellipsis
}

// UniqueTags deduplicates tags keeping the first occurrence. The result is never nil.
func UniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	return lo.Uniq(tags)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// entryTime prefers the published date over the updated date and pins the
// result to UTC at whole-second precision.
func entryTime(entry Entry) *time.Time {
	t := entry.Published
	if t == nil {
		t = entry.Updated
	}
	if t == nil || t.IsZero() {
		return nil
	}
	utc := t.UTC().Truncate(time.Second)
	return &utc
}
