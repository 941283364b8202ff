package feed

import (
	"strings"
	"testing"
	"time"
)

var testSource = Source{
	Name: "ESA / Hubble News",
	Kind: "rss",
	URL:  "https://esahubble.org/feeds/news/",
	Tags: []string{"esa", "hubble", "esa"},
}

func TestNormalizeFullEntry(t *testing.T) {
	published := time.Date(2024, 1, 3, 9, 30, 15, 500, time.FixedZone("CET", 3600))
	entry := Entry{
		Title:     "  Hubble spots a ring galaxy \n",
		Summary:   "A ring\n  galaxy\t\tcaptured.",
		Link:      " https://esahubble.org/news/heic2401/ ",
		Published: &published,
	}

	item, ok := NewNormalizer(140, 280, time.UTC).Run(entry, testSource)
	if !ok {
		t.Fatal("Expected entry to be kept")
	}

	if item.Title != "Hubble spots a ring galaxy" {
		t.Errorf("Expected trimmed title, got '%s'", item.Title)
	}
	if item.Summary != "A ring galaxy captured." {
		t.Errorf("Expected collapsed summary, got '%s'", item.Summary)
	}
	if item.URL != "https://esahubble.org/news/heic2401/" {
		t.Errorf("Expected trimmed url, got '%s'", item.URL)
	}

	expected := time.Date(2024, 1, 3, 8, 30, 15, 0, time.UTC)
	if item.PublishedAt == nil || !item.PublishedAt.Equal(expected) || item.PublishedAt.Location() != time.UTC {
		t.Errorf("Expected published_at %v, got %v", expected, item.PublishedAt)
	}
	if item.PublishedAtLocal != "" {
		t.Errorf("Expected no local timestamp for UTC, got '%s'", item.PublishedAtLocal)
	}

	if strings.Join(item.Tags, ",") != "esa,hubble" {
		t.Errorf("Expected deduplicated tags 'esa,hubble', got %v", item.Tags)
	}
	if item.Source != (SourceRef{Name: testSource.Name, Kind: "rss", URL: testSource.URL}) {
		t.Errorf("Unexpected source ref: %+v", item.Source)
	}
}

func TestNormalizeSourceIsCopied(t *testing.T) {
	source := Source{Name: "A", Kind: "rss", URL: "https://a.example/feed", Tags: []string{"x"}}
	item, _ := NewNormalizer(140, 280, nil).Run(Entry{Title: "t"}, source)

	source.Tags[0] = "changed"
	source.Name = "B"

	if item.Tags[0] != "x" {
		t.Errorf("Expected item tags to be independent of source, got %v", item.Tags)
	}
	if item.Source.Name != "A" {
		t.Errorf("Expected source name 'A', got '%s'", item.Source.Name)
	}
}

func TestNormalizeDropsEntryWithoutTitleAndLink(t *testing.T) {
	testCases := []Entry{
		{},
		{Title: "   ", Link: "  "},
		{Summary: "only a summary"},
	}

	normalizer := NewNormalizer(140, 280, nil)
	for _, entry := range testCases {
		if _, ok := normalizer.Run(entry, testSource); ok {
			t.Errorf("Expected entry %+v to be dropped", entry)
		}
	}
}

func TestNormalizeUntitledPlaceholder(t *testing.T) {
	item, ok := NewNormalizer(140, 280, nil).Run(Entry{Link: "https://example.com/x"}, testSource)
	if !ok {
		t.Fatal("Expected entry with link to be kept")
	}
	if item.Title != UntitledPlaceholder {
		t.Errorf("Expected title '%s', got '%s'", UntitledPlaceholder, item.Title)
	}
}

func TestNormalizeTitleHardCut(t *testing.T) {
	title := strings.Repeat("é", 150)
	item, _ := NewNormalizer(140, 280, nil).Run(Entry{Title: title}, testSource)

	if n := len([]rune(item.Title)); n != 140 {
		t.Errorf("Expected 140 characters, got %d", n)
	}
	if strings.HasSuffix(item.Title, Ellipsis) {
		t.Error("Expected no ellipsis on titles")
	}
}

func TestNormalizeSummaryFallsBackToContent(t *testing.T) {
	entry := Entry{Title: "t", Summary: " \n ", Content: "Full\ncontent"}
	item, _ := NewNormalizer(140, 280, nil).Run(entry, testSource)

	if item.Summary != "Full content" {
		t.Errorf("Expected 'Full content', got '%s'", item.Summary)
	}
}

func TestNormalizeSummaryTruncation(t *testing.T) {
	source := strings.Repeat("abcdefghij", 30)
	item, _ := NewNormalizer(140, 280, nil).Run(Entry{Title: "t", Summary: source}, testSource)

	runes := []rune(item.Summary)
	if len(runes) != 281 {
		t.Fatalf("Expected 281 characters, got %d", len(runes))
	}
	if string(runes[:280]) != source[:280] {
		t.Error("Expected first 280 characters to match the source")
	}
	if string(runes[280]) != Ellipsis {
		t.Errorf("Expected trailing ellipsis, got '%s'", string(runes[280]))
	}

	exact := strings.Repeat("a", 280)
	item, _ = NewNormalizer(140, 280, nil).Run(Entry{Title: "t", Summary: exact}, testSource)
	if item.Summary != exact {
		t.Error("Expected summary at the limit to be unchanged")
	}
}

func TestNormalizeDates(t *testing.T) {
	published := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	normalizer := NewNormalizer(140, 280, nil)

	item, _ := normalizer.Run(Entry{Title: "t", Published: &published, Updated: &updated}, testSource)
	if !item.PublishedAt.Equal(published) {
		t.Errorf("Expected published date to win, got %v", item.PublishedAt)
	}

	item, _ = normalizer.Run(Entry{Title: "t", Updated: &updated}, testSource)
	if item.PublishedAt == nil || !item.PublishedAt.Equal(updated) {
		t.Errorf("Expected updated date fallback, got %v", item.PublishedAt)
	}

	item, _ = normalizer.Run(Entry{Title: "t"}, testSource)
	if item.PublishedAt != nil {
		t.Errorf("Expected nil published_at, got %v", item.PublishedAt)
	}
}

func TestNormalizeLocalTimestamp(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	published := time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC)
	item, _ := NewNormalizer(140, 280, loc).Run(Entry{Title: "t", Published: &published}, testSource)

	if item.PublishedAtLocal != "2024-01-03T02:30:00-08:00" {
		t.Errorf("Expected '2024-01-03T02:30:00-08:00', got '%s'", item.PublishedAtLocal)
	}

	local, err := time.Parse(time.RFC3339, item.PublishedAtLocal)
	if err != nil {
		t.Fatal(err)
	}
	if !local.Equal(*item.PublishedAt) {
		t.Errorf("Expected local timestamp to denote the same instant as %v, got %v", item.PublishedAt, local)
	}
}

func TestCollapseWhitespaceIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"  leading and trailing  ",
		"line one\nline two\r\n\tline three",
		"tabs\t\tand  spaces",
	}

	for _, input := range inputs {
		once := CollapseWhitespace(input)
		twice := CollapseWhitespace(once)
		if once != twice {
			t.Errorf("Expected idempotent collapse for %q: %q != %q", input, once, twice)
		}
		if strings.Contains(once, "\n") || strings.Contains(once, "  ") {
			t.Errorf("Expected no newlines or double spaces in %q", once)
		}
	}
}

func TestUniqueTags(t *testing.T) {
	tags := UniqueTags([]string{"b", "a", "b", "c", "a"})
	if strings.Join(tags, ",") != "b,a,c" {
		t.Errorf("Expected 'b,a,c', got %v", tags)
	}

	if tags := UniqueTags(nil); tags == nil || len(tags) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", tags)
	}
}
