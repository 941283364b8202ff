package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) ([]Entry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, p.toEntry(item))
	}

	return entries, nil
}

// toEntry maps a gofeed item onto an Entry. RSS description and Atom summary
// both land in item.Description; content:encoded and Atom content in item.Content.
func (p *Parser) toEntry(item *gofeed.Item) Entry {
	entry := Entry{
		Title:   item.Title,
		Summary: item.Description,
		Content: item.Content,
		Link:    item.Link,
	}

	if item.PublishedParsed != nil {
		entry.Published = item.PublishedParsed
	}

	if item.UpdatedParsed != nil {
		entry.Updated = item.UpdatedParsed
	}

	return entry
}
