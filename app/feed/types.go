package feed

import (
	"time"
)

// Source configuration types

type Source struct {
	Name string   `yaml:"name" json:"name" validate:"required"`
	Kind string   `yaml:"kind" json:"kind" validate:"required"`
	URL  string   `yaml:"url" json:"url" validate:"required,http_url"`
	Tags []string `yaml:"tags" json:"tags,omitempty"`
}

// SourceRef is the per-item copy of the owning source.
type SourceRef struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

func (s Source) Ref() SourceRef {
	return SourceRef{Name: s.Name, Kind: s.Kind, URL: s.URL}
}

type Catalog struct {
	Feeds      []Source `yaml:"feeds" validate:"dive"`
	References []Source `yaml:"references" validate:"dive"`
}

// All returns feeds followed by references, the order used for attribution.
func (c Catalog) All() []Source {
	all := make([]Source, 0, len(c.Feeds)+len(c.References))
	all = append(all, c.Feeds...)
	all = append(all, c.References...)
	return all
}

// Feed processing types

// Entry is a raw feed entry. Empty strings and nil times mean the field was absent.
type Entry struct {
	Title     string
	Summary   string
	Content   string
	Link      string
	Published *time.Time
	Updated   *time.Time
}

type Item struct {
	Title            string     `json:"title"`
	Summary          string     `json:"summary"`
	PublishedAt      *time.Time `json:"published_at"`
	PublishedAtLocal string     `json:"published_at_local,omitempty"`
	URL              string     `json:"url"`
	Tags             []string   `json:"tags"`
	Source           SourceRef  `json:"source"`
}

// Digest output types

type Envelope struct {
	Project          string   `json:"project"`
	BriefID          string   `json:"brief_id"`
	Headline         string   `json:"headline"`
	NightOf          string   `json:"night_of"`
	WindowLocal      string   `json:"window_local,omitempty"`
	GeneratedAt      string   `json:"generated_at"`
	GeneratedAtLocal string   `json:"generated_at_local"`
	Generator        string   `json:"generator"`
	Sources          []Source `json:"sources"`
	Items            []Item   `json:"items"`
}
