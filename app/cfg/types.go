package cfg

import "time"

type Cfg struct {
	// Output configuration
	OutputPath  string
	SourcesFile string

	// Digest limits
	MaxItemsPerFeed int
	MaxItems        int
	TitleLimit      int
	SummaryLimit    int

	// Fetching
	UserAgent string
	Timeout   int // seconds

	// Envelope metadata
	Project  string
	Headline string
	Window   string
	Timezone string
	Location *time.Location

	PreviewAddr string
	Debug       bool
	Version     string
}

func (c *Cfg) FetchTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}
