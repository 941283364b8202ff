package feed

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultCatalog is the source list shipped with the binary.
func DefaultCatalog() Catalog {
	return Catalog{
		Feeds: []Source{
			{
				Name: "arXiv astro-ph (recent)",
				Kind: "rss",
				URL:  "https://rss.arxiv.org/rss/astro-ph",
				Tags: []string{"arxiv", "astro-ph"},
			},
			{
				Name: "ESA / Hubble News",
				Kind: "rss",
				URL:  "https://esahubble.org/feeds/news/",
				Tags: []string{"esa", "hubble"},
			},
			{
				Name: "NOIRLab News",
				Kind: "rss",
				URL:  "https://noirlab.edu/public/news/feed/",
				Tags: []string{"noirlab"},
			},
		},
		References: []Source{
			{Name: "Rubin Observatory News", Kind: "web/news", URL: "https://rubinobservatory.org/news"},
			{Name: "ESO Press Releases", Kind: "web/press", URL: "https://www.eso.org/public/news/"},
			{Name: "NASA APOD", Kind: "web/daily", URL: "https://apod.nasa.gov/apod/astropix.html"},
		},
	}
}

// LoadCatalog returns DefaultCatalog when path is empty, otherwise the
// validated catalog stored in the YAML file at path.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read sources file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateCatalog(catalog); err != nil {
		return Catalog{}, fmt.Errorf("invalid sources file %s: %w", path, err)
	}

	slog.Debug("Sources loaded", "file", path, "feeds", len(catalog.Feeds), "references", len(catalog.References))

	return catalog, nil
}

func validateCatalog(catalog Catalog) error {
	if err := validator.New().Struct(catalog); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fmt.Errorf("%s failed on '%s' rule", first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}
