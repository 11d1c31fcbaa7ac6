package patterns

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Catalog is an optional YAML overlay that extends the built-in banks with
// deployment-specific patterns and keyword seeds. Built-in patterns are
// never replaced or removed; the catalog only appends.
//
// Example:
//
//	version: 1
//	patterns:
//	  - name: local_operator
//	    regex: "(?i)(slotking88|winbig777)"
//	    category: gambling
//	    weight: 0.8
//	    description: Regional gambling operators
//	keywords:
//	  negative: [giveaway, airdrop]
//	  positive: [university]
type Catalog struct {
	Version  int            `yaml:"version"`
	Patterns []CatalogEntry `yaml:"patterns"`
	Keywords CatalogWords   `yaml:"keywords"`
}

// CatalogEntry is one pattern definition in the overlay file.
type CatalogEntry struct {
	Name        string  `yaml:"name"`
	Regex       string  `yaml:"regex"`
	Category    string  `yaml:"category"`
	Weight      float64 `yaml:"weight"`
	Description string  `yaml:"description"`
}

// CatalogWords carries extra keyword seeds for the density analyzer.
type CatalogWords struct {
	Negative []string `yaml:"negative"`
	Positive []string `yaml:"positive"`
}

var validCategories = map[Category]bool{
	CategoryScam:             true,
	CategoryGambling:         true,
	CategoryAdult:            true,
	CategorySuspiciousURL:    true,
	CategoryPath:             true,
	CategoryCredentialField:  true,
	CategorySensitiveRequest: true,
	CategoryFakeUI:           true,
	CategoryUrgency:          true,
	CategoryMoneyLure:        true,
	CategoryCryptoMining:     true,
	CategoryGamblingRedirect: true,
}

// LoadCatalog reads and parses a catalog overlay file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if c.Version != 1 {
		return nil, fmt.Errorf("unsupported catalog version %d", c.Version)
	}
	return &c, nil
}

// Apply compiles every catalog entry and appends it to the registry.
// Returns the number of patterns added. The first invalid entry aborts
// with an error; nothing is rolled back, so validate catalogs before
// shipping them.
func (c *Catalog) Apply(r *Registry) (int, error) {
	added := 0
	for i, entry := range c.Patterns {
		cat := Category(entry.Category)
		if !validCategories[cat] {
			return added, fmt.Errorf("catalog entry %d (%s): unknown category %q", i, entry.Name, entry.Category)
		}
		if entry.Weight <= 0 || entry.Weight > 1 {
			return added, fmt.Errorf("catalog entry %d (%s): weight %v out of range (0,1]", i, entry.Name, entry.Weight)
		}
		compiled, err := regexp.Compile(entry.Regex)
		if err != nil {
			return added, fmt.Errorf("catalog entry %d (%s): %w", i, entry.Name, err)
		}

		r.Add(&Pattern{
			Name:        entry.Name,
			Regex:       compiled,
			Category:    cat,
			Weight:      entry.Weight,
			Description: entry.Description,
		})
		added++
	}
	return added, nil
}
