// Package catalog holds the set of graduate programs the recommender picks
// from. The built-in list is embedded; a YAML file can replace it and is
// reloaded when it changes on disk.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alexanderramin/gradplan/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed programs.yaml
var builtin []byte

// AnyCountry in a profile's target countries matches every program.
const AnyCountry = "Any"

var ErrEmptyCatalog = errors.New("catalog has no programs")

type file struct {
	Programs []domain.Program `yaml:"programs"`
}

// Catalog is safe for concurrent use. Reload swaps the program list
// atomically; readers always get a copy.
type Catalog struct {
	mu       sync.RWMutex
	path     string
	programs []domain.Program
}

// Builtin returns the embedded catalog.
func Builtin() *Catalog {
	programs, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return &Catalog{programs: programs}
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// New wraps an in-memory program list, mainly for tests.
func New(programs []domain.Program) *Catalog {
	return &Catalog{programs: append([]domain.Program(nil), programs...)}
}

// Parse decodes a catalog document. Unknown keys are rejected so typos in a
// hand-edited file surface instead of silently dropping fields.
func Parse(data []byte) ([]domain.Program, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(f.Programs) == 0 {
		return nil, ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(f.Programs))
	for i, p := range f.Programs {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.University) == "" {
			return nil, fmt.Errorf("program %d: name and university are required", i+1)
		}
		if seen[p.Key()] {
			return nil, fmt.Errorf("program %d: duplicate %q", i+1, p.DisplayName())
		}
		seen[p.Key()] = true
	}
	return f.Programs, nil
}

// Reload re-reads the backing file. On error the current list is kept.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", c.path, err)
	}
	programs, err := Parse(data)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", c.path, err)
	}
	c.mu.Lock()
	c.programs = programs
	c.mu.Unlock()
	return nil
}

// Path returns the backing file, or "" for the embedded catalog.
func (c *Catalog) Path() string { return c.path }

func (c *Catalog) Programs() []domain.Program {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Program(nil), c.programs...)
}

// Filter keeps programs whose country contains any of the target countries,
// ignoring case. AnyCountry or an empty list matches everything, and a filter
// that matches nothing falls back to the whole catalog.
func (c *Catalog) Filter(countries []string) []domain.Program {
	all := c.Programs()
	wanted := make([]string, 0, len(countries))
	for _, country := range countries {
		country = strings.ToLower(strings.TrimSpace(country))
		if country == strings.ToLower(AnyCountry) {
			return all
		}
		if country != "" {
			wanted = append(wanted, country)
		}
	}
	if len(wanted) == 0 {
		return all
	}

	var out []domain.Program
	for _, p := range all {
		country := strings.ToLower(p.Country)
		for _, w := range wanted {
			if strings.Contains(country, w) {
				out = append(out, p)
				break
			}
		}
	}
	if len(out) == 0 {
		return all
	}
	return out
}

// Find looks a program up by name, optionally narrowed by university.
// Matching ignores case.
func (c *Catalog) Find(name, university string) (domain.Program, bool) {
	for _, p := range c.Programs() {
		if !strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name)) {
			continue
		}
		if university != "" && !strings.EqualFold(strings.TrimSpace(p.University), strings.TrimSpace(university)) {
			continue
		}
		return p, true
	}
	return domain.Program{}, false
}
