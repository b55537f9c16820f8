// Package registry holds the fixed roster of tracked companies.
//
// The roster is loaded once at startup, either from the embedded roster.yaml or
// from a file given by the operator, and is read-only afterwards.
package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"climate-dashboard/internal/domain/entity"
)

//go:embed roster.yaml
var defaultRoster []byte

// ErrEmptyRoster is returned when a roster contains no companies.
var ErrEmptyRoster = errors.New("roster has no companies")

// Registry is an immutable, ordered lookup of companies by name.
type Registry struct {
	companies []entity.Company
	byName    map[string]int
}

type rosterFile struct {
	Companies []entity.Company `yaml:"companies"`
}

// New builds a registry preserving the given order.
// Names are trimmed; empty and duplicate names are rejected.
func New(companies []entity.Company) (*Registry, error) {
	if len(companies) == 0 {
		return nil, ErrEmptyRoster
	}

	r := &Registry{
		companies: make([]entity.Company, 0, len(companies)),
		byName:    make(map[string]int, len(companies)),
	}
	for i, c := range companies {
		c.Name = strings.TrimSpace(c.Name)
		c.Group = strings.TrimSpace(c.Group)
		if c.Name == "" {
			return nil, &entity.ValidationError{Field: "name", Message: fmt.Sprintf("roster row %d has an empty name", i+1)}
		}
		if _, dup := r.byName[c.Name]; dup {
			return nil, &entity.ValidationError{Field: "name", Message: fmt.Sprintf("duplicate company %q", c.Name)}
		}
		r.byName[c.Name] = len(r.companies)
		r.companies = append(r.companies, c)
	}
	return r, nil
}

// Parse decodes a YAML roster document.
func Parse(data []byte) (*Registry, error) {
	var doc rosterFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return New(doc.Companies)
}

// Load reads a YAML roster from path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded roster.
func Default() (*Registry, error) {
	return Parse(defaultRoster)
}

// List returns the companies in declared order. The slice is a copy.
func (r *Registry) List() []entity.Company {
	out := make([]entity.Company, len(r.companies))
	copy(out, r.companies)
	return out
}

// Get looks a company up by exact name.
func (r *Registry) Get(name string) (entity.Company, error) {
	i, ok := r.byName[name]
	if !ok {
		return entity.Company{}, fmt.Errorf("company %q: %w", name, entity.ErrNotFound)
	}
	return r.companies[i], nil
}

// Names returns the company names in declared order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.companies))
	for i, c := range r.companies {
		out[i] = c.Name
	}
	return out
}

// Groups returns the distinct non-empty groups in first-appearance order.
func (r *Registry) Groups() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range r.companies {
		if c.Group == "" {
			continue
		}
		if _, ok := seen[c.Group]; ok {
			continue
		}
		seen[c.Group] = struct{}{}
		out = append(out, c.Group)
	}
	return out
}
