// Package catalog holds the hand-authored content of the app: MUN countries
// and crises, Design Lab briefs and tools, and career sheets. The tables are
// embedded YAML fixtures and never change at runtime.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/horizons-app/horizons/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/mun.yaml
var munData []byte

//go:embed data/designlab.yaml
var designLabData []byte

//go:embed data/careers.yaml
var careersData []byte

// MUN is the content of the Model UN simulator.
type MUN struct {
	Countries []models.Country `yaml:"countries"`
	Crises    []models.Crisis  `yaml:"crises"`
	Outcomes  []models.Outcome `yaml:"outcomes"`
}

// CreationStep labels one tick of the Design Lab creation stage.
type CreationStep struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DesignLab is the content of the Design Lab simulator.
type DesignLab struct {
	Specialties   []models.DesignSpecialty `yaml:"specialties"`
	Tools         []models.DesignTool      `yaml:"tools"`
	Styles        []models.DesignStyle     `yaml:"styles"`
	Challenges    []models.DesignChallenge `yaml:"challenges"`
	Comments      []string                 `yaml:"comments"`
	Strengths     []string                 `yaml:"strengths"`
	Improvements  []string                 `yaml:"improvements"`
	CreationSteps []CreationStep           `yaml:"creation_steps"`
}

// Catalog aggregates every table.
type Catalog struct {
	MUN       MUN
	DesignLab DesignLab
	Careers   []models.CareerDetail
}

// Load parses the embedded tables.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(munData, &c.MUN); err != nil {
		return nil, fmt.Errorf("parse mun catalog: %w", err)
	}
	if err := yaml.Unmarshal(designLabData, &c.DesignLab); err != nil {
		return nil, fmt.Errorf("parse design lab catalog: %w", err)
	}
	var careers struct {
		Careers []models.CareerDetail `yaml:"careers"`
	}
	if err := yaml.Unmarshal(careersData, &careers); err != nil {
		return nil, fmt.Errorf("parse careers catalog: %w", err)
	}
	c.Careers = careers.Careers
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog, parsing it on first use.
// It panics if the embedded tables are malformed.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load()
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

func (c *Catalog) validate() error {
	if len(c.MUN.Crises) == 0 {
		return fmt.Errorf("mun catalog has no crises")
	}
	for _, cr := range c.MUN.Crises {
		if len(cr.Options) == 0 {
			return fmt.Errorf("crisis %d has no options", cr.ID)
		}
	}
	if len(c.DesignLab.Challenges) == 0 {
		return fmt.Errorf("design lab catalog has no challenges")
	}
	return nil
}

// Country looks up a MUN country by name.
func (c *Catalog) Country(name string) (models.Country, bool) {
	for _, country := range c.MUN.Countries {
		if country.Name == name {
			return country, true
		}
	}
	return models.Country{}, false
}

// Specialty looks up a design specialty by name.
func (c *Catalog) Specialty(name string) (models.DesignSpecialty, bool) {
	for _, s := range c.DesignLab.Specialties {
		if s.Name == name {
			return s, true
		}
	}
	return models.DesignSpecialty{}, false
}

// Tool looks up a design tool by name.
func (c *Catalog) Tool(name string) (models.DesignTool, bool) {
	for _, t := range c.DesignLab.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return models.DesignTool{}, false
}

// Style looks up a design style by name.
func (c *Catalog) Style(name string) (models.DesignStyle, bool) {
	for _, s := range c.DesignLab.Styles {
		if s.Name == name {
			return s, true
		}
	}
	return models.DesignStyle{}, false
}

// Career looks up a career sheet by slug.
func (c *Catalog) Career(slug string) (models.CareerDetail, bool) {
	for _, career := range c.Careers {
		if career.Slug == slug {
			return career, true
		}
	}
	return models.CareerDetail{}, false
}
