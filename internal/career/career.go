// Package career opens career sheets and scores how well they fit the
// student.
package career

import (
	"fmt"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/models"
)

const (
	minMatch = 65
	maxMatch = 95
)

// Recorder is told about every career the student opens.
// *profile.Dashboard implements it.
type Recorder interface {
	ExploreCareer(title string)
}

// View is an opened career sheet.
type View struct {
	Career models.CareerDetail
	// Match is the displayed fit percentage, in [65,95].
	Match int
}

type Explorer struct {
	catalog  *catalog.Catalog
	rng      game.Rand
	recorder Recorder
}

// NewExplorer returns an explorer over cat. recorder may be nil.
func NewExplorer(cat *catalog.Catalog, rng game.Rand, recorder Recorder) *Explorer {
	return &Explorer{catalog: cat, rng: rng, recorder: recorder}
}

// Careers lists every career sheet.
func (e *Explorer) Careers() []models.CareerDetail {
	return e.catalog.Careers
}

// Open returns the sheet for slug and records the visit.
func (e *Explorer) Open(slug string) (*View, error) {
	c, ok := e.catalog.Career(slug)
	if !ok {
		return nil, fmt.Errorf("unknown career %q", slug)
	}
	if e.recorder != nil {
		e.recorder.ExploreCareer(c.Title)
	}
	return &View{Career: c, Match: MatchPercentage(e.rng)}, nil
}

// MatchPercentage draws a fit percentage in [65,95].
func MatchPercentage(rng game.Rand) int {
	return minMatch + rng.IntN(maxMatch-minMatch+1)
}
