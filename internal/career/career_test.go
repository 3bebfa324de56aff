package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
)

type visits []string

func (v *visits) ExploreCareer(title string) { *v = append(*v, title) }

func TestOpen(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	var seen visits
	e := NewExplorer(cat, game.NewRand(5), &seen)
	view, err := e.Open("derecho")
	require.NoError(t, err)
	assert.Equal(t, "Derecho", view.Career.Title)
	assert.NotEmpty(t, view.Career.Universities)
	assert.GreaterOrEqual(t, view.Match, 65)
	assert.LessOrEqual(t, view.Match, 95)
	assert.Equal(t, visits{"Derecho"}, seen)

	_, err = e.Open("astronautica")
	assert.Error(t, err)
	assert.Len(t, seen, 1)
}

func TestMatchPercentageRange(t *testing.T) {
	rng := game.NewRand(1)
	hits := map[int]bool{}
	for i := 0; i < 2000; i++ {
		m := MatchPercentage(rng)
		require.GreaterOrEqual(t, m, 65)
		require.LessOrEqual(t, m, 95)
		hits[m] = true
	}
	assert.True(t, hits[65])
	assert.True(t, hits[95])
}
