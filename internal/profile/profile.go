// Package profile keeps the vocational dashboard of the signed-in user:
// progress sliders, counters, the activity feed and finished games.
package profile

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/game/designlab"
	"github.com/horizons-app/horizons/internal/game/mun"
	"github.com/horizons-app/horizons/internal/models"
)

const (
	GameMUN       = "mun"
	GameDesignLab = "designlab"

	maxActivities = 10
)

// How much each event moves the progress sliders.
const (
	gameExploration   = 0.10
	gameSelfKnowledge = 0.10
	gameReadiness     = 0.05
	careerExploration = 0.05
	careerAlignment   = 0.10
	careerReadiness   = 0.05
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Dashboard is the profile of one saved user.
type Dashboard struct {
	name    string
	Profile *models.Profile
	History *models.ProfileHistory

	now func() time.Time
}

// Open loads the profile saved under name, or starts a new one.
func Open(name string) (*Dashboard, error) {
	d := &Dashboard{name: name, now: time.Now}
	p, h, err := models.LoadProfile(name)
	switch {
	case errors.Is(err, models.ErrNoProfile):
		d.Profile, d.History = d.fresh()
	case err != nil:
		return nil, fmt.Errorf("open profile: %w", err)
	default:
		d.Profile, d.History = p, h
	}
	return d, nil
}

func (d *Dashboard) Name() string { return d.name }

func (d *Dashboard) Save() error {
	if err := models.SaveProfile(d.name, d.Profile, d.History); err != nil {
		return fmt.Errorf("save profile %s: %w", d.name, err)
	}
	return nil
}

func (d *Dashboard) SetUser(u *models.User) {
	d.Profile.User = u
}

// RecordGame stores a finished game and moves the sliders.
func (d *Dashboard) RecordGame(name string, scores models.Scores, skills []string, played time.Duration) {
	now := d.now()
	d.History.Records = append(d.History.Records, models.GameRecord{
		Game:       name,
		Scores:     scores,
		Skills:     slices.Clone(skills),
		FinishedAt: now,
	})

	p := d.Profile
	p.GamesPlayed++
	p.TimeSpent += played
	p.Exploration = game.Clamp01(p.Exploration + gameExploration)
	p.SelfKnowledge = game.Clamp01(p.SelfKnowledge + gameSelfKnowledge)
	p.DecisionReadiness = game.Clamp01(p.DecisionReadiness + gameReadiness)
	d.addActivity(gameTitle(name), gameIcon(name), now)
}

func (d *Dashboard) RecordMUN(s mun.Scores, skills []string, played time.Duration) {
	d.RecordGame(GameMUN, s.Map(), skills, played)
}

func (d *Dashboard) RecordDesignLab(s designlab.Scores, skills []string, played time.Duration) {
	d.RecordGame(GameDesignLab, s.Map(), skills, played)
}

// ExploreCareer counts a visit to a career sheet.
func (d *Dashboard) ExploreCareer(title string) {
	p := d.Profile
	p.CareersExplored++
	p.Exploration = game.Clamp01(p.Exploration + careerExploration)
	p.Alignment = game.Clamp01(p.Alignment + careerAlignment)
	p.DecisionReadiness = game.Clamp01(p.DecisionReadiness + careerReadiness)
	d.addActivity("Exploraste "+title, "book.fill", d.now())
}

// Logout clears the in-memory profile. The saved copy is kept.
func (d *Dashboard) Logout() {
	d.Profile, d.History = d.fresh()
}

func (d *Dashboard) fresh() (*models.Profile, *models.ProfileHistory) {
	return &models.Profile{MemberSince: d.now()}, &models.ProfileHistory{}
}

// addActivity prepends to the feed and updates the daily streak.
func (d *Dashboard) addActivity(title, icon string, at time.Time) {
	p := d.Profile
	if len(p.Activities) == 0 {
		p.CurrentStreak = 1
	} else {
		last := p.Activities[0].At
		switch daysBetween(last, at) {
		case 0:
			if p.CurrentStreak == 0 {
				p.CurrentStreak = 1
			}
		case 1:
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
	}
	p.Activities = append([]models.Activity{{Title: title, Icon: icon, At: at}}, p.Activities...)
	if len(p.Activities) > maxActivities {
		p.Activities = p.Activities[:maxActivities]
	}
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ActivityAge renders when an activity happened, e.g. "3 minutes ago".
func ActivityAge(a models.Activity) string {
	return humanize.Time(a.At)
}

// MemberSinceLabel renders the signup month, e.g. "Agosto 2025".
func MemberSinceLabel(p *models.Profile) string {
	if p.MemberSince.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s %d", monthNames[p.MemberSince.Month()-1], p.MemberSince.Year())
}

// TimeSpentLabel renders total play time in hours, e.g. "1.2h".
func TimeSpentLabel(p *models.Profile) string {
	return fmt.Sprintf("%.1fh", p.TimeSpent.Hours())
}

// RecordsOf returns the finished games of one kind, oldest first.
func (d *Dashboard) RecordsOf(name string) []models.GameRecord {
	var out []models.GameRecord
	for _, r := range d.History.Records {
		if r.Game == name {
			out = append(out, r)
		}
	}
	return out
}

func gameTitle(name string) string {
	switch name {
	case GameMUN:
		return "Completaste el simulador MUN"
	case GameDesignLab:
		return "Completaste Design Lab"
	}
	return "Completaste " + name
}

func gameIcon(name string) string {
	switch name {
	case GameMUN:
		return "globe.americas.fill"
	case GameDesignLab:
		return "paintpalette.fill"
	}
	return "gamecontroller.fill"
}
