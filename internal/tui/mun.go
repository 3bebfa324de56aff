package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/game/mun"
)

type munScreen struct {
	session  *mun.Session
	cursor   int
	started  time.Time
	recorded bool
}

func newMUNScreen(cat *catalog.Catalog, rng game.Rand) munScreen {
	return munScreen{
		session: mun.NewSession(mun.NewMachine(cat.MUN, rng)),
		started: time.Now(),
	}
}

// choices is the length of the list under the cursor in the current stage.
func (s munScreen) choices() int {
	st := s.session.State()
	switch st.Stage {
	case mun.StageCountrySelection:
		return len(s.session.Machine().Countries())
	case mun.StageDecisionCapture:
		return len(st.Crisis.Options)
	}
	return 0
}

func (m model) updateMUN(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	s := &m.mun
	st := s.session.State()

	switch key.String() {
	case "esc", "q":
		return m.backToMenu(), nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.choices()-1 {
			s.cursor++
		}
	case "r":
		s.session.Restart()
		s.cursor = 0
		s.started = time.Now()
		s.recorded = false
	case "enter":
		switch st.Stage {
		case mun.StageCountrySelection:
			s.session.SelectCountry(s.session.Machine().Countries()[s.cursor].Name)
		case mun.StageDecisionCapture:
			s.session.SelectOption(st.Crisis.Options[s.cursor].ID)
		case mun.StageFinalSummary:
			m.recordMUN()
			return m.backToMenu(), nil
		}
		if s.session.Advance() {
			s.cursor = 0
		}
		if s.session.State().Stage == mun.StageFinalSummary {
			m.recordMUN()
		}
	}
	return m, nil
}

func (m *model) recordMUN() {
	s := &m.mun
	st := s.session.State()
	if s.recorded || st.Scores == nil {
		return
	}
	var skills []string
	for _, d := range st.Decisions {
		skills = append(skills, d.SkillsAwarded...)
	}
	m.dashboard.RecordMUN(*st.Scores, skills, playedSince(s.started))
	m.saveProfile()
	s.recorded = true
}

func (s munScreen) view() string {
	st := s.session.State()
	m := s.session.Machine()
	var b strings.Builder

	b.WriteString(titleStyle.Render("SIMULADOR MUN") + "\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("Paso %d · %s", st.Step+1, st.Stage)) + "\n\n")

	switch st.Stage {
	case mun.StageIntro:
		b.WriteString("Representa a un país en el Consejo de Seguridad de la ONU.\n")
		b.WriteString(fmt.Sprintf("Enfrentarás %d crisis internacionales y cada decisión revela tus\n", m.CrisisCount()))
		b.WriteString("habilidades en relaciones internacionales, liderazgo, derecho y comunicación.\n")

	case mun.StageCountrySelection:
		b.WriteString("Elige tu delegación:\n\n")
		for i, c := range m.Countries() {
			line := fmt.Sprintf("%s %s (%s)", c.Flag, c.Name, c.Region)
			b.WriteString(cursorLine(line, i == s.cursor) + "\n")
			if i == s.cursor {
				b.WriteString(helpStyle.Render("    "+strings.Join(c.Characteristics, " · ")) + "\n")
			}
		}

	case mun.StageCrisisPresentation:
		b.WriteString(fmt.Sprintf("Crisis %d de %d · Delegación de %s\n\n", st.CrisisIndex+1, m.CrisisCount(), st.Country.Name))
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(st.Crisis.Title) + "\n")
		b.WriteString(st.Crisis.Description + "\n\n")
		for _, c := range st.Crisis.Context {
			b.WriteString("  • " + c + "\n")
		}

	case mun.StageDecisionCapture:
		b.WriteString("¿Qué posición defiende tu delegación?\n\n")
		for i, o := range st.Crisis.Options {
			line := fmt.Sprintf("%s  [%s]", o.Title, o.Approach.Label())
			b.WriteString(cursorLine(line, i == s.cursor) + "\n")
			if i == s.cursor {
				b.WriteString(helpStyle.Render("    "+o.Description) + "\n")
				b.WriteString(helpStyle.Render("    "+strings.Join(o.Consequences, " · ")) + "\n")
			}
		}

	case mun.StageResultPresentation:
		r := st.LastResult
		mark := "✔"
		if !r.IsPositive {
			mark = "✖"
		}
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(mark+" "+r.Title) + "\n")
		b.WriteString(r.Description + "\n\n")
		b.WriteString("Habilidades desarrolladas:\n")
		for _, sk := range r.SkillsGained {
			b.WriteString("  + " + sk + "\n")
		}
		if s.session.HasMoreCrises() {
			b.WriteString("\n" + helpStyle.Render("Enter: siguiente crisis"))
		} else {
			b.WriteString("\n" + helpStyle.Render("Enter: ver resultados"))
		}

	case mun.StageFinalSummary:
		b.WriteString("Tu compatibilidad con carreras internacionales:\n\n")
		sc := st.Scores
		b.WriteString(scoreBar("Relaciones Internacionales", sc.InternationalRelations) + "\n")
		b.WriteString(scoreBar("Liderazgo", sc.Leadership) + "\n")
		b.WriteString(scoreBar("Derecho", sc.Law) + "\n")
		b.WriteString(scoreBar("Comunicación", sc.Communication) + "\n\n")
		b.WriteString("Decisiones tomadas:\n")
		for _, d := range st.Decisions {
			b.WriteString(fmt.Sprintf("  %s · %s\n", d.Title, d.Approach.Label()))
		}
	}

	b.WriteString("\n\n" + helpStyle.Render("↑/↓: elegir · Enter: continuar · r: reiniciar · Esc: menú"))
	return b.String()
}

func cursorLine(text string, selected bool) string {
	if selected {
		return selectedStyle.Render("> " + text)
	}
	return "  " + text
}

// scoreBar renders a [0,1] score as a 20-cell bar.
func scoreBar(label string, v float64) string {
	const width = 20
	filled := int(v*width + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%-28s %s %3.0f%%", label, selectedStyle.Render(bar), v*100)
}
