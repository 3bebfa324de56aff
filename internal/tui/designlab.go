package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/game/designlab"
)

const (
	focusTools = iota
	focusStyles
)

type labScreen struct {
	session  *designlab.Session
	cursor   int
	focus    int
	started  time.Time
	recorded bool

	// run identifies the creation whose ticks are accepted.
	run    int
	ticks  chan int
	cancel context.CancelFunc
}

type creationTickMsg struct {
	run  int
	step int
}

type creationDoneMsg struct {
	run int
}

func newLabScreen(cat *catalog.Catalog, rng game.Rand) labScreen {
	return labScreen{
		session: designlab.NewSession(designlab.NewMachine(cat.DesignLab, rng)),
		started: time.Now(),
	}
}

func (s *labScreen) stopCreation() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// startCreation runs the creation timer in the background and returns the
// command that relays its first tick.
func (s *labScreen) startCreation(clock designlab.Clock) tea.Cmd {
	s.stopCreation()
	s.run++
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	ticks := make(chan int)
	s.ticks = ticks
	go func() {
		defer close(ticks)
		designlab.RunCreation(ctx, clock, func(step int) {
			select {
			case ticks <- step:
			case <-ctx.Done():
			}
		})
	}()
	return waitForTick(s.run, ticks)
}

func waitForTick(run int, ticks <-chan int) tea.Cmd {
	return func() tea.Msg {
		step, ok := <-ticks
		if !ok {
			return creationDoneMsg{run: run}
		}
		return creationTickMsg{run: run, step: step}
	}
}

func (s labScreen) listLen() int {
	m := s.session.Machine()
	switch s.session.State().Stage {
	case designlab.StageSpecialtySelection:
		return len(m.Specialties())
	case designlab.StageChallengePresentation:
		if s.focus == focusStyles {
			return len(m.Styles())
		}
		return len(m.Tools())
	}
	return 0
}

func (m model) updateLab(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.lab

	switch msg := msg.(type) {
	case creationTickMsg:
		if msg.run != s.run {
			return m, nil
		}
		s.session.Tick()
		return m, waitForTick(msg.run, s.ticks)
	case creationDoneMsg:
		if msg.run == s.run {
			s.cancel = nil
		}
		return m, nil
	case tea.KeyMsg:
		return m.labKey(msg)
	}
	return m, nil
}

func (m model) labKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.lab
	st := s.session.State()
	mach := s.session.Machine()

	switch key.String() {
	case "esc", "q":
		s.stopCreation()
		return m.backToMenu(), nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.listLen()-1 {
			s.cursor++
		}
	case "tab":
		if st.Stage == designlab.StageChallengePresentation {
			s.focus = 1 - s.focus
			s.cursor = 0
		}
	case " ":
		if st.Stage != designlab.StageChallengePresentation {
			break
		}
		if s.focus == focusTools {
			s.session.ToggleTool(mach.Tools()[s.cursor].Name)
		} else {
			s.session.SelectStyle(mach.Styles()[s.cursor].Name)
		}
	case "r":
		s.stopCreation()
		s.session.Restart()
		s.cursor, s.focus = 0, focusTools
		s.started = time.Now()
		s.recorded = false
	case "enter":
		switch st.Stage {
		case designlab.StageSpecialtySelection:
			s.session.SelectSpecialty(mach.Specialties()[s.cursor].Name)
		case designlab.StageFinalSummary:
			m.recordLab()
			return m.backToMenu(), nil
		}
		if !s.session.Advance() {
			return m, nil
		}
		s.cursor, s.focus = 0, focusTools
		switch s.session.State().Stage {
		case designlab.StageCreation:
			return m, s.startCreation(m.deps.Clock)
		case designlab.StageFinalSummary:
			m.recordLab()
		}
	}
	return m, nil
}

func (m *model) recordLab() {
	s := &m.lab
	st := s.session.State()
	if s.recorded || st.Scores == nil {
		return
	}
	m.dashboard.RecordDesignLab(*st.Scores, st.Skills, playedSince(s.started))
	m.saveProfile()
	s.recorded = true
}

func (s labScreen) view() string {
	st := s.session.State()
	mach := s.session.Machine()
	var b strings.Builder

	b.WriteString(titleStyle.Render("DESIGN LAB") + "\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("Paso %d · %s · %d puntos creativos", st.Step+1, st.Stage, st.Points)) + "\n\n")
	help := "↑/↓: elegir · Enter: continuar · r: reiniciar · Esc: menú"

	switch st.Stage {
	case designlab.StageIntro:
		b.WriteString("Ponte en los zapatos de un diseñador profesional.\n")
		b.WriteString(fmt.Sprintf("Resolverás %d briefs eligiendo herramientas y estilo, y recibirás\n", mach.ChallengeCount()))
		b.WriteString("la crítica de un director creativo.\n")

	case designlab.StageSpecialtySelection:
		b.WriteString("Elige tu especialidad:\n\n")
		for i, sp := range mach.Specialties() {
			b.WriteString(cursorLine(sp.Name+" · "+sp.Description, i == s.cursor) + "\n")
			if i == s.cursor {
				b.WriteString(helpStyle.Render("    "+strings.Join(sp.KeyAreas, " · ")) + "\n")
			}
		}

	case designlab.StageChallengePresentation:
		b.WriteString(fmt.Sprintf("Brief %d de %d\n", st.ChallengeIndex+1, mach.ChallengeCount()))
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(st.Challenge.Title) + "\n")
		b.WriteString(st.Challenge.Description + "\n")
		for _, r := range st.Challenge.Requirements {
			b.WriteString("  • " + r + "\n")
		}
		b.WriteString("\n")

		var tools, styles strings.Builder
		tools.WriteString(titleStyle.Render("HERRAMIENTAS") + "\n")
		for i, t := range mach.Tools() {
			mark := "[ ]"
			if st.HasTool(t.Name) {
				mark = "[x]"
			}
			tools.WriteString(cursorLine(mark+" "+t.Name, s.focus == focusTools && i == s.cursor) + "\n")
		}
		styles.WriteString(titleStyle.Render("ESTILO") + "\n")
		for i, sty := range mach.Styles() {
			mark := "( )"
			if st.Style != nil && st.Style.Name == sty.Name {
				mark = "(•)"
			}
			styles.WriteString(cursorLine(fmt.Sprintf("%s %s %s", mark, sty.Emoji, sty.Name), s.focus == focusStyles && i == s.cursor) + "\n")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tools.String(), "    ", panelStyle.Render(styles.String())))
		help = "Tab: herramientas/estilo · Espacio: marcar · Enter: crear · Esc: menú"

	case designlab.StageCreation:
		b.WriteString("Creando tu diseño...\n\n")
		const width = 30
		filled := int(st.Progress() * width)
		b.WriteString(selectedStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled) + "\n\n")
		for i := 1; i <= designlab.CreationSteps; i++ {
			step, _ := mach.CreationStep(i)
			mark := "○"
			if i <= st.CreationStep {
				mark = "●"
			}
			b.WriteString(fmt.Sprintf("  %s %s · %s\n", mark, step.Name, helpStyle.Render(step.Description)))
		}
		if st.CreationStep == designlab.CreationSteps {
			help = "Enter: ver resultado · Esc: menú"
		} else {
			help = "Esc: menú"
		}

	case designlab.StageResultPresentation:
		b.WriteString(strings.Repeat("★", st.Rating) + strings.Repeat("☆", 5-st.Rating) + fmt.Sprintf("  %d/5 estrellas\n\n", st.Rating))
		if fb := st.Feedback; fb != nil {
			b.WriteString(botStyle.Render(fb.Comment) + "\n\n")
			b.WriteString("Fortalezas: " + strings.Join(fb.Strengths, ", ") + "\n")
			b.WriteString("A mejorar: " + strings.Join(fb.Improvements, ", ") + "\n\n")
		}
		b.WriteString("Habilidades desarrolladas:\n")
		for _, sk := range st.Skills {
			b.WriteString("  + " + sk + "\n")
		}
		if s.session.HasMoreChallenges() {
			help = "Enter: siguiente brief · Esc: menú"
		} else {
			help = "Enter: ver resultados · Esc: menú"
		}

	case designlab.StageFinalSummary:
		b.WriteString("Tu perfil creativo:\n\n")
		sc := st.Scores
		b.WriteString(scoreBar("Diseño Visual", sc.VisualDesign) + "\n")
		b.WriteString(scoreBar("Creatividad", sc.Creativity) + "\n")
		b.WriteString(scoreBar("Sentido Estético", sc.AestheticSense) + "\n")
		b.WriteString(scoreBar("Habilidades Técnicas", sc.TechnicalSkills) + "\n\n")
		b.WriteString(fmt.Sprintf("Especialidad: %s · Herramientas usadas: %s\n", st.Specialty.Name, strings.Join(st.ToolsUsed, ", ")))
	}

	b.WriteString("\n\n" + helpStyle.Render(help))
	return b.String()
}
