package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/horizons-app/horizons/internal/career"
	"github.com/horizons-app/horizons/internal/models"
)

type careerScreen struct {
	explorer *career.Explorer
	cursor   int
	// open is the sheet being read, nil on the list.
	open     *career.View
	viewport viewport.Model
}

func newCareerScreen(explorer *career.Explorer) careerScreen {
	return careerScreen{explorer: explorer}
}

func (m model) updateCareer(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	s := &m.career

	if s.open != nil {
		switch key.String() {
		case "esc", "q", "backspace":
			s.open = nil
			return m, nil
		}
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return m, cmd
	}

	careers := s.explorer.Careers()
	switch key.String() {
	case "esc", "q":
		return m.backToMenu(), nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(careers)-1 {
			s.cursor++
		}
	case "enter":
		if len(careers) == 0 {
			return m, nil
		}
		v, err := s.explorer.Open(careers[s.cursor].Slug)
		if err != nil {
			m.deps.Log.Warn("open career", zap.Error(err))
			return m, nil
		}
		s.open = v
		width, height := m.width, m.height
		if width == 0 {
			width, height = 80, 24
		}
		s.viewport = newViewport(width-2, height-4)
		s.viewport.SetContent(careerSheet(v, width-4))
		m.saveProfile()
	}
	return m, nil
}

func (s careerScreen) view() string {
	if s.open != nil {
		return s.viewport.View() + "\n" + helpStyle.Render("↑/↓: desplazar · Esc: volver")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("CARRERAS") + "\n\n")
	for i, c := range s.explorer.Careers() {
		b.WriteString(cursorLine(c.Title, i == s.cursor) + "\n")
		if i == s.cursor && c.Subtitle != "" {
			b.WriteString(helpStyle.Render("    "+c.Subtitle) + "\n")
		}
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: elegir · Enter: abrir · Esc: menú"))
	return b.String()
}

// careerSheet renders the full sheet of an opened career.
func careerSheet(v *career.View, width int) string {
	c := v.Career
	text := lipgloss.NewStyle().Width(width)
	var b strings.Builder

	b.WriteString(titleStyle.Render(strings.ToUpper(c.Title)) + "\n")
	b.WriteString(c.Subtitle + "\n\n")
	b.WriteString(selectedStyle.Render(fmt.Sprintf("%d%% compatible contigo", v.Match)) + "\n\n")
	b.WriteString(text.Render(c.Description) + "\n\n")
	b.WriteString(fmt.Sprintf("Salario promedio: %s · Crecimiento: %s\n", c.AverageSalary, c.JobGrowth))

	section(&b, "ÁREAS PRINCIPALES", c.MainAreas)
	section(&b, "UN DÍA TÍPICO", c.DailyActivities)
	section(&b, "DÓNDE TRABAJARÍAS", c.WorkEnvironments)
	section(&b, "PERSONALIDAD", c.PersonalityTraits)

	b.WriteString("\n" + titleStyle.Render("HABILIDADES") + "\n")
	for _, sk := range append(append([]models.Skill{}, c.HardSkills...), c.SoftSkills...) {
		b.WriteString(scoreBar(sk.Name, sk.Importance) + " " + helpStyle.Render(sk.ImportanceLevel) + "\n")
	}

	if len(c.AcademicPath) > 0 {
		b.WriteString("\n" + titleStyle.Render("RUTA ACADÉMICA") + "\n")
		for i, step := range c.AcademicPath {
			b.WriteString(fmt.Sprintf("  %d. %s (%s)\n", i+1, step.Title, step.Duration))
			b.WriteString(helpStyle.Render("     "+step.Description) + "\n")
		}
	}

	if len(c.CareerProgression) > 0 {
		b.WriteString("\n" + titleStyle.Render("PROGRESIÓN") + "\n")
		for _, st := range c.CareerProgression {
			b.WriteString(fmt.Sprintf("  • %s · %s\n", st.Title, st.SalaryRange))
		}
	}

	if len(c.Courses) > 0 {
		b.WriteString("\n" + titleStyle.Render("CURSOS") + "\n")
		for _, co := range c.Courses {
			price := "pago"
			if co.IsFree {
				price = "gratis"
			}
			b.WriteString(fmt.Sprintf("  • %s · %s · %s · %s\n", co.Title, co.Provider, co.Duration, price))
		}
	}

	if len(c.Books) > 0 {
		b.WriteString("\n" + titleStyle.Render("LIBROS") + "\n")
		for _, bk := range c.Books {
			b.WriteString(fmt.Sprintf("  • %s, %s\n", bk.Title, bk.Author))
		}
	}

	if len(c.Organizations) > 0 {
		b.WriteString("\n" + titleStyle.Render("ORGANIZACIONES") + "\n")
		for _, o := range c.Organizations {
			b.WriteString("  • " + o.Name + "\n")
		}
	}

	if len(c.Universities) > 0 {
		b.WriteString("\n" + titleStyle.Render("UNIVERSIDADES") + "\n")
		rows := make([][]string, 0, len(c.Universities))
		for _, u := range c.Universities {
			rows = append(rows, []string{u.Name, u.Location, u.Ranking, u.Tuition, u.AdmissionRate})
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(tableBorder).
			Headers("Universidad", "Ubicación", "Ranking", "Costo", "Admisión").
			Rows(rows...).
			StyleFunc(headerStyle)
		b.WriteString(t.Render() + "\n")
	}
	return b.String()
}

func section(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + titleStyle.Render(title) + "\n")
	for _, it := range items {
		b.WriteString("  • " + it + "\n")
	}
}
