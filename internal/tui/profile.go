package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/horizons-app/horizons/internal/models"
	"github.com/horizons-app/horizons/internal/profile"
)

var tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C"))

func (m model) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter":
			return m.backToMenu(), nil
		}
	}
	return m, nil
}

func profileView(d *profile.Dashboard, width int) string {
	if d == nil {
		return "Sin perfil."
	}
	p := d.Profile
	var b strings.Builder

	b.WriteString(titleStyle.Render("MI PERFIL") + "\n")
	who := d.Name()
	if p.User != nil && p.User.Email != "" {
		who += " · " + p.User.Email
	}
	b.WriteString(who + "\n")
	b.WriteString(helpStyle.Render("Miembro desde "+profile.MemberSinceLabel(p)) + "\n\n")

	b.WriteString(scoreBar("Exploración", p.Exploration) + "\n")
	b.WriteString(scoreBar("Autoconocimiento", p.SelfKnowledge) + "\n")
	b.WriteString(scoreBar("Alineación", p.Alignment) + "\n")
	b.WriteString(scoreBar("Preparación para decidir", p.DecisionReadiness) + "\n\n")

	counters := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers("Juegos", "Carreras", "Tiempo", "Racha").
		Row(
			fmt.Sprint(p.GamesPlayed),
			fmt.Sprint(p.CareersExplored),
			profile.TimeSpentLabel(p),
			fmt.Sprintf("%d días", p.CurrentStreak),
		).
		StyleFunc(headerStyle)
	b.WriteString(counters.Render() + "\n\n")

	b.WriteString(titleStyle.Render("ACTIVIDAD RECIENTE") + "\n")
	if len(p.Activities) == 0 {
		b.WriteString(helpStyle.Render("Juega o explora una carrera para empezar.") + "\n")
	}
	for _, a := range p.Activities {
		b.WriteString(fmt.Sprintf("  • %s %s\n", a.Title, helpStyle.Render(profile.ActivityAge(a))))
	}

	if records := recordRows(d); len(records) > 0 {
		b.WriteString("\n" + titleStyle.Render("RESULTADOS") + "\n")
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(tableBorder).
			Headers("Juego", "Fecha", "Mejor área").
			Rows(records...).
			StyleFunc(headerStyle)
		if width > 0 {
			t = t.Width(min(width-4, 80))
		}
		b.WriteString(t.Render() + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("Esc: menú"))
	return b.String()
}

func headerStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return selectedStyle.Padding(0, 1)
	}
	return lipgloss.NewStyle().Padding(0, 1)
}

// recordRows lists finished games, newest first.
func recordRows(d *profile.Dashboard) [][]string {
	var records []models.GameRecord
	for _, name := range []string{profile.GameMUN, profile.GameDesignLab} {
		records = append(records, d.RecordsOf(name)...)
	}
	slices.SortStableFunc(records, func(a, b models.GameRecord) int {
		return b.FinishedAt.Compare(a.FinishedAt)
	})
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{gameLabel(r.Game), r.FinishedAt.Format("02/01/2006 15:04"), bestArea(r.Scores)})
	}
	return rows
}

func gameLabel(name string) string {
	switch name {
	case profile.GameMUN:
		return "Simulador MUN"
	case profile.GameDesignLab:
		return "Design Lab"
	}
	return name
}

var areaLabels = map[string]string{
	"international_relations": "Relaciones Internacionales",
	"leadership":              "Liderazgo",
	"law":                     "Derecho",
	"communication":           "Comunicación",
	"visual_design":           "Diseño Visual",
	"creativity":              "Creatividad",
	"aesthetic_sense":         "Sentido Estético",
	"technical_skills":        "Habilidades Técnicas",
}

// bestArea names the highest score of a record.
func bestArea(scores models.Scores) string {
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "-"
	}
	slices.Sort(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if scores[k] > scores[best] {
			best = k
		}
	}
	label, ok := areaLabels[best]
	if !ok {
		label = best
	}
	return fmt.Sprintf("%s %.0f%%", label, scores[best]*100)
}
