package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/horizons-app/horizons/internal/brain"
	"github.com/horizons-app/horizons/internal/catalog"
	"github.com/horizons-app/horizons/internal/config"
	"github.com/horizons-app/horizons/internal/game"
	"github.com/horizons-app/horizons/internal/game/designlab"
	"github.com/horizons-app/horizons/internal/game/mun"
	"github.com/horizons-app/horizons/internal/models"
	"github.com/horizons-app/horizons/internal/remote"
)

var (
	seed    = flag.Uint64("seed", 1, "seed for the game and the random player")
	useLLM  = flag.Bool("llm", false, "let Gemini pick the answers (needs GEMINI_API_KEY)")
	message = flag.String("message", "", "also send this message to BRAIN and print the reply")
)

// player picks one of options for the question in prompt.
type player interface {
	choose(ctx context.Context, prompt string, options []string) int
}

type randomPlayer struct{ rng game.Rand }

func (p randomPlayer) choose(_ context.Context, _ string, options []string) int {
	return p.rng.IntN(len(options))
}

type llmPlayer struct {
	model    *genai.GenerativeModel
	fallback player
}

func (p llmPlayer) choose(ctx context.Context, prompt string, options []string) int {
	var b strings.Builder
	b.WriteString("You are a high school student trying out a career simulator.\n")
	b.WriteString(prompt + "\n\n")
	for i, o := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, o)
	}
	b.WriteString("\nReturn ONLY the number of your choice.")

	resp, err := p.model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return p.fallback.choose(ctx, prompt, options)
	}
	n, err := strconv.Atoi(strings.Trim(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), " .\n"))
	if err != nil || n < 1 || n > len(options) {
		return p.fallback.choose(ctx, prompt, options)
	}
	return n - 1
}

// fastClock fires at once so the creation stage does not wait.
type fastClock struct{}

func (fastClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	var p player = randomPlayer{rng: game.NewRand(*seed + 1)}
	if *useLLM {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer client.Close()
		p = llmPlayer{model: client.GenerativeModel("gemini-2.5-flash"), fallback: p}
	}

	playMUN(ctx, cat, p)
	playDesignLab(ctx, cat, p)

	if *message != "" {
		fmt.Println("--- BRAIN ---")
		c := brain.NewClient(cfg.BrainURL, remote.WithTimeout(cfg.HTTPTimeout))
		reply, err := c.Send(ctx, cfg.UserID, *message)
		if err != nil {
			log.Fatalf("BRAIN: %v", err)
		}
		fmt.Printf("You: %s\nBRAIN: %s\n", *message, reply)
	}
}

func playMUN(ctx context.Context, cat *catalog.Catalog, p player) {
	s := mun.NewSession(mun.NewMachine(cat.MUN, game.NewRand(*seed)))
	m := s.Machine()

	fmt.Println("--- Model UN ---")
	s.Advance()

	names := make([]string, 0, len(m.Countries()))
	for _, c := range m.Countries() {
		names = append(names, c.Name)
	}
	country := names[p.choose(ctx, "Which country do you want to represent at the UN Security Council?", names)]
	s.SelectCountry(country)
	s.Advance()
	fmt.Printf("Delegation: %s\n\n", country)

	for {
		s.Advance()
		st := s.State()
		options := make([]string, 0, len(st.Crisis.Options))
		for _, o := range st.Crisis.Options {
			options = append(options, o.Title+": "+o.Description)
		}
		pick := p.choose(ctx, "Crisis: "+st.Crisis.Title+"\n"+st.Crisis.Description, options)
		s.SelectOption(st.Crisis.Options[pick].ID)
		s.Advance()

		r := s.State().LastResult
		fmt.Printf("Crisis %d: %s\n", st.CrisisIndex+1, st.Crisis.Title)
		fmt.Printf("Decision: %s [%s]\n", st.Crisis.Options[pick].Title, st.Crisis.Options[pick].Approach.Label())
		fmt.Printf("Result: %s (%s)\n", r.Title, strings.Join(r.SkillsGained, ", "))

		more := s.HasMoreCrises()
		s.Advance()
		if !more {
			break
		}
		fmt.Println()
	}

	printScores(s.State().Scores.Map())
	fmt.Println()
}

func playDesignLab(ctx context.Context, cat *catalog.Catalog, p player) {
	s := designlab.NewSession(designlab.NewMachine(cat.DesignLab, game.NewRand(*seed)))
	m := s.Machine()

	fmt.Println("--- Design Lab ---")
	s.Advance()

	specialties := make([]string, 0, len(m.Specialties()))
	for _, sp := range m.Specialties() {
		specialties = append(specialties, sp.Name)
	}
	s.SelectSpecialty(specialties[p.choose(ctx, "Which design specialty do you want to try?", specialties)])
	s.Advance()
	fmt.Printf("Specialty: %s\n\n", s.State().Specialty.Name)

	tools := make([]string, 0, len(m.Tools()))
	for _, t := range m.Tools() {
		tools = append(tools, t.Name)
	}
	styles := make([]string, 0, len(m.Styles()))
	for _, st := range m.Styles() {
		styles = append(styles, st.Name+": "+st.Description)
	}

	for {
		brief := s.State().Challenge
		prompt := "Brief: " + brief.Title + "\n" + brief.Description
		for range 2 {
			name := tools[p.choose(ctx, prompt+"\nPick a tool to use.", tools)]
			if !s.State().HasTool(name) {
				s.ToggleTool(name)
			}
		}
		s.SelectStyle(m.Styles()[p.choose(ctx, prompt+"\nPick a visual style.", styles)].Name)
		s.Advance()

		if err := designlab.RunCreation(ctx, fastClock{}, func(int) { s.Tick() }); err != nil {
			log.Fatalf("Creation interrupted: %v", err)
		}
		s.Advance()

		st := s.State()
		names := make([]string, 0, len(st.Tools))
		for _, t := range st.Tools {
			names = append(names, t.Name)
		}
		fmt.Printf("Brief %d: %s\n", st.ChallengeIndex+1, brief.Title)
		fmt.Printf("Tools: %s · Style: %s\n", strings.Join(names, ", "), st.Style.Name)
		fmt.Printf("Rating: %d/5 · %s\n", st.Rating, st.Feedback.Comment)

		more := s.HasMoreChallenges()
		s.Advance()
		if !more {
			break
		}
		fmt.Println()
	}

	st := s.State()
	printScores(st.Scores.Map())
	fmt.Printf("Creative points: %d\n\n", st.Points)
}

func printScores(scores models.Scores) {
	for _, k := range slices.Sorted(maps.Keys(scores)) {
		fmt.Printf("  %-25s %3.0f%%\n", k, scores[k]*100)
	}
}
