package models

import "time"

// Approach is the categorical tag of a MUN decision option.
type Approach string

const (
	Diplomatic   Approach = "diplomatic"
	Economic     Approach = "economic"
	Military     Approach = "military"
	Humanitarian Approach = "humanitarian"
)

// Approaches lists every MUN approach in display order.
var Approaches = []Approach{Diplomatic, Economic, Military, Humanitarian}

// Label returns the Spanish display label used by the app.
func (a Approach) Label() string {
	switch a {
	case Diplomatic:
		return "Diplomático"
	case Economic:
		return "Económico"
	case Military:
		return "Militar"
	case Humanitarian:
		return "Humanitario"
	}
	return string(a)
}

// Country is a delegation the player can represent in the MUN simulator.
type Country struct {
	Name            string   `yaml:"name"`
	Flag            string   `yaml:"flag"`
	Region          string   `yaml:"region"`
	Characteristics []string `yaml:"characteristics"`
}

// DecisionOption is one position the player can take on a crisis.
type DecisionOption struct {
	ID            int      `yaml:"id"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Approach      Approach `yaml:"approach"`
	Icon          string   `yaml:"icon"`
	Consequences  []string `yaml:"consequences"`
	SkillsAwarded []string `yaml:"skills_awarded"`
}

// Crisis is an immutable MUN scenario.
type Crisis struct {
	ID          int              `yaml:"id"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Context     []string         `yaml:"context"`
	Options     []DecisionOption `yaml:"options"`
}

// Outcome is a pre-authored result tuple keyed by approach.
type Outcome struct {
	Approach    Approach `yaml:"approach"`
	Positive    bool     `yaml:"positive"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
}

// DecisionResult is shown after a decision is submitted.
type DecisionResult struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	IsPositive   bool     `yaml:"is_positive"`
	SkillsGained []string `yaml:"skills_gained"`
}

// DesignSpecialty is a Design Lab career track.
type DesignSpecialty struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	KeyAreas    []string `yaml:"key_areas"`
}

// DesignChallenge is an immutable Design Lab brief.
type DesignChallenge struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Requirements []string `yaml:"requirements"`
}

// DesignTool is a multi-select tool in the Design Lab.
type DesignTool struct {
	Name       string `yaml:"name"`
	Icon       string `yaml:"icon"`
	SkillBonus string `yaml:"skill_bonus"`
}

// DesignStyle is the single-choice visual style of a creation.
type DesignStyle struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Emoji       string `yaml:"emoji"`
}

// DesignFeedback is the canned critique of a creation.
type DesignFeedback struct {
	Comment      string   `yaml:"comment"`
	Strengths    []string `yaml:"strengths"`
	Improvements []string `yaml:"improvements"`
}

// Skill is a career skill with its importance in [0,1].
type Skill struct {
	Name            string  `yaml:"name"`
	Importance      float64 `yaml:"importance"`
	ImportanceLevel string  `yaml:"importance_level"` // e.g. "Crítico", "Alto"
}

type SkillDevelopment struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Methods     []string `yaml:"methods"`
}

type AcademicStep struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Duration    string `yaml:"duration"`
}

type CareerStage struct {
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	SalaryRange      string   `yaml:"salary_range"`
	Responsibilities []string `yaml:"responsibilities"`
}

type Course struct {
	Title    string `yaml:"title"`
	Provider string `yaml:"provider"`
	Duration string `yaml:"duration"`
	Level    string `yaml:"level"`
	IsFree   bool   `yaml:"is_free"`
}

type Book struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
}

type ProfessionalOrganization struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Benefits    []string `yaml:"benefits"`
}

// University is a place to study a career.
type University struct {
	Name          string `yaml:"name"`
	Location      string `yaml:"location"`
	Ranking       string `yaml:"ranking"`
	Tuition       string `yaml:"tuition"`
	AdmissionRate string `yaml:"admission_rate"`
}

// CareerDetail aggregates everything the career screen shows.
type CareerDetail struct {
	Slug              string                     `yaml:"slug"` // e.g. "derecho"
	Title             string                     `yaml:"title"`
	Subtitle          string                     `yaml:"subtitle"`
	Icon              string                     `yaml:"icon"`
	Description       string                     `yaml:"description"`
	AverageSalary     string                     `yaml:"average_salary"`
	JobGrowth         string                     `yaml:"job_growth"`
	MainAreas         []string                   `yaml:"main_areas"`
	DailyActivities   []string                   `yaml:"daily_activities"`
	WorkEnvironments  []string                   `yaml:"work_environments"`
	PersonalityTraits []string                   `yaml:"personality_traits"`
	HardSkills        []Skill                    `yaml:"hard_skills"`
	SoftSkills        []Skill                    `yaml:"soft_skills"`
	SkillDevelopment  []SkillDevelopment         `yaml:"skill_development"`
	AcademicPath      []AcademicStep             `yaml:"academic_path"`
	CareerProgression []CareerStage              `yaml:"career_progression"`
	Courses           []Course                   `yaml:"courses"`
	Books             []Book                     `yaml:"books"`
	Organizations     []ProfessionalOrganization `yaml:"organizations"`
	Universities      []University               `yaml:"universities"`
}

// User is the account record returned by the auth API.
type User struct {
	ID       int64  `json:"id" yaml:"id" db:"id"`
	Username string `json:"username" yaml:"username" db:"username"`
	Email    string `json:"email" yaml:"email" db:"email"`
}

// ChatMessage is one bubble in the Socrat chat.
type ChatMessage struct {
	ID     string    `yaml:"id"`
	Text   string    `yaml:"text"`
	IsUser bool      `yaml:"is_user"`
	Time   time.Time `yaml:"time"`
}

// Scores is a named set of sliders in [0,1], as produced by a finished game.
type Scores map[string]float64

// GameRecord is a finished game stored on the profile.
type GameRecord struct {
	Game       string    `yaml:"game"` // "mun" or "designlab"
	Scores     Scores    `yaml:"scores"`
	Skills     []string  `yaml:"skills,omitempty"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// Activity is an entry of the profile's recent activity feed.
type Activity struct {
	Title string    `yaml:"title"`
	Icon  string    `yaml:"icon"`
	At    time.Time `yaml:"at"`
}

// Profile is the vocational dashboard of a user.
type Profile struct {
	User              *User         `yaml:"user,omitempty"`
	Exploration       float64       `yaml:"exploration"`
	SelfKnowledge     float64       `yaml:"self_knowledge"`
	Alignment         float64       `yaml:"alignment"`
	DecisionReadiness float64       `yaml:"decision_readiness"`
	GamesPlayed       int           `yaml:"games_played"`
	CareersExplored   int           `yaml:"careers_explored"`
	TimeSpent         time.Duration `yaml:"time_spent"`
	CurrentStreak     int           `yaml:"current_streak"`
	MemberSince       time.Time     `yaml:"member_since"`
	Activities        []Activity    `yaml:"activities,omitempty"`
}

// ProfileHistory holds every finished game of a profile.
type ProfileHistory struct {
	Records []GameRecord `yaml:"records"`
}
