package models

import "time"

// Availability constants
const (
	AvailabilityFullTime  = "full-time"
	AvailabilityPartTime  = "part-time"
	AvailabilityFreelance = "freelance"
	AvailabilityContract  = "contract"
	AvailabilityAny       = ""
)

// ExperienceLevel constants
const (
	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"
	LevelAny    = ""
)

// Candidate represents a candidate profile from the talent pool.
// Candidates are owned by the profile store and treated as immutable
// within a search session.
type Candidate struct {
	ID              string            `json:"id" firestore:"id"`
	Name            string            `json:"name" firestore:"name"`
	Email           string            `json:"email,omitempty" firestore:"email,omitempty"`
	Phone           string            `json:"phone,omitempty" firestore:"phone,omitempty"`
	Skills          []string          `json:"skills" firestore:"skills"`
	ExperienceYears float64           `json:"experience_years" firestore:"experienceYears"`
	ExperienceLevel string            `json:"experience_level" firestore:"experienceLevel"`
	Availability    string            `json:"availability" firestore:"availability"`
	Location        string            `json:"location,omitempty" firestore:"location,omitempty"`
	Bio             string            `json:"bio,omitempty" firestore:"bio,omitempty"`
	WorkHistory     []WorkExperience  `json:"work_history,omitempty" firestore:"workHistory,omitempty"`
	CultureAnswers  map[string]string `json:"culture_answers,omitempty" firestore:"cultureAnswers,omitempty"`
}

// WorkExperience represents a single job in a candidate's work history.
// Start and End are normalized instants; End is nil for an ongoing role.
// Parsing of heterogeneous date formats happens at ingestion (utils.ParseFlexibleDate),
// never here.
type WorkExperience struct {
	Role    string     `json:"role" firestore:"role"`
	Company string     `json:"company" firestore:"company"`
	Start   time.Time  `json:"start" firestore:"start"`
	End     *time.Time `json:"end,omitempty" firestore:"end,omitempty"`
}

// LevelFromYears derives an experience level from total years.
// Used when a stored profile has no explicit level.
func LevelFromYears(years float64) string {
	switch {
	case years < 3:
		return LevelJunior
	case years < 7:
		return LevelMid
	default:
		return LevelSenior
	}
}

// NormalizeAvailability normalizes various availability strings to standard values
func NormalizeAvailability(raw string) string {
	switch raw {
	case "full-time", "full time", "fulltime", "full_time", "permanent":
		return AvailabilityFullTime
	case "part-time", "part time", "parttime", "part_time":
		return AvailabilityPartTime
	case "freelance", "freelancer":
		return AvailabilityFreelance
	case "contract", "contractor":
		return AvailabilityContract
	case "any", "":
		return AvailabilityAny
	default:
		return raw
	}
}

// NormalizeExperienceLevel normalizes various level strings to standard values
func NormalizeExperienceLevel(raw string) string {
	switch raw {
	case "junior", "jr", "entry", "entry-level", "graduate":
		return LevelJunior
	case "mid", "mid-level", "intermediate":
		return LevelMid
	case "senior", "sr", "lead", "principal", "staff":
		return LevelSenior
	case "any", "":
		return LevelAny
	default:
		return raw
	}
}

// LevelRank returns an ordinal for an experience level, used to measure
// how far apart a required and an actual level are. Unknown levels rank as mid.
func LevelRank(level string) int {
	switch level {
	case LevelJunior:
		return 0
	case LevelSenior:
		return 2
	default:
		return 1
	}
}
