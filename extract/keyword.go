package extract

import (
	"context"
	"sort"
	"strings"

	"github.com/talentmatch/backend/models"
)

// skillAliases maps canonical skill names to the spellings recruiters
// actually type. Checked against the lowercased query.
var skillAliases = map[string][]string{
	"react":      {"react", "reactjs", "react.js"},
	"next.js":    {"next.js", "nextjs"},
	"vue.js":     {"vue", "vuejs", "vue.js"},
	"angular":    {"angular"},
	"typescript": {"typescript"},
	"javascript": {"javascript"},
	"node.js":    {"node", "nodejs", "node.js"},
	"python":     {"python"},
	"django":     {"django"},
	"fastapi":    {"fastapi", "fast api"},
	"express":    {"express", "expressjs"},
	"go":         {"golang"},
	"graphql":    {"graphql"},
	"rest":       {"rest api", "restful"},
	"mongodb":    {"mongodb", "mongo"},
	"postgresql": {"postgresql", "postgres", "psql"},
	"aws":        {"aws", "amazon web services"},
	"docker":     {"docker"},
	"kubernetes": {"kubernetes", "k8s"},
	"tailwind":   {"tailwind", "tailwindcss"},
	"css":        {"css"},
	"html":       {"html"},
	"redux":      {"redux"},
	"firebase":   {"firebase"},
	"testing":    {"jest", "cypress", "unit test", "unit testing"},
}

// roleSkills infers baseline skills when a query names a role but no
// concrete technology ("I need web developers").
var roleSkills = map[string][]string{
	"web developer": {"javascript", "html", "css"},
	"frontend":      {"javascript", "html", "css"},
	"front-end":     {"javascript", "html", "css"},
	"backend":       {"python", "node.js"},
	"back-end":      {"python", "node.js"},
	"full stack":    {"javascript", "react", "node.js"},
	"fullstack":     {"javascript", "react", "node.js"},
	"devops":        {"docker", "kubernetes", "aws"},
}

var (
	seniorCues    = []string{"senior", " sr ", " sr.", "lead", "principal", "staff"}
	juniorCues    = []string{"junior", " jr ", " jr.", "entry", "entry-level", "graduate"}
	midCues       = []string{"mid-level", "mid level", "intermediate", "mid "}
	fullTimeCues  = []string{"full-time", "full time", "fulltime", "permanent"}
	partTimeCues  = []string{"part-time", "part time", "parttime"}
	freelanceCues = []string{"freelance", "freelancer"}
	remoteCues    = []string{"remote", "anywhere"}
)

// KeywordExtractor is the deterministic requirement extractor. It backs
// the LLM extractor as a fallback and gives tests reproducible fragments.
type KeywordExtractor struct{}

// NewKeywordExtractor returns the keyword-based extractor.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

func (e *KeywordExtractor) Extract(_ context.Context, query string) (models.RequirementFragment, error) {
	q := " " + strings.ToLower(strings.TrimSpace(query)) + " "

	frag := models.RequirementFragment{RawQuery: query}

	frag.ExperienceLevel = detectLevel(q)
	frag.Availability = detectAvailability(q)
	frag.Skills = detectSkills(q)
	frag.Location = detectLocation(q)

	return frag, nil
}

func detectLevel(q string) string {
	if containsAny(q, seniorCues) {
		return models.LevelSenior
	}
	if containsAny(q, juniorCues) {
		return models.LevelJunior
	}
	if containsAny(q, midCues) {
		return models.LevelMid
	}
	return models.LevelAny
}

func detectAvailability(q string) string {
	switch {
	case containsAny(q, fullTimeCues):
		return models.AvailabilityFullTime
	case containsAny(q, freelanceCues):
		return models.AvailabilityFreelance
	case containsAny(q, partTimeCues):
		return models.AvailabilityPartTime
	case strings.Contains(q, "contract"):
		return models.AvailabilityContract
	}
	return models.AvailabilityAny
}

func detectSkills(q string) []string {
	var skills []string
	seen := make(map[string]bool)

	add := func(skill string) {
		if !seen[skill] {
			seen[skill] = true
			skills = append(skills, skill)
		}
	}

	// Sorted iteration keeps fragment skill order stable across runs.
	for _, skill := range sortedKeys(skillAliases) {
		for _, alias := range skillAliases[skill] {
			if strings.Contains(q, alias) {
				add(skill)
				break
			}
		}
	}

	// Role inference only fills the gap when no concrete skill was named.
	if len(skills) == 0 {
		for _, role := range sortedKeys(roleSkills) {
			if strings.Contains(q, role) {
				for _, s := range roleSkills[role] {
					add(s)
				}
			}
		}
	}

	return skills
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func detectLocation(q string) string {
	if containsAny(q, remoteCues) {
		return "remote"
	}
	// "in <place>" with a short trailing phrase reads as a location cue,
	// unless the phrase is really a skill or another constraint
	// ("experienced in react" must not become location=react: location
	// eliminates candidates outright).
	if idx := strings.Index(q, " in "); idx >= 0 {
		rest := strings.TrimSpace(q[idx+4:])
		rest = strings.Trim(rest, ".!?")
		if rest != "" && len(strings.Fields(rest)) <= 2 && !isConstraintWord(rest) && !mentionsSkill(rest) {
			return rest
		}
	}
	return ""
}

func isConstraintWord(s string) bool {
	padded := " " + s + " "
	for _, cues := range [][]string{fullTimeCues, partTimeCues, freelanceCues, seniorCues, juniorCues, midCues} {
		if containsAny(padded, cues) {
			return true
		}
	}
	for _, w := range []string{"contract", "general", "particular", "the field", "demand", "tech"} {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func mentionsSkill(s string) bool {
	for _, aliases := range skillAliases {
		for _, alias := range aliases {
			if strings.Contains(s, alias) {
				return true
			}
		}
	}
	return false
}

func containsAny(q string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}
