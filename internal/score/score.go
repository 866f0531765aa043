// Package score grades resume text against a fixed keyword rubric. It is a
// pure function of the input text: no I/O, no randomness, no ordering
// sensitivity.
package score

import (
	"fmt"
	"strings"
)

// Sections a resume is expected to cover, each with the keywords that count
// as evidence the section exists.
var requiredSections = map[string][]string{
	"contact":      {"email", "phone", "linkedin", "github"},
	"education":    {"bachelor", "master", "degree", "university", "college"},
	"experience":   {"intern", "experience", "project", "developer", "engineer"},
	"skills":       {"python", "java", "sql", "html", "css", "javascript"},
	"achievements": {"award", "certification", "hackathon", "scholarship"},
}

// Action verbs that earn a flat bonus when any of them appears.
var powerWords = []string{"lead", "developed", "implemented", "designed", "analyzed"}

const powerWordBonus = 5

// SectionNames returns the rubric sections in a stable order.
func SectionNames() []string {
	return []string{"contact", "education", "experience", "skills", "achievements"}
}

type Result struct {
	Score       int      `json:"score"`
	Found       []string `json:"found_sections"`
	Missing     []string `json:"missing_sections"`
	Suggestions []string `json:"suggestions"`
}

// Score scans text case-insensitively. Each found section is worth
// 100/len(sections) points (integer division, any remainder is simply not
// awarded); one power word adds a flat +5; the total is clamped to 100.
func Score(text string) Result {
	lower := strings.ToLower(text)
	perSection := 100 / len(requiredSections)

	result := Result{Score: 0}
	for _, section := range SectionNames() {
		if containsAny(lower, requiredSections[section]) {
			result.Score += perSection
			result.Found = append(result.Found, section)
		} else {
			result.Missing = append(result.Missing, section)
			result.Suggestions = append(result.Suggestions,
				fmt.Sprintf("%s section or related keywords not found.", capitalize(section)))
		}
	}

	if containsAny(lower, powerWords) {
		result.Score += powerWordBonus
		result.Suggestions = append(result.Suggestions, "Good use of action/power words detected.")
	}

	if result.Score > 100 {
		result.Score = 100
	}
	return result
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
