package classifier

import (
	"strings"

	"AdmissionOfficer/internal/models"
)

// categoryKeywords associates each category with the keywords that signal it.
// The slice order is the category declaration order and decides ties: scoring
// iterates in this order and only a strictly greater count replaces the best
// candidate, so the first-declared category wins an equal score.
var categoryKeywords = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryAdmissions, []string{"apply", "admission", "accept", "requirements", "application", "enroll"}},
	{models.CategoryFees, []string{"fee", "tuition", "cost", "payment", "credit", "price", "pay", "refund"}},
	{models.CategoryAcademics, []string{"gpa", "grades", "scores", "grade", "cgpa", "dean"}},
	{models.CategoryAcademicAdvising, []string{"advisor", "track", "course", "major", "register", "summer course"}},
	{models.CategoryITSystems, []string{"portal", "moodle", "login", "system", "technical", "support"}},
	{models.CategoryEmails, []string{"email", "gmail", "outlook", "mail", "inbox", "address", "contact email"}},
}

// Detect scores the question against every category's keyword set and returns
// the best match. A keyword counts when it appears as a case-insensitive
// substring of the question. The second return value is false when no keyword
// of any category matches.
//
// Detect is a pure function: deterministic, no side effects, no external calls.
func Detect(question string) (models.Category, bool) {
	lowered := strings.ToLower(question)

	var best models.Category
	bestScore := 0
	for _, entry := range categoryKeywords {
		score := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = entry.category
			bestScore = score
		}
	}

	if bestScore == 0 {
		return "", false
	}
	return best, true
}
