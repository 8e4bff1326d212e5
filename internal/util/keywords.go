package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	techKeywordRe = regexp.MustCompile(`(?i)\b(javascript|typescript|python|java|react|node\.js|aws|docker|kubernetes|sql|nosql|mongodb|postgresql|git|github|agile|scrum|css|html|api|rest|graphql)\b`)
	bulletRe      = regexp.MustCompile(`•|-|\*`)
	numberedRe    = regexp.MustCompile(`\d+\.\s`)
)

// ExtractKeywords returns the known technology terms mentioned in content,
// lower-cased and de-duplicated in order of first mention.
func ExtractKeywords(content string) []string {
	matches := techKeywordRe.FindAllString(content, -1)
	seen := make(map[string]struct{}, len(matches))
	keywords := make([]string, 0, len(matches))
	for _, m := range matches {
		k := strings.ToLower(m)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keywords = append(keywords, k)
	}
	return keywords
}

// ATSScore is a 70-95 heuristic over length, keyword density and whether the
// text talks about applicant tracking systems at all.
func ATSScore(content string) float64 {
	score := 70

	switch length := utf8.RuneCountInString(content); {
	case length > 1000:
		score += 10
	case length > 500:
		score += 5
	}

	switch count := len(ExtractKeywords(content)); {
	case count > 15:
		score += 10
	case count > 8:
		score += 5
	}

	if strings.Contains(content, "ATS") || strings.Contains(content, "Applicant Tracking System") {
		score += 5
	}

	if score > 95 {
		score = 95
	}
	return float64(score)
}

// CountSuggestions counts bullet markers and numbered items, never below 5.
func CountSuggestions(content string) int {
	n := len(bulletRe.FindAllString(content, -1)) + len(numberedRe.FindAllString(content, -1))
	if n < 5 {
		return 5
	}
	return n
}

func WordCount(content string) int {
	return len(strings.Fields(content))
}
