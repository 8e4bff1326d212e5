package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	content := "Skills: React, Node.js and AWS.\nAlso react hooks, Docker, docker-compose and REST APIs."
	assert.Equal(t, []string{"react", "node.js", "aws", "docker", "rest"}, ExtractKeywords(content))
}

func TestExtractKeywordsIgnoresSubstrings(t *testing.T) {
	assert.Empty(t, ExtractKeywords("javascripting restful gitter"))
}

func TestATSScore(t *testing.T) {
	assert.Equal(t, float64(70), ATSScore("short"))
	assert.Equal(t, float64(75), ATSScore(strings.Repeat("a", 600)))
	assert.Equal(t, float64(85), ATSScore(strings.Repeat("a", 1200)+" ATS"))

	many := "javascript typescript python java react node.js aws docker kubernetes sql nosql mongodb postgresql git github agile"
	assert.Equal(t, float64(95), ATSScore(strings.Repeat("x", 1200)+" "+many+" Applicant Tracking System"))
}

func TestATSScoreCountsCharacters(t *testing.T) {
	assert.Equal(t, float64(70), ATSScore(strings.Repeat("é", 400)))
	assert.Equal(t, float64(75), ATSScore(strings.Repeat("é", 501)))
}

func TestCountSuggestions(t *testing.T) {
	assert.Equal(t, 5, CountSuggestions("no markers here"))
	content := "1. Keywords\n- a\n- b\n* c\n• d\n2. Skills\n- e"
	assert.Equal(t, 7, CountSuggestions(content))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 4, WordCount("  Dear hiring\nmanager, hello "))
}
