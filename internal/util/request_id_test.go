package util

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := NewRequestID("resume", now)
	assert.Regexp(t, regexp.MustCompile(`^resume-1700000000123-[0-9a-z]{9}$`), id)
	assert.NotEqual(t, id, NewRequestID("resume", now))
}
