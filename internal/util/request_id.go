package util

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewRequestID builds ids of the form <prefix>-<unix millis>-<9 base36 chars>.
func NewRequestID(prefix string, now time.Time) string {
	id := uuid.New()
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[int(id[i])%len(base36)]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix)
}
