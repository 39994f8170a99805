package util

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULIDAt returns an id whose timestamp part is t.
func NewULIDAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
