package application

import (
	"time"

	"remit-service/internal/domain"
)

// Clock abstracts wall time so expiry and day windows are testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().In(domain.Seoul) }
