package domain

import "time"

// Hospital is created by its first registering staff member and never
// changes afterwards.
type Hospital struct {
	ID         string
	Name       string // trimmed, unique
	AccessCode string // 8 uppercase hex chars
	CreatedAt  time.Time
}
