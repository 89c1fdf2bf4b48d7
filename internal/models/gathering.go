package models

import (
	"strings"
	"time"
)

// Reminder is the offset before a gathering's date at which participants are
// notified.
type Reminder string

const (
	ReminderNone Reminder = "none"
	Reminder24h  Reminder = "24h"
	Reminder1h   Reminder = "1h"
)

// Offset returns the reminder lead time, or false for ReminderNone and
// unknown values.
func (r Reminder) Offset() (time.Duration, bool) {
	switch r {
	case Reminder24h:
		return 24 * time.Hour, true
	case Reminder1h:
		return time.Hour, true
	default:
		return 0, false
	}
}

type LocationData struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Gathering struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Date         time.Time    `json:"date"`
	Location     string       `json:"location"`
	LocationData LocationData `json:"locationData"`
	Reminder     Reminder     `json:"reminder"`
	CreatedBy    string       `json:"createdBy"`
	CreatedAt    time.Time    `json:"createdAt"`
	Participants []string     `json:"participants"`
	Tasks        []Task       `json:"tasks"`
}

// HasParticipant reports whether email is a member of the gathering.
func (g *Gathering) HasParticipant(email string) bool {
	for _, p := range g.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// AddParticipant joins email to the gathering. Joining is idempotent: an
// existing member is left in place and insertion order is preserved.
func (g *Gathering) AddParticipant(email string) bool {
	if g.HasParticipant(email) {
		return false
	}
	g.Participants = append(g.Participants, email)
	return true
}

// RemoveParticipant drops email from the member list and clears assignedTo on
// every task currently assigned to it. Removing a non-member is a no-op.
func (g *Gathering) RemoveParticipant(email string) bool {
	removed := false
	for i, p := range g.Participants {
		if p == email {
			g.Participants = append(g.Participants[:i], g.Participants[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return false
	}
	for i := range g.Tasks {
		if g.Tasks[i].AssignedTo != nil && *g.Tasks[i].AssignedTo == email {
			g.Tasks[i].AssignedTo = nil
		}
	}
	return true
}

type GatheringRequest struct {
	Name     string    `json:"name" validate:"required"`
	Category string    `json:"category" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	Location string    `json:"location" validate:"required"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Reminder Reminder  `json:"reminder"`
}

type UpdateGatheringRequest struct {
	Name     *string    `json:"name"`
	Category *string    `json:"category"`
	Date     *time.Time `json:"date"`
	Location *string    `json:"location"`
	Lat      *float64   `json:"lat"`
	Lng      *float64   `json:"lng"`
	Reminder *Reminder  `json:"reminder"`
}

// GatheringFilter restricts List results. Zero values mean "no restriction".
type GatheringFilter struct {
	Query    string     // case-insensitive name substring
	Category string     // exact category match
	From     *time.Time // inclusive, taken from the start of that day
	To       *time.Time // inclusive, extended to the end of that day
}

// Matches applies the filter to a single gathering.
func (f GatheringFilter) Matches(g Gathering) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.Category != "" && g.Category != f.Category {
		return false
	}
	if f.From != nil {
		from := time.Date(f.From.Year(), f.From.Month(), f.From.Day(), 0, 0, 0, 0, f.From.Location())
		if g.Date.Before(from) {
			return false
		}
	}
	if f.To != nil {
		to := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 23, 59, 59, 999000000, f.To.Location())
		if g.Date.After(to) {
			return false
		}
	}
	return true
}

type GatheringResponse struct {
	Gathering
	ShareableLink string `json:"shareableLink"`
}

// NewGatheringResponse attaches the derived join-by-link URL to a gathering.
func NewGatheringResponse(g Gathering, baseURL string) GatheringResponse {
	return GatheringResponse{
		Gathering:     g,
		ShareableLink: baseURL + "/api/gatherings?joincode=" + g.Code,
	}
}

type JoinByCodeRequest struct {
	Code string `json:"code" validate:"required"`
}
