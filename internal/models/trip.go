package models

import (
	"fmt"
	"time"
)

// Trip status constants
const (
	TripStatusPlanning  = "planning"
	TripStatusBooked    = "booked"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

// Summary renders a short human-readable line for a trip, used when no
// precomputed answer exists for it.
func (t *Trip) Summary() string {
	s := fmt.Sprintf("Trip %q (%s)", t.Name, t.Status)
	if t.StartDate != nil && t.EndDate != nil {
		s += fmt.Sprintf(", %s to %s", t.StartDate.Format("Jan 2 2006"), t.EndDate.Format("Jan 2 2006"))
	}
	if t.Destinations != "" {
		s += ", " + t.Destinations
	}
	if t.TotalCost != nil {
		s += fmt.Sprintf(", $%.2f", *t.TotalCost)
	}
	return s
}

// Trip represents a travel itinerary record.
type Trip struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Status       string     `json:"status"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Destinations string     `json:"destinations"`
	TotalCost    *float64   `json:"total_cost"`
	SearchText   string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
