package models

import (
	"fmt"
	"time"
)

// Summary renders a short human-readable line for a client, used when no
// precomputed answer exists for them.
func (c *Client) Summary() string {
	s := fmt.Sprintf("Client %s <%s>", c.FullName, c.Email)
	if c.HomeCity != "" {
		s += ", " + c.HomeCity
	}
	return s
}

// Client represents a customer record.
type Client struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	HomeCity   string    `json:"home_city"`
	Notes      string    `json:"notes"`
	SearchText string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
