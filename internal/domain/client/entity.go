package client

import "time"

// Client is a care recipient that shifts are scheduled against.
type Client struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
