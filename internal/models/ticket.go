package models

import "time"

// Ticket is a human-support request collected through the bot form.
type Ticket struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}
