package models

import (
	"time"
)

// Address is a postal address owned by exactly one user.
type Address struct {
	ID        string
	UserID    string
	House     string
	Street    string
	Landmark  string
	Area      string
	District  string
	State     string
	Country   string
	Pincode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
