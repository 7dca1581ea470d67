package domain

import "time"

type Customer struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	DateOfBirth  time.Time
	CreatedAt    time.Time
}
