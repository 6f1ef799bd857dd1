package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Avatar       *string   `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}
