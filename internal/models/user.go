package models

import "time"

// User is an account that owns days on the sync server
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed session token
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// StatusResponse is returned by the status probe
type StatusResponse struct {
	DB struct {
		Type string `json:"type"`
	} `json:"db"`
	Auth struct {
		SecretSet bool     `json:"secretSet"`
		Providers []string `json:"providers"`
	} `json:"auth"`
}
