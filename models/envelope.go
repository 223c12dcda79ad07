package models

import "github.com/goccy/go-json"

// Envelope is the response wrapper shared by every endpoint.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	User   *User     `json:"user"`
	Tokens *TokenSet `json:"tokens"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
	Data      LoginData `json:"data"`
}

type UserPageResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    UserPage `json:"data"`
}

type UserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    User   `json:"data"`
}

type DocumentResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    Document `json:"data"`
}
