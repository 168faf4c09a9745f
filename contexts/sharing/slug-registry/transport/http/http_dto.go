package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateShareRequest struct {
	Payload json.RawMessage `json:"payload" validate:"required"`
	Slug    string          `json:"slug,omitempty" validate:"omitempty,max=64,excludesall=/?#"`
}

type CreateShareResponse struct {
	Slug string `json:"slug"`
	ID   string `json:"id"`
}

// ShareResponse carries created_at as unix milliseconds.
type ShareResponse struct {
	Slug      string          `json:"slug"`
	Payload   json.RawMessage `json:"payload"`
	ID        string          `json:"id"`
	CreatedAt int64           `json:"created_at"`
}
