package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateVoteRequest struct {
	StepID     string          `json:"step_id" validate:"max=128"`
	OptionKey  string          `json:"option_key" validate:"required,max=128"`
	OptionMeta json.RawMessage `json:"option_meta,omitempty"`
	VotedBy    string          `json:"voted_by,omitempty" validate:"omitempty,max=128"`
}

// VoteResponse timestamps are unix milliseconds.
type VoteResponse struct {
	VoteID     string          `json:"vote_id"`
	SessionID  string          `json:"session_id"`
	StepID     string          `json:"step_id"`
	OptionKey  string          `json:"option_key"`
	OptionMeta json.RawMessage `json:"option_meta,omitempty"`
	VotedBy    string          `json:"voted_by,omitempty"`
	CreatedAt  int64           `json:"created_at"`
	UpdatedAt  int64           `json:"updated_at"`
}

type ListVotesResponse struct {
	Items []VoteResponse `json:"items"`
}

type OptionTallyResponse struct {
	OptionKey   string `json:"option_key"`
	Votes       int    `json:"votes"`
	FirstVoteAt int64  `json:"first_vote_at"`
	LastVoteAt  int64  `json:"last_vote_at"`
}

type TallyResponse struct {
	SessionID  string                `json:"session_id"`
	StepID     *string               `json:"step_id,omitempty"`
	TotalVotes int                   `json:"total_votes"`
	Items      []OptionTallyResponse `json:"items"`
}

// StreamMessage is one websocket frame on the live vote stream.
type StreamMessage struct {
	Type string       `json:"type"`
	Data VoteResponse `json:"data"`
}
