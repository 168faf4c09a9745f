package entities

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	// SlugAlphabet drops 0, O, 1, I and l so slugs survive being read aloud or
	// retyped from a stream overlay.
	SlugAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	SlugLength   = 7
)

// ShareRecord is immutable once stored.
type ShareRecord struct {
	ID        string
	Slug      string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// IsGeneratedSlug reports whether value has the exact shape produced by the
// slug generator.
func IsGeneratedSlug(value string) bool {
	if len(value) != SlugLength {
		return false
	}
	for i := 0; i < len(value); i++ {
		if strings.IndexByte(SlugAlphabet, value[i]) < 0 {
			return false
		}
	}
	return true
}
