package id

import (
	"fmt"
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	length   = 8
)

var pattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// New generates an 8 character lowercase alphanumeric nanoid, the ID format
// shared by check-ins and journal entries.
func New() (string, error) {
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return id, nil
}

// Validate checks whether an ID matches the expected pattern.
func Validate(id string) error {
	if !pattern.MatchString(id) {
		return fmt.Errorf("invalid ID: %q (must be 8 lowercase alphanumeric characters)", id)
	}
	return nil
}
