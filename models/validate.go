package models

import (
	"strings"
	"unicode/utf8"
)

// MinInstructionsLength is the minimum recipe instructions length in characters.
const MinInstructionsLength = 50

// ValidateUsername trims value and rejects it when empty.
func ValidateUsername(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid("username", "Username must be present.")
	}
	return value, nil
}

// ValidateTitle trims value and rejects it when empty.
func ValidateTitle(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid("title", "Title must be present.")
	}
	return value, nil
}

// ValidateInstructions trims value and rejects it when empty or shorter than
// MinInstructionsLength characters.
func ValidateInstructions(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid("instructions", "Instructions must be present.")
	}
	if utf8.RuneCountInString(value) < MinInstructionsLength {
		return "", invalid("instructions", "Instructions must be at least 50 characters long.")
	}
	return value, nil
}

// ValidateMinutes accepts nil or any value of at least one.
func ValidateMinutes(value *int) (*int, error) {
	if value != nil && *value < 1 {
		return nil, invalid("minutes_to_complete", "Minutes must be a positive number.")
	}
	return value, nil
}

// ValidateUserID rejects a missing owner. Store ids start at 1.
func ValidateUserID(value int) (int, error) {
	if value <= 0 {
		return 0, invalid("user_id", "Recipe must belong to a user.")
	}
	return value, nil
}
