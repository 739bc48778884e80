// Package validation provides input validation utilities
package validation

import (
	"regexp"
	"strings"

	"critica/internal/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	slugRegex     = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// ValidateUsername checks username format and the reserved word "me",
// which collides with the /users/me self-service endpoint.
func ValidateUsername(username string) error {
	if username == "" {
		return models.NewFieldValidationError("username", "username is required")
	}

	if len(username) > 150 {
		return models.NewFieldValidationError("username", "username must not exceed 150 characters")
	}

	if !usernameRegex.MatchString(username) {
		return models.NewFieldValidationError("username", "username can only contain letters, numbers, and @/./+/-/_ characters")
	}

	if strings.EqualFold(username, "me") {
		return models.NewFieldValidationError("username", "username 'me' is reserved")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return models.NewFieldValidationError("email", "invalid email format")
	}

	if len(email) > 254 {
		return models.NewFieldValidationError("email", "email must not exceed 254 characters")
	}

	return nil
}

// ValidateSlug checks that a slug is URL-safe.
func ValidateSlug(s string) error {
	if s == "" {
		return models.NewFieldValidationError("slug", "slug is required")
	}

	if len(s) > 50 {
		return models.NewFieldValidationError("slug", "slug must not exceed 50 characters")
	}

	if !slugRegex.MatchString(s) {
		return models.NewFieldValidationError("slug", "slug can only contain lowercase letters, numbers, underscores, and hyphens")
	}

	return nil
}

// ValidateScore checks that a review score is within the 1..10 scale.
func ValidateScore(score int) error {
	if score < 1 {
		return models.NewFieldValidationError("score", "score must not be less than 1")
	}
	if score > 10 {
		return models.NewFieldValidationError("score", "score must not be greater than 10")
	}
	return nil
}
