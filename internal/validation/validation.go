// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

const (
	minPasswordLength    = 6
	maxPasswordLength    = 128
	maxUsernameLength    = 100
	maxTitleLength       = 300
	maxBodyLength        = 40000
	maxCommentBodyLength = 10000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidatePassword checks password length bounds. No composition rules are
// imposed beyond length.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLength)
	}
	return nil
}

// ValidateUsername checks username presence and length.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username must not exceed %d characters", maxUsernameLength)
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePostTitle checks post title presence and length.
func ValidatePostTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("title must not exceed %d characters", maxTitleLength)
	}
	return nil
}

// ValidatePostBody checks post body presence and length.
func ValidatePostBody(body string) error {
	if body == "" {
		return fmt.Errorf("body is required")
	}
	if len(body) > maxBodyLength {
		return fmt.Errorf("body must not exceed %d characters", maxBodyLength)
	}
	return nil
}

// ValidateCommentBody checks comment body presence and length.
func ValidateCommentBody(body string) error {
	if body == "" {
		return fmt.Errorf("comment body is required")
	}
	if len(body) > maxCommentBodyLength {
		return fmt.Errorf("comment body must not exceed %d characters", maxCommentBodyLength)
	}
	return nil
}

// ValidateCoordinates checks that latitude and longitude, when supplied,
// are supplied together and fall within valid ranges.
func ValidateCoordinates(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return fmt.Errorf("latitude and longitude must be provided together")
	}
	if *lat < -90 || *lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if *lng < -180 || *lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}
