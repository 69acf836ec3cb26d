package app

import (
	"regexp"
	"strings"
)

var loginRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,38}$`)

// NormalizeLogin strips leading '@' and surrounding whitespace from raw user input.
func NormalizeLogin(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")
	return strings.TrimSpace(s)
}

// ValidateLogin checks if login has valid github account format.
func ValidateLogin(login string) error {
	if login == "" {
		return InvalidRequestError("login cannot be empty")
	}
	if !loginRe.MatchString(login) {
		return InvalidRequestError("invalid login format: " + login)
	}
	return nil
}

// ParseLogin normalizes and validates raw login.
func ParseLogin(raw string) (string, error) {
	login := NormalizeLogin(raw)
	if err := ValidateLogin(login); err != nil {
		return "", err
	}
	return login, nil
}
