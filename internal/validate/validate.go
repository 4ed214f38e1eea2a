// Package validate contains pure input checks for candidate fields. Each
// check returns nil when the input is acceptable, or an error whose message
// is shown to the candidate as-is before the same field is asked again.
package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var phoneSeparators = regexp.MustCompile(`[\s\-()+]`)

// Name requires a trimmed length of at least 2 characters.
func Name(raw string) error {
	if len(strings.TrimSpace(raw)) < 2 {
		return errors.New("Please provide your full name (at least 2 characters).")
	}
	return nil
}

// Email requires a local@domain.tld shape with an ASCII local part and a TLD
// of at least two letters.
func Email(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("Email address is required.")
	}
	if !emailPattern.MatchString(strings.TrimSpace(raw)) {
		return errors.New("Please provide a valid email address (e.g., name@example.com).")
	}
	return nil
}

// Phone strips whitespace and common separators, then requires a 10-15 digit
// string.
func Phone(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("Phone number is required.")
	}

	cleaned := phoneSeparators.ReplaceAllString(raw, "")
	if len(cleaned) < 10 || len(cleaned) > 15 {
		return errors.New("Please provide a valid phone number (10-15 digits).")
	}
	for _, c := range cleaned {
		if c < '0' || c > '9' {
			return errors.New("Please provide a valid phone number (10-15 digits).")
		}
	}
	return nil
}

// Experience requires a real number of years in [0, 50].
func Experience(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return errors.New("Years of experience is required.")
	}

	years, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return errors.New("Please provide a valid number for years of experience.")
	}
	if years < 0 || years > 50 {
		return errors.New("Please provide a valid number of years (0-50).")
	}
	return nil
}

// NonEmpty rejects empty or whitespace-only input. The field name is used in
// the error message.
func NonEmpty(raw, field string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New(field + " is required.")
	}
	return nil
}

// Position requires a non-empty title of at least 3 characters.
func Position(raw string) error {
	if err := NonEmpty(raw, "Position"); err != nil {
		return err
	}
	if len(strings.TrimSpace(raw)) < 3 {
		return errors.New("Please provide a valid position title (e.g., Software Engineer, Data Scientist, etc.).")
	}
	return nil
}

// Location requires a non-empty value of at least 2 characters so short city
// abbreviations still pass.
func Location(raw string) error {
	if err := NonEmpty(raw, "Location"); err != nil {
		return err
	}
	if len(strings.TrimSpace(raw)) < 2 {
		return errors.New("Please provide a valid location (city, state, or country).")
	}
	return nil
}

// TechStack applies the sanity checks that gate the expensive AI question
// generation call: minimum length, not all digits, at least one letter, and
// more than a single short token.
func TechStack(raw string) error {
	if err := NonEmpty(raw, "Tech stack"); err != nil {
		return err
	}

	cleaned := strings.TrimSpace(raw)
	if len(cleaned) < 3 {
		return errors.New("Please provide a valid tech stack with at least one technology (e.g., Python, JavaScript, React, etc.).")
	}

	if allDigits(cleaned) {
		return errors.New("Please provide a valid tech stack listing the technologies you work with (e.g., Python, Django, PostgreSQL).")
	}

	words := strings.Fields(strings.ReplaceAll(cleaned, ",", " "))
	if len(words) == 1 && len(words[0]) <= 2 {
		return errors.New("Please provide your complete tech stack. List the programming languages, frameworks, and tools you're proficient in.")
	}

	if !containsLetter(cleaned) {
		return errors.New("Please provide a valid tech stack (e.g., Python, JavaScript, React, AWS, etc.).")
	}

	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func containsLetter(s string) bool {
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}
