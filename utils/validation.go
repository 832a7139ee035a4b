// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateTimeOfDay checks HH:MM (24-hour) strings.
func ValidateTimeOfDay(t string) bool {
	return timeRe.MatchString(t)
}

// ValidateDate checks YYYY-MM-DD strings.
func ValidateDate(d string) bool {
	return dateRe.MatchString(d)
}
