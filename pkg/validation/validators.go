package validation

import (
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) , + #
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),+#-]+$`)

	// E164-like phone: optional +, digits 7-15 length, spaces and dashes tolerated
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 -]{5,18}[0-9]$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("strong_password", StrongPassword)
	_ = v.RegisterValidation("max_current_year", MaxCurrentYear)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	if !phoneRegex.MatchString(val) {
		return false
	}
	digits := 0
	for _, r := range val {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		if r > 0x1F000 {
			return false // Supplementary characters (mostly emoji/symbols)
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// StrongPassword requires at least one lowercase letter, one uppercase letter and one digit.
// Length is checked separately with min.
func StrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsStrongPassword(val string) bool {
	var lower, upper, digit bool
	for _, r := range val {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// MaxCurrentYear validates that an integer field (year) does not exceed the current year
func MaxCurrentYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true // Allow zero/nil (optional field)
	}
	currentYear := int64(time.Now().Year())
	return year <= currentYear
}
