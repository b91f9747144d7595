package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Auth / users
	"Name":            "Name",
	"Email":           "Email",
	"Password":        "Password",
	"CurrentPassword": "Current password",
	"NewPassword":     "New password",
	"Role":            "Role",

	// Categories / skills
	"CategoryID":  "Category ID",
	"Description": "Description",
	"Icon":        "Icon",
	"IsActive":    "Active flag",

	// Profiles
	"FullName":           "Full name",
	"PhoneNumber":        "Phone number",
	"LinkedinProfile":    "LinkedIn profile",
	"GithubProfile":      "GitHub profile",
	"InstagramProfile":   "Instagram profile",
	"TiktokProfile":      "TikTok profile",
	"XProfile":           "X profile",
	"ProfilePictureURL":  "Profile picture",
	"Bio":                "Bio",
	"YearsOfExperience":  "Years of experience",
	"CurrentJobTitle":    "Current job title",
	"PreferredTechStack": "Preferred tech stack",
	"Certifications":     "Certifications",
	"ResumeURL":          "Resume URL",

	// Educations
	"ProfileID":       "Profile ID",
	"Degree":          "Degree",
	"Major":           "Major",
	"InstitutionName": "Institution name",
	"Location":        "Location",
	"StartYear":       "Start year",
	"GraduationYear":  "Graduation year",
	"GPA":             "GPA",

	// Experiences
	"JobTitle":    "Job title",
	"CompanyName": "Company name",
	"StartDate":   "Start date",
	"EndDate":     "End date",
	"IsCurrent":   "Current position flag",

	// Profile skills
	"SkillID": "Skill ID",
	"Percent": "Percent",
}

// FormatValidationErrors converts binding errors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, formatSingleError(e))
		}
		return messages
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s: Invalid type, expected %s", getFieldLabel(typeErr.Field), typeErr.Type.String())}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []string{"Request body is not valid JSON"}
	}

	return []string{err.Error()}
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())
	param := e.Param()
	isString := e.Kind().String() == "string"

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, param)

	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, numbers, spaces and common punctuation", label)

	case "valid_phone":
		return fmt.Sprintf("%s must be a valid phone number (7-15 digits, optional +)", label)

	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or special symbols", label)

	case "strong_password":
		return fmt.Sprintf("%s must contain at least one uppercase letter, one lowercase letter, and one number", label)

	case "max_current_year":
		return fmt.Sprintf("%s cannot be later than the current year", label)

	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", label, getFieldLabel(param))

	case "ltfield":
		return fmt.Sprintf("%s must be less than %s", label, getFieldLabel(param))

	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
