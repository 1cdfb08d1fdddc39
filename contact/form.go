// Package contact validates applications submitted through the contact page.
package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names as used in form posts and live validation routes.
const (
	FieldCodename   = "codename"
	FieldEmail      = "email"
	FieldSecretCode = "secret_code"
	FieldMotivation = "motivation"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldCodename, FieldEmail, FieldSecretCode, FieldMotivation}

const (
	minCodename   = 3
	minSecretCode = 8
	minMotivation = 50
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// Messages shown to the applicant.
const (
	MsgSubmitted = "Application submitted! Your atomic potential has been recognized. Standby for further instructions."
	MsgRejected  = "Application validation failed. Review your intel and try again."
)

// ReferenceMessage tells the applicant the reference their accepted
// application was filed under.
func ReferenceMessage(ref string) string {
	return "Your application reference is " + ref + "."
}

// Application is a submitted contact form.
type Application struct {
	Codename   string `form:"codename"`
	Email      string `form:"email"`
	SecretCode string `form:"secret_code"`
	Motivation string `form:"motivation"`
}

// Value returns the raw value of the named field.
func (a Application) Value(field string) string {
	switch field {
	case FieldCodename:
		return a.Codename
	case FieldEmail:
		return a.Email
	case FieldSecretCode:
		return a.SecretCode
	case FieldMotivation:
		return a.Motivation
	}
	return ""
}

// Errors maps field names to a single message each.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Validate applies the submit rules to every field. Whitespace around the
// codename, email and motivation is ignored; the secret code is taken as is.
func (a Application) Validate() Errors {
	errs := Errors{}

	codename := strings.TrimSpace(a.Codename)
	switch {
	case codename == "":
		errs[FieldCodename] = "Codename is required for vital intelligence."
	case runeLen(codename) < minCodename:
		errs[FieldCodename] = "Codename must be at least 3 characters."
	}

	email := strings.TrimSpace(a.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "Encrypted email is crucial for secure comms."
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Please enter a valid encrypted email format."
	}

	switch {
	case a.SecretCode == "":
		errs[FieldSecretCode] = "Secret activation code is absolutely essential."
	case runeLen(a.SecretCode) < minSecretCode:
		errs[FieldSecretCode] = "Code must be at least 8 characters for atomic security."
	case !hasUpperAndDigit(a.SecretCode):
		errs[FieldSecretCode] = "Code needs at least one uppercase letter and one number."
	}

	motivation := strings.TrimSpace(a.Motivation)
	switch {
	case motivation == "":
		errs[FieldMotivation] = "Your atomic motivation must be declared."
	case runeLen(motivation) < minMotivation:
		errs[FieldMotivation] = "Please elaborate more on your atomic ambitions (min 50 chars)."
	}

	return errs
}

// ValidateField gives live feedback while the applicant types. Empty values
// are never flagged; the submit rules cover required fields. ok is false for
// an unknown field name.
func ValidateField(field, value string) (msg string, ok bool) {
	switch field {
	case FieldCodename:
		v := strings.TrimSpace(value)
		if v != "" && runeLen(v) < minCodename {
			return "Codename must be at least 3 characters.", true
		}
	case FieldEmail:
		v := strings.TrimSpace(value)
		if v != "" && !emailPattern.MatchString(v) {
			return "Please enter a valid encrypted email format.", true
		}
	case FieldSecretCode:
		switch {
		case value == "":
		case runeLen(value) < minSecretCode:
			return "Code must be at least 8 characters.", true
		case !hasUpperAndDigit(value):
			return "Code needs at least one uppercase letter and one number.", true
		}
	case FieldMotivation:
		v := strings.TrimSpace(value)
		if v != "" && runeLen(v) < minMotivation {
			return "Please elaborate more (min 50 chars).", true
		}
	default:
		return "", false
	}
	return "", true
}

func hasUpperAndDigit(s string) bool {
	return upperPattern.MatchString(s) && digitPattern.MatchString(s)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
