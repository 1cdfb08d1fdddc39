package views

import (
	"github.com/eringen/atomicsite/contact"
)

// ContactForm is the state the application form is rendered with.
type ContactForm struct {
	Values contact.Application
	Errors contact.Errors
	Flash  []string // success messages carried across the post/redirect/get
	Banner string   // shown above the form after a rejected submit

	CSRFToken string
}

// value is the submitted value a field is re-rendered with. The secret code
// is never echoed back.
func (f ContactForm) value(field string) string {
	if field == contact.FieldSecretCode {
		return ""
	}
	return f.Values.Value(field)
}

type formField struct {
	name, label, kind, placeholder string
}

var formFields = []formField{
	{contact.FieldCodename, "Codename", "text", "Your alias in the shadows"},
	{contact.FieldEmail, "Encrypted Email", "email", "agent@shadow.garden"},
	{contact.FieldSecretCode, "Secret Activation Code", "password", "At least 8 characters"},
	{contact.FieldMotivation, "Atomic Motivation", "textarea", "Why do you wish to join?"},
}

func validateURL(field string) string {
	return "/contact/validate/" + field + "/"
}
