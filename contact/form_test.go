package contact

import (
	"strings"
	"testing"
)

func validApplication() Application {
	return Application{
		Codename:   "Shadow",
		Email:      "shadow@garden.org",
		SecretCode: "Atomic2024",
		Motivation: strings.Repeat("I wish to act from the shadows. ", 2),
	}
}

func TestValidateAcceptsCompleteApplication(t *testing.T) {
	if errs := validApplication().Validate(); !errs.Valid() {
		t.Fatalf("expected valid application, got %v", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	errs := Application{Codename: "   ", Motivation: "\n"}.Validate()
	want := map[string]string{
		FieldCodename:   "Codename is required for vital intelligence.",
		FieldEmail:      "Encrypted email is crucial for secure comms.",
		FieldSecretCode: "Secret activation code is absolutely essential.",
		FieldMotivation: "Your atomic motivation must be declared.",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("%s: got %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidateFieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Application)
		field  string
		want   string
	}{
		{"short codename", func(a *Application) { a.Codename = " ab " }, FieldCodename, "Codename must be at least 3 characters."},
		{"bad email", func(a *Application) { a.Email = "shadow@garden" }, FieldEmail, "Please enter a valid encrypted email format."},
		{"email with space", func(a *Application) { a.Email = "sha dow@garden.org" }, FieldEmail, "Please enter a valid encrypted email format."},
		{"short code", func(a *Application) { a.SecretCode = "Ab1" }, FieldSecretCode, "Code must be at least 8 characters for atomic security."},
		{"code without digit", func(a *Application) { a.SecretCode = "Abcdefgh" }, FieldSecretCode, "Code needs at least one uppercase letter and one number."},
		{"code without upper", func(a *Application) { a.SecretCode = "abcdefg1" }, FieldSecretCode, "Code needs at least one uppercase letter and one number."},
		{"short motivation", func(a *Application) { a.Motivation = "I like shadows." }, FieldMotivation, "Please elaborate more on your atomic ambitions (min 50 chars)."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := validApplication()
			tc.mutate(&app)
			errs := app.Validate()
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if errs[tc.field] != tc.want {
				t.Fatalf("%s: got %q, want %q", tc.field, errs[tc.field], tc.want)
			}
		})
	}
}

func TestValidateCountsRunes(t *testing.T) {
	app := validApplication()
	app.Codename = "影子者"
	if errs := app.Validate(); !errs.Valid() {
		t.Fatalf("three-rune codename rejected: %v", errs)
	}
}

func TestValidateFieldLive(t *testing.T) {
	cases := []struct {
		field, value, want string
	}{
		{FieldCodename, "", ""},
		{FieldCodename, "ab", "Codename must be at least 3 characters."},
		{FieldCodename, "abc", ""},
		{FieldEmail, "", ""},
		{FieldEmail, "nope", "Please enter a valid encrypted email format."},
		{FieldEmail, "a@b.co", ""},
		{FieldSecretCode, "", ""},
		{FieldSecretCode, "Ab1", "Code must be at least 8 characters."},
		{FieldSecretCode, "abcdefgh", "Code needs at least one uppercase letter and one number."},
		{FieldSecretCode, "Abcdefg1", ""},
		{FieldMotivation, "", ""},
		{FieldMotivation, "short", "Please elaborate more (min 50 chars)."},
		{FieldMotivation, strings.Repeat("x", 50), ""},
	}
	for _, tc := range cases {
		msg, ok := ValidateField(tc.field, tc.value)
		if !ok {
			t.Fatalf("%s: field reported unknown", tc.field)
		}
		if msg != tc.want {
			t.Errorf("ValidateField(%s, %q) = %q, want %q", tc.field, tc.value, msg, tc.want)
		}
	}

	if _, ok := ValidateField("password", "x"); ok {
		t.Error("expected unknown field to be rejected")
	}
}

func TestApplicationValue(t *testing.T) {
	app := validApplication()
	for _, f := range Fields {
		if app.Value(f) == "" {
			t.Errorf("Value(%s) is empty", f)
		}
	}
	if app.Value("other") != "" {
		t.Error("expected empty value for unknown field")
	}
}
