package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type testPayload struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Year  int    `json:"publication_year" validate:"omitempty,gte=1400"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{
		Name:  "Ursula K. Le Guin",
		Email: "ursula@example.com",
		Year:  1969,
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := testPayload{
		Name:  "x",
		Email: "invalid",
		Year:  200,
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(vErrs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d", len(vErrs))
	}

	foundEmail := false
	for _, v := range vErrs {
		if v.Field == "email" {
			foundEmail = true
		}
	}

	if !foundEmail {
		t.Fatal("expected email field to be present in validation errors")
	}
}

func TestSlugRule(t *testing.T) {
	type payload struct {
		Slug string `json:"slug" validate:"omitempty,slug"`
	}

	if err := ValidateStruct(payload{Slug: "science-fiction"}); err != nil {
		t.Fatalf("expected slug to pass, got %v", err)
	}
	if err := ValidateStruct(payload{Slug: "Science Fiction"}); err == nil {
		t.Fatal("expected slug with spaces and capitals to fail")
	}
	if err := ValidateStruct(payload{}); err != nil {
		t.Fatalf("expected empty optional slug to pass, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("libris", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "libris"
	})
	if err != nil {
		t.Fatalf("register validation: %v", err)
	}

	type custom struct {
		Value string `validate:"libris"`
	}

	if err := ValidateStruct(custom{Value: "libris"}); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	if err := ValidateStruct(custom{Value: "other"}); err == nil {
		t.Fatal("expected validation to fail for non-matching value")
	}
}
