package validation

import "testing"

type signup struct {
	Name     string `json:"name" validate:"required" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=6" msg:"Please enter a password with 6 or more characters"`
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(signup{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestStruct_FieldErrors(t *testing.T) {
	errs := Struct(&signup{Email: "nope", Password: "123"})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}

	want := map[string]string{
		"name":     "Name is required",
		"email":    "Please include a valid email",
		"password": "Please enter a password with 6 or more characters",
	}
	for _, fe := range errs {
		if want[fe.Param] != fe.Msg {
			t.Fatalf("unexpected error for %s: %q", fe.Param, fe.Msg)
		}
		if fe.Location != LocationBody {
			t.Fatalf("unexpected location %q", fe.Location)
		}
	}
}
