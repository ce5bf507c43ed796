package validation

import (
	"encoding/json"
	"testing"
)

func TestValidateStructAndErrorsToJson(t *testing.T) {
	type Input struct {
		Email string `validate:"required,email" json:"email"`
	}

	tests := []struct {
		name        string
		in          Input
		wantErr     bool
		wantJsonMap map[string]string
	}{
		{
			name:    "success",
			in:      Input{Email: "a@b.com"},
			wantErr: false,
		},
		{
			name:    "missing email",
			in:      Input{Email: ""},
			wantErr: true,
			wantJsonMap: map[string]string{
				"email": "required",
			},
		},
		{
			name:    "invalid email",
			in:      Input{Email: "not-an-email"},
			wantErr: true,
			wantJsonMap: map[string]string{
				"email": "email",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			// convert and unmarshal for comparison
			js, jerr := ErrorsToJson(err)
			if jerr != nil {
				t.Fatalf("ErrorsToJson() error = %v", jerr)
			}
			var got map[string]string
			if err := json.Unmarshal([]byte(js), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			for field, tag := range tt.wantJsonMap {
				if got[field] != tag {
					t.Errorf("field %q: got %q, want %q", field, got[field], tag)
				}
			}
		})
	}
}

func TestJsonTagFallback(t *testing.T) {
	type Input struct {
		Email string `validate:"required" json:"email"`
		Bar   int    `validate:"required"`
	}

	err := ValidateStruct(Input{})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	js, _ := ErrorsToJson(err)

	var got map[string]string
	if err := json.Unmarshal([]byte(js), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["email"] != "required" {
		t.Errorf("email: got %q, want %q", got["email"], "required")
	}
	if got["Bar"] != "required" {
		t.Errorf("Bar: got %q, want %q", got["Bar"], "required")
	}
}
