package requester

import (
	"encoding/json"
	"testing"
	"unicode/utf8"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single field", `{"field": ["Too short."]}`, "Too short "},
		{"two fields", `{"a": ["X."], "b": ["Y."]}`, "X / Y "},
		{"only first message used", `{"passphrase": ["Missing a passphrase.", "Too weak."]}`, "Missing a passphrase "},
		{"keeps server order", `{"tries": ["Min 3."], "days": ["Max 7."], "secret": ["Missing."]}`, "Min 3 / Max 7 / Missing "},
		{"empty object", `{}`, ""},
		{"field without messages skipped", `{"a": [], "b": ["Y."]}`, "Y "},
		{"plain string value", `{"slug": "Missing a secret link."}`, "Missing a secret link "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fe FieldErrors
			if err := json.Unmarshal([]byte(tt.input), &fe); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got := Flatten(fe); got != tt.want {
				t.Errorf("Flatten(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFlattenNonEmptyInputGivesNonEmptyOutput(t *testing.T) {
	fe := FieldErrors{{Field: "secret", Messages: []string{"The secret should not exceed 250 characters."}}}
	if got := Flatten(fe); got == "" {
		t.Error("Expected a non-empty message")
	}
}

func TestFlattenMultibyteLastCharacter(t *testing.T) {
	fe := FieldErrors{{Field: "a", Messages: []string{"Trop court…"}}, {Field: "b", Messages: []string{"Zu kurz."}}}
	if got, want := Flatten(fe), "Trop court / Zu kurz "; got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

func TestFlattenKeptLineBreakAfterMultibyteRune(t *testing.T) {
	fe := FieldErrors{{Field: "a", Messages: []string{"X."}}, {Field: "b", Messages: []string{"Trop courté\n"}}}
	got := Flatten(fe)
	if !utf8.ValidString(got) {
		t.Fatalf("Flatten() returned invalid UTF-8: %q", got)
	}
	if want := "X / Trop court"; got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

func TestFlattenSingleCharacterMessage(t *testing.T) {
	fe := FieldErrors{{Field: "a", Messages: []string{"é"}}}
	if got, want := Flatten(fe), " "; got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

func TestFieldErrorsRejectsNonObject(t *testing.T) {
	for _, input := range []string{`["a"]`, `"oops"`, `{"a": 3}`} {
		var fe FieldErrors
		if err := json.Unmarshal([]byte(input), &fe); err == nil {
			t.Errorf("Expected error for %s", input)
		}
	}
}
