package core

import (
	"errors"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    Language
		wantErr bool
	}{
		{name: "english", tag: "en", want: LanguageEnglish},
		{name: "arabic", tag: "ar", want: LanguageArabic},
		{name: "french rejected", tag: "fr", wantErr: true},
		{name: "empty rejected", tag: "", wantErr: true},
		{name: "uppercase not coerced", tag: "EN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLanguage(tt.tag)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedLanguage) {
					t.Errorf("ParseLanguage(%q) error = %v, want ErrUnsupportedLanguage", tt.tag, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLanguage(%q) unexpected error: %v", tt.tag, err)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestValidateLanguage(t *testing.T) {
	if err := ValidateLanguage(LanguageEnglish); err != nil {
		t.Errorf("ValidateLanguage(en) unexpected error: %v", err)
	}
	if err := ValidateLanguage(LanguageArabic); err != nil {
		t.Errorf("ValidateLanguage(ar) unexpected error: %v", err)
	}
	if err := ValidateLanguage(Language("fr")); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("ValidateLanguage(fr) error = %v, want ErrUnsupportedLanguage", err)
	}
}
