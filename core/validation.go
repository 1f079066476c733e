// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ParseLanguage converts a raw tag into a Language.
//
// Only "en" and "ar" are accepted. Anything else fails with
// ErrUnsupportedLanguage carrying the offending tag; tags are never
// silently defaulted.
func ParseLanguage(tag string) (Language, error) {
	switch Language(tag) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageArabic:
		return LanguageArabic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}
}

// ValidateLanguage validates that a Language has a supported value.
func ValidateLanguage(lang Language) error {
	if lang != LanguageEnglish && lang != LanguageArabic {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return nil
}
