// Package model holds the data structures shared by the Core and
// Integration APIs: localised text, OAuth2 tokens and the driver setup flow
// with its settings pages.
package model

import (
	"slices"

	"github.com/nerrad567/ucapi/validate"
)

// Fallback languages tried, in order, when the requested one is missing.
var fallbackLanguages = []string{"en", "en-UK", "en-US"}

// LanguageText maps a language code (en, de, fr_CH, ...) to a localised text.
// An English text with key "en" should always be provided as fallback.
type LanguageText map[string]string

// Text returns the text for lang. When lang is missing it falls back to
// "en", "en-UK" and "en-US", then to the entry with the lowest key.
// An empty map yields the empty string.
func (t LanguageText) Text(lang string) string {
	if len(t) == 0 {
		return ""
	}
	if v, ok := t[lang]; ok {
		return v
	}
	for _, fb := range fallbackLanguages {
		if v, ok := t[fb]; ok {
			return v
		}
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return t[keys[0]]
}

// Validate rejects empty language keys.
func (t LanguageText) Validate() error {
	c := validate.New()
	for k := range t {
		if k == "" {
			c.Add("", validate.ConstraintRequired, "language key is empty")
		}
	}
	return c.Err()
}

// NewLanguageText returns a LanguageText with a single English entry.
func NewLanguageText(en string) LanguageText {
	return LanguageText{"en": en}
}
