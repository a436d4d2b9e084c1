// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalizes user-supplied text before it is validated
// and stored.
//
// # Usage
//
// Habit titles and display names are compared and length-checked in NFC
// form, so "café" typed with a combining accent and "café" typed precomposed
// are the same string. Emails are additionally case-folded so that uniqueness
// holds regardless of how the address was typed.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldEmail builds a fresh Caser per call since a Caser keeps state.
func foldEmail(s string) string {
	return cases.Fold().String(s)
}

// Text trims the value, converts it to NFC and collapses runs of whitespace
// (including newlines and tabs) into single spaces.
func Text(s string) string {
	composed := norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(composed, unicode.IsSpace), " ")
}

// Multiline is like [Text] but keeps line breaks, trimming each line.
func Multiline(s string) string {
	lines := strings.Split(norm.NFC.String(strings.ReplaceAll(s, "\r\n", "\n")), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Email trims, NFC-normalizes and case-folds an address.
func Email(s string) string {
	return foldEmail(norm.NFC.String(strings.TrimSpace(s)))
}

// Color lower-cases a #RRGGBB value so equal colors compare equal.
func Color(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
