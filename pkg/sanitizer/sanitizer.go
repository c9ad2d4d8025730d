package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reKeepLettersDigits = regexp.MustCompile(`[^0-9\p{L}]+`)
	reTrimUnderscores   = regexp.MustCompile(`_+`)
	reNonDigits         = regexp.MustCompile(`\D+`)
)

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func collapseUnderscores(s string) string {
	s = reTrimUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// SanitizeSpaceType turns a free-text space type into a stable label.
func SanitizeSpaceType(input string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reKeepLettersDigits.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	return p.Apply(input)
}

// SanitizeCPF strips the punctuation of a formatted CPF ("123.456.789-09").
func SanitizeCPF(input string) string {
	return reNonDigits.ReplaceAllString(input, "")
}

// SanitizeIdentifier normalizes a requester identifier. Emails are matched
// case-insensitively, opaque ids are kept as given.
func SanitizeIdentifier(input string) string {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "@") {
		return NormalizeEmail(input)
	}
	return input
}
