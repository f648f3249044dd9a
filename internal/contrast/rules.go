package contrast

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules pairs dark background utilities with the light text utilities that
// make them readable.
type Rules struct {
	dark  []*regexp.Regexp
	light []*regexp.Regexp
}

// Violation is a dark background token with no matching light text.
type Violation struct {
	Token   string // as written, including variant, e.g. "dark:bg-gray-900"
	Variant string // "" when the token has no variant prefix
}

// CompileRules compiles the pattern lists. Each pattern must match a whole
// utility (the variant prefix is stripped before matching).
func CompileRules(dark, light []string) (*Rules, error) {
	if len(dark) == 0 {
		return nil, fmt.Errorf("no dark background patterns configured")
	}
	if len(light) == 0 {
		return nil, fmt.Errorf("no light text patterns configured")
	}
	r := &Rules{}
	var err error
	if r.dark, err = compileAnchored(dark); err != nil {
		return nil, fmt.Errorf("dark_backgrounds: %w", err)
	}
	if r.light, err = compileAnchored(light); err != nil {
		return nil, fmt.Errorf("light_texts: %w", err)
	}
	return r, nil
}

func compileAnchored(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Check returns the dark backgrounds in class that lack a light text with
// the same variant or no variant. Violations are in token order.
func (r *Rules) Check(class string) []Violation {
	type token struct {
		raw, variant, utility string
	}
	var tokens []token
	for _, raw := range strings.Fields(class) {
		variant, utility := splitVariant(raw)
		tokens = append(tokens, token{raw: raw, variant: variant, utility: utility})
	}

	lightVariants := make(map[string]bool)
	for _, tok := range tokens {
		if matchAny(r.light, tok.utility) {
			lightVariants[tok.variant] = true
		}
	}

	var violations []Violation
	for _, tok := range tokens {
		if !matchAny(r.dark, tok.utility) {
			continue
		}
		if lightVariants[tok.variant] || lightVariants[""] {
			continue
		}
		violations = append(violations, Violation{Token: tok.raw, Variant: tok.variant})
	}
	return violations
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// splitVariant separates "md:dark:bg-black" into ("md:dark", "bg-black").
// Colons inside arbitrary values (bg-[url(https://x)]) are not separators.
// A leading "!" (important modifier) is dropped from the utility.
func splitVariant(tok string) (variant, utility string) {
	depth := 0
	split := -1
	for i := 0; i < len(tok); i++ {
		switch tok[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				split = i
			}
		}
	}
	if split < 0 {
		return "", strings.TrimPrefix(tok, "!")
	}
	return tok[:split], strings.TrimPrefix(tok[split+1:], "!")
}
