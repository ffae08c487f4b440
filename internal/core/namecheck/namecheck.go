// Package namecheck flags employee names that look damaged by text extraction.
// Verdicts are advisory; nothing is rejected or removed on their account
package namecheck

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Reason is one rule a name tripped
type Reason string

// Reasons in the order they are reported
const (
	ReasonTooShort      Reason = "TOO_SHORT"
	ReasonNoWhitespace  Reason = "NO_WHITESPACE"
	ReasonFragmentToken Reason = "FRAGMENT_TOKEN"
)

// DefaultMinLength is used when Options.MinLength is not positive
const DefaultMinLength = 5

// Verdict is the classification of one name
type Verdict struct {
	Name       string   `json:"name"`
	Suspicious bool     `json:"suspicious"`
	Reasons    []Reason `json:"reasons,omitempty"`
	Fragments  []string `json:"fragments,omitempty"` // folded fragments found, sorted
}

// Has reports whether v carries reason r
func (v Verdict) Has(r Reason) bool {
	for _, x := range v.Reasons {
		if x == r {
			return true
		}
	}
	return false
}

// Options configure a Classifier
type Options struct {
	MinLength int
	Fragments []string
}

// Classifier applies the name rules. It is immutable after New and safe for concurrent use
type Classifier struct {
	minLength int
	fragments []string // folded, deduplicated
	ac        *automaton
}

// New compiles a classifier for opts
func New(opts Options) *Classifier {
	c := &Classifier{minLength: opts.MinLength}
	if c.minLength <= 0 {
		c.minLength = DefaultMinLength
	}

	seen := make(map[string]struct{}, len(opts.Fragments))
	for _, f := range opts.Fragments {
		f = fold(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		c.fragments = append(c.fragments, f)
	}
	sort.Strings(c.fragments)

	c.ac = newAutomaton()
	for i, f := range c.fragments {
		c.ac.add([]byte(f), i)
	}
	c.ac.build()
	return c
}

// MinLength returns the effective minimum name length
func (c *Classifier) MinLength() int { return c.minLength }

// Fragments returns the compiled fragment list
func (c *Classifier) Fragments() []string { return append([]string(nil), c.fragments...) }

// Classify applies every rule to name and unions the reasons
func (c *Classifier) Classify(name string) Verdict {
	v := Verdict{Name: name}
	clean := norm.NFC.String(strings.TrimSpace(name))

	if utf8.RuneCountInString(clean) < c.minLength {
		v.Reasons = append(v.Reasons, ReasonTooShort)
	}
	if !strings.ContainsFunc(clean, unicode.IsSpace) {
		v.Reasons = append(v.Reasons, ReasonNoWhitespace)
	}
	if len(c.fragments) > 0 {
		if found := c.ac.matches([]byte(fold(clean))); len(found) > 0 {
			for id := range found {
				v.Fragments = append(v.Fragments, c.fragments[id])
			}
			sort.Strings(v.Fragments)
			v.Reasons = append(v.Reasons, ReasonFragmentToken)
		}
	}
	v.Suspicious = len(v.Reasons) > 0
	return v
}

// ClassifyAll classifies each distinct name once, in first-seen order
func (c *Classifier) ClassifyAll(names []string) []Verdict {
	seen := make(map[string]struct{}, len(names))
	out := make([]Verdict, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, c.Classify(n))
	}
	return out
}

// Suspicious filters verdicts down to the flagged ones
func Suspicious(vs []Verdict) []Verdict {
	var out []Verdict
	for _, v := range vs {
		if v.Suspicious {
			out = append(out, v)
		}
	}
	return out
}

// fold applies full Unicode case folding; a Caser is not safe for concurrent use
func fold(s string) string {
	return cases.Fold().String(s)
}
