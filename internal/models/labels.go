package models

import (
	"fmt"
	"strings"
)

// PositiveRule selects which of the two observed truth values is the positive class.
type PositiveRule string

const (
	// PositiveFirstSeen treats the first distinct truth value, scanning rows
	// in order, as positive.
	PositiveFirstSeen PositiveRule = "first-seen"

	// PositiveLexical treats the lexicographically smaller truth value as positive.
	PositiveLexical PositiveRule = "lexical"
)

// ParsePositiveRule converts a config or flag value into a PositiveRule.
// The empty string maps to PositiveFirstSeen.
func ParsePositiveRule(s string) (PositiveRule, error) {
	switch PositiveRule(strings.ToLower(strings.TrimSpace(s))) {
	case "", PositiveFirstSeen:
		return PositiveFirstSeen, nil
	case PositiveLexical:
		return PositiveLexical, nil
	default:
		return "", fmt.Errorf("unknown positive rule %q: must be %s or %s", s, PositiveFirstSeen, PositiveLexical)
	}
}

// LabelSet is the binary class partition of a classification truth column.
type LabelSet struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

// LabelOptions controls how the positive class is chosen.
// A non-empty Positive overrides Rule.
type LabelOptions struct {
	Positive string
	Rule     PositiveRule

	// AllowOneClass accepts a truth column holding a single distinct value.
	AllowOneClass bool
}

// InferLabelSet derives the label set from truth values given in row order.
// Exactly two distinct values must be present, or one when AllowOneClass is
// set. A single observed value is the positive class with an empty negative,
// unless Positive names another label, in which case the observed value is
// the negative class.
func InferLabelSet(truths []string, opts LabelOptions) (LabelSet, error) {
	var distinct []string
	for _, t := range truths {
		if len(distinct) == 2 && (t == distinct[0] || t == distinct[1]) {
			continue
		}
		seen := false
		for _, d := range distinct {
			if d == t {
				seen = true
				break
			}
		}
		if !seen {
			distinct = append(distinct, t)
		}
		if len(distinct) > 2 {
			return LabelSet{}, fmt.Errorf("%w: truth column has more than two distinct values (%q, %q, %q, ...)",
				ErrLabelSet, distinct[0], distinct[1], distinct[2])
		}
	}
	if len(distinct) == 1 && opts.AllowOneClass {
		if opts.Positive != "" && opts.Positive != distinct[0] {
			return LabelSet{Positive: opts.Positive, Negative: distinct[0]}, nil
		}
		return LabelSet{Positive: distinct[0]}, nil
	}
	if len(distinct) != 2 {
		return LabelSet{}, fmt.Errorf("%w: truth column has %d distinct value(s), want 2", ErrLabelSet, len(distinct))
	}

	first, second := distinct[0], distinct[1]

	if opts.Positive != "" {
		switch opts.Positive {
		case first:
			return LabelSet{Positive: first, Negative: second}, nil
		case second:
			return LabelSet{Positive: second, Negative: first}, nil
		default:
			return LabelSet{}, fmt.Errorf("%w: positive label %q not found in truth column (have %q, %q)",
				ErrLabelSet, opts.Positive, first, second)
		}
	}

	rule, err := ParsePositiveRule(string(opts.Rule))
	if err != nil {
		return LabelSet{}, err
	}
	if rule == PositiveLexical && second < first {
		first, second = second, first
	}
	return LabelSet{Positive: first, Negative: second}, nil
}
