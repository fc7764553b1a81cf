// Package intent classifies chat messages into a fixed set of intents.
package intent

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/bloom/internal/model"
)

// Confidence values reported by the classifier.
const (
	MatchConfidence    = 0.8
	FallbackConfidence = 0.5
)

// Rule maps a message pattern to an intent.
type Rule struct {
	Intent   model.Intent
	Regex    string
	Priority int // Higher priority rules are checked first
}

type compiledRule struct {
	regex *regexp.Regexp
	Rule
}

// Classifier matches messages against an ordered rule table. The first rule
// that matches decides the intent.
type Classifier struct {
	rules []compiledRule
}

// NewClassifier compiles rules. Rules are checked by descending priority;
// rules with equal priority keep their given order. Patterns are
// case-insensitive.
func NewClassifier(rules []Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		regexStr := r.Regex
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}

		regex, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s rule: %w", r.Intent, err)
		}

		compiled = append(compiled, compiledRule{Rule: r, regex: regex})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return &Classifier{rules: compiled}, nil
}

// NewDefaultClassifier returns a classifier over DefaultRules.
func NewDefaultClassifier() (*Classifier, error) {
	return NewClassifier(DefaultRules())
}

// Classify returns the intent of message. Messages that match no rule are
// general with low confidence.
func (c *Classifier) Classify(message string) model.Classification {
	text := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range c.rules {
		if rule.regex.MatchString(text) {
			return model.Classification{Intent: rule.Intent, Confidence: MatchConfidence}
		}
	}

	return model.Classification{Intent: model.IntentGeneral, Confidence: FallbackConfidence}
}

// RuleCount returns the number of loaded rules.
func (c *Classifier) RuleCount() int {
	return len(c.rules)
}
