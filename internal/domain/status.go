package domain

import (
	"fmt"
	"strings"
)

// Criticality is a display/prioritisation label. No reorder formula reads it.
type Criticality string

const (
	CriticalityLow       Criticality = "low"
	CriticalityMedium    Criticality = "medium"
	CriticalityHigh      Criticality = "high"
	CriticalityEssential Criticality = "essential"
)

var criticalityLabels = map[Criticality]string{
	CriticalityLow:       "Low",
	CriticalityMedium:    "Medium",
	CriticalityHigh:      "High",
	CriticalityEssential: "Essential",
}

// Label returns a human-readable label for the criticality level.
func (c Criticality) Label() string {
	if label, ok := criticalityLabels[c]; ok {
		return label
	}

	return "Unknown"
}

// ParseCriticality returns the criticality for a given label (case-insensitive).
// An empty label maps to medium, the default for new products.
func ParseCriticality(label string) (Criticality, error) {
	normalized := Criticality(strings.ToLower(strings.TrimSpace(label)))
	if normalized == "" {
		return CriticalityMedium, nil
	}
	if _, ok := criticalityLabels[normalized]; !ok {
		return "", fmt.Errorf("%w: unknown criticality %q", ErrInvalidInput, label)
	}

	return normalized, nil
}
