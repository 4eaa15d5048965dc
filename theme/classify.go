package theme

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Severity is a bucket of the severity token family.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// classifierTokens lists every token the classifiers can return. New
// rejects palettes missing any of them.
var classifierTokens = []TokenRef{
	ref(FamilySeverity, string(SeverityCritical)),
	ref(FamilySeverity, string(SeverityHigh)),
	ref(FamilySeverity, string(SeverityMedium)),
	ref(FamilySeverity, string(SeverityLow)),
	ref(FamilySeverity, string(SeverityInfo)),
	ref(FamilyStatus, "success"),
	ref(FamilyStatus, "warning"),
	ref(FamilyStatus, "error"),
}

// ClassifySeverity maps a score to a severity bucket. Numbers, json.Number
// and numeric strings are accepted; anything that does not parse, NaN
// included, is SeverityInfo. Highest threshold wins.
func ClassifySeverity(input any) Severity {
	score, ok := toFloat(input)
	if !ok || math.IsNaN(score) {
		return SeverityInfo
	}
	switch {
	case score >= 9.0:
		return SeverityCritical
	case score >= 7.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ClassifyConfidence maps a 0-100 confidence to the token used to paint it.
// The third tier borrows severity.medium rather than a status token.
func ClassifyConfidence(confidence float64) TokenRef {
	switch {
	case confidence >= 90:
		return ref(FamilyStatus, "success")
	case confidence >= 70:
		return ref(FamilyStatus, "warning")
	case confidence >= 50:
		return ref(FamilySeverity, "medium")
	default:
		return ref(FamilyStatus, "error")
	}
}

// SeverityColor returns the severity token for a score.
func (r *Registry) SeverityColor(input any) Token {
	return r.mustToken(ref(FamilySeverity, string(ClassifySeverity(input))))
}

// ConfidenceColor returns the token for a confidence percentage.
func (r *Registry) ConfidenceColor(confidence float64) Token {
	return r.mustToken(ClassifyConfidence(confidence))
}

// mustToken looks up a classifier token. New guarantees they all exist.
func (r *Registry) mustToken(tr TokenRef) Token {
	t, ok := r.Token(tr.Family, tr.Name)
	if !ok {
		panic(fmt.Sprintf("theme: classifier token %s missing", tr))
	}
	return t
}

// SeverityColor classifies against the default registry.
func SeverityColor(input any) Token {
	return Default().SeverityColor(input)
}

// ConfidenceColor classifies against the default registry.
func ConfidenceColor(confidence float64) Token {
	return Default().ConfidenceColor(confidence)
}

func toFloat(input any) (float64, bool) {
	switch v := input.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
