package coverage

import (
	"github.com/atoms-tech/polarion-mcp/internal/polarion"
)

// Qualitative status tiers for a coverage percentage.
const (
	StatusExcellent        = "excellent"
	StatusGood             = "good"
	StatusNeedsImprovement = "needs_improvement"
)

// maxDescriptionLen caps missing-item descriptions to bound report size.
const maxDescriptionLen = 200

// Reference is the evidence that one requirement is implemented.
type Reference struct {
	Found    bool   `json:"found"`
	Evidence string `json:"evidence,omitempty"`
}

// ReferenceMap maps requirement identifiers to implementation evidence.
// It is populated by an external code-inspection capability; an empty
// map classifies every requirement as missing.
type ReferenceMap map[string]Reference

// ImplementedItem is a requirement with found implementation evidence.
type ImplementedItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Evidence string `json:"evidence,omitempty"`
}

// MissingItem is a requirement without implementation evidence.
type MissingItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Result is the derived coverage outcome. It is never stored.
type Result struct {
	Total            int               `json:"total"`
	ImplementedCount int               `json:"implemented_count"`
	MissingCount     int               `json:"missing_count"`
	Percentage       float64           `json:"percentage"`
	Status           string            `json:"status"`
	Implemented      []ImplementedItem `json:"implemented"`
	Missing          []MissingItem     `json:"missing"`
}

// Compute partitions requirements into implemented and missing against
// refs and derives the percentage and status tier. A requirement counts
// as implemented only when its identifier maps to a reference whose
// Found flag is set.
func Compute(requirements []polarion.WorkItem, refs ReferenceMap) Result {
	result := Result{
		Total:       len(requirements),
		Implemented: []ImplementedItem{},
		Missing:     []MissingItem{},
	}

	for _, req := range requirements {
		if ref, ok := refs[req.ID]; ok && ref.Found {
			result.Implemented = append(result.Implemented, ImplementedItem{
				ID:       req.ID,
				Title:    req.Title,
				Evidence: ref.Evidence,
			})
			continue
		}
		result.Missing = append(result.Missing, MissingItem{
			ID:          req.ID,
			Title:       req.Title,
			Type:        req.Type,
			Description: truncate(req.Description, maxDescriptionLen),
		})
	}

	result.ImplementedCount = len(result.Implemented)
	result.MissingCount = len(result.Missing)

	if result.Total > 0 {
		result.Percentage = float64(result.ImplementedCount) / float64(result.Total) * 100
	}

	switch {
	case result.Percentage >= 90:
		result.Status = StatusExcellent
	case result.Percentage >= 70:
		result.Status = StatusGood
	default:
		result.Status = StatusNeedsImprovement
	}

	return result
}

// truncate cuts s at max runes and appends an ellipsis when it does.
// Rune-indexed so a multi-byte character straddling the cap is never
// split into invalid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
