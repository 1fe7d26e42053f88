package coverage

import "fmt"

// maxCallouts caps how many missing requirements the recommendation
// list names individually. This cap is contract, not presentation.
const maxCallouts = 3

// maxTitleLen bounds the title shown in a missing-item call-out.
const maxTitleLen = 60

// Recommend turns a coverage result into ranked next-action lines:
// a headline keyed by the percentage tier, then up to three missing-item
// call-outs, then a closing next step.
func Recommend(result Result, topic string) []string {
	var recs []string

	switch {
	case result.Percentage == 100 && result.Total > 0:
		recs = append(recs, fmt.Sprintf(
			"All %d requirements for %q have implementation evidence. Consider a verification pass to confirm behavioral correctness.",
			result.Total, topic))
	case result.Percentage >= 80:
		recs = append(recs, fmt.Sprintf(
			"Coverage for %q is strong (%.1f%%). Close the remaining gaps to reach full coverage.",
			topic, result.Percentage))
	default:
		recs = append(recs, fmt.Sprintf(
			"Coverage for %q is %.1f%%. Significant implementation work remains.",
			topic, result.Percentage))
	}

	if result.MissingCount > 0 {
		recs = append(recs, fmt.Sprintf(
			"Prioritize implementing these %d missing requirements:", result.MissingCount))
		for i, item := range result.Missing {
			if i == maxCallouts {
				break
			}
			title := []rune(item.Title)
			if len(title) > maxTitleLen {
				title = title[:maxTitleLen]
			}
			recs = append(recs, fmt.Sprintf("%s: %s...", item.ID, string(title)))
		}
	}

	recs = append(recs,
		"Re-run coverage_analysis after changes to track progress.")
	return recs
}
