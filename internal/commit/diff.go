package commit

// DiffBudget is the character budget for diffs sent to the model. Anything
// longer is cut and flagged so the prompt can say the input is partial.
const DiffBudget = 20000

// TruncationMarker is appended to a cut diff.
const TruncationMarker = "\n[diff truncated]"

// TruncateDiff applies the character budget. A diff exactly at the budget is
// returned untouched; one character over is cut and marked.
func TruncateDiff(diff string) (string, bool) {
	if len(diff) <= DiffBudget {
		return diff, false
	}
	return diff[:DiffBudget] + TruncationMarker, true
}
