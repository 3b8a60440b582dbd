package authority

// #region imports
import (
	"strings"
)

// #endregion

// #region check-violations

// CheckViolations scans generated text for the phase's forbidden verbs.
// Matching is case-insensitive substring containment, and every match is
// reported, not just the first. A non-empty result is a hard rejection
// signal for the caller; the validator only detects.
func CheckViolations(text string, phase InsightPhase) []string {
	lower := strings.ToLower(text)
	contract := GetContract(phase)

	var violations []string
	for _, verb := range contract.ForbiddenVerbs {
		if strings.Contains(lower, verb) {
			violations = append(violations, verb)
		}
	}
	return violations
}

// #endregion check-violations
