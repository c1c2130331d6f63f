package repositories

import (
	"strings"
	"testing"
)

func TestUngradedSubmissionsQueryFilters(t *testing.T) {
	tests := []struct {
		name      string
		predicate string
	}{
		{"submitted status", "s.status = 'submitted'"},
		{"submission timestamp present", "s.submitted_at IS NOT NULL"},
		{"oldest first", "ORDER BY s.submitted_at ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(ungradedSubmissionsQuery, tt.predicate) {
				t.Errorf("ungraded submissions query is missing %q", tt.predicate)
			}
		})
	}
}

func TestFailedAttemptsQueryListsEveryAttempt(t *testing.T) {
	for _, predicate := range []string{
		"qa.state = 'finished'",
		"qa.sum_grades < q.sum_grades",
		"ORDER BY qa.finished_at DESC",
	} {
		if !strings.Contains(failedAttemptsQuery, predicate) {
			t.Errorf("failed attempts query is missing %q", predicate)
		}
	}

	// Every finished below-maximum attempt is listed; collapsing to a
	// student's best attempt would change counts and page totals.
	if strings.Contains(failedAttemptsQuery, "MAX(") {
		t.Error("failed attempts query must not collapse attempts per student")
	}
}
