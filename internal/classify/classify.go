// Package classify maps free-text RSVP replies to a decision.
package classify

import (
	"strings"

	"rsvp-bot/internal/models"
)

// Word sets are checked in order: YES before NO before MAYBE. The order is
// load-bearing: a reply containing words from more than one set resolves to
// the earliest set. Matching is substring containment on the lower-cased,
// trimmed text.
var rules = []struct {
	decision models.Status
	words    []string
}{
	{models.StatusYes, []string{"כן", "מגיע", "אהיה", "בא", "באה", "yes"}},
	{models.StatusNo, []string{"לא", "no"}},
	{models.StatusMaybe, []string{"אולי", "נראה", "maybe"}},
}

// Reply classifies a guest's free-text reply into an RSVP decision.
// Unmatched text returns StatusUnknown.
func Reply(text string) models.Status {
	t := strings.ToLower(strings.TrimSpace(text))

	for _, r := range rules {
		for _, w := range r.words {
			if strings.Contains(t, w) {
				return r.decision
			}
		}
	}
	return models.StatusUnknown
}
