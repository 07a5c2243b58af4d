package boleto

import "time"

// SelectGoverning picks the boleto that governs the resolution among the
// candidates returned for a plate and window: the one with the earliest due
// date, first occurrence winning ties. Candidates with unparseable due dates
// sort after every parseable one so a malformed record never shadows a valid
// one. Returns false when there are no candidates.
func SelectGoverning(candidates []Boleto) (*Boleto, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	best := 0
	bestDue, bestOK := parseDue(&candidates[0])
	for i := 1; i < len(candidates); i++ {
		due, ok := parseDue(&candidates[i])
		switch {
		case !ok:
			continue
		case !bestOK, due.Before(bestDue):
			best, bestDue, bestOK = i, due, true
		}
	}
	return &candidates[best], true
}

func parseDue(b *Boleto) (time.Time, bool) {
	t, err := ParseDate(b.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
