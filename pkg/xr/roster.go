package xr

// ValidateRoster checks the distinct team names appearing in the
// history against an expected season roster. Any team expected but
// absent, or present but unexpected, fails the whole batch: a partial
// roster means the league baseline would be computed from the wrong
// population.
func ValidateRoster(history []*MatchRecord, expected []string) error {
	if len(expected) == 0 {
		return nil
	}

	seen := TeamNamesFromHistory(history)
	seenSet := make(map[string]bool, len(seen))
	for _, id := range seen {
		seenSet[id] = true
	}
	expectedSet := make(map[string]bool, len(expected))
	for _, id := range expected {
		expectedSet[id] = true
	}

	var missing, unexpected []string
	for id := range expectedSet {
		if !seenSet[id] {
			missing = append(missing, id)
		}
	}
	for id := range seenSet {
		if !expectedSet[id] {
			unexpected = append(unexpected, id)
		}
	}

	if len(missing) > 0 || len(unexpected) > 0 {
		return &RosterMismatchError{Missing: missing, Unexpected: unexpected}
	}
	return nil
}
