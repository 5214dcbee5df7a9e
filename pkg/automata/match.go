package automata

// MatchLine reports whether the compiled pattern occurs anywhere in
// line: the scan tries every starting offset and stops at the first
// accept. Containment semantics, not full-line anchoring.
func (d *DFA) MatchLine(line string) bool { return d.matchLine(line, false) }

// MatchLineFold is MatchLine with simple case folding.
func (d *DFA) MatchLineFold(line string) bool { return d.matchLine(line, true) }

func (d *DFA) matchLine(line string, fold bool) bool {
	runes := []rune(line)
	// The offset i == len(runes) run covers patterns that accept the
	// empty string on an empty suffix.
	for i := 0; ; i++ {
		if d.matchFrom(runes[i:], fold) {
			return true
		}
		if i >= len(runes) {
			return false
		}
	}
}

func (d *DFA) matchFrom(runes []rune, fold bool) bool {
	state := d.Start
	if d.IsAccept(state) {
		return true
	}
	for _, r := range runes {
		if fold {
			state = d.StepFold(state, r)
		} else {
			state = d.Step(state, r)
		}
		if state == DeadState {
			return false
		}
		if d.IsAccept(state) {
			return true
		}
	}
	return false
}
