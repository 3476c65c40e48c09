package planner

// dispositionFor marks the first output audio stream as default and clears
// the flag on every other one, so players never pick a commentary or
// foreign-language track first.
func dispositionFor(outputIndex int) string {
	if outputIndex == 0 {
		return DispositionDefault
	}
	return DispositionNone
}
