package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Current          int
	Converted        int
	Remuxed          int
	Inspected        int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// Succeeded counts files that produced an output.
func (s *RunStats) Succeeded() int {
	return s.Converted + s.Remuxed
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// ExitCode is 0 when every file succeeded and 1 otherwise.
func (s *RunStats) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}
