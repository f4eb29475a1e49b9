package model

// ProgressSummary is the server-side aggregation over a user's challenge
// history. Read-only on the client; History is ordered oldest first and that
// order must survive every copy.
type ProgressSummary struct {
	History               []DailyLog `json:"history"`
	TotalDays             int        `json:"totalDays"`
	ActiveDays            int        `json:"activeDays"`
	PerfectDays           int        `json:"perfectDays"`
	ConsistencyPercentage float64    `json:"consistencyPercentage"`
	CompletionPercentage  float64    `json:"completionPercentage"`
}

// LastN returns the most recent n history entries, oldest first.
func (p ProgressSummary) LastN(n int) []DailyLog {
	if n <= 0 || len(p.History) == 0 {
		return nil
	}
	start := len(p.History) - n
	if start < 0 {
		start = 0
	}
	out := make([]DailyLog, 0, len(p.History)-start)
	for _, day := range p.History[start:] {
		out = append(out, day.Clone())
	}
	return out
}

// Clone deep-copies the summary including every history entry.
func (p ProgressSummary) Clone() ProgressSummary {
	out := p
	if p.History != nil {
		out.History = make([]DailyLog, 0, len(p.History))
		for _, day := range p.History {
			out.History = append(out.History, day.Clone())
		}
	}
	return out
}
