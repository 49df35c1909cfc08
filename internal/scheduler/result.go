package scheduler

// Outcome classifies what happened to one row in a batch run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// RowResult is the per-row record of a batch run. One bad row never
// aborts the batch; it lands here as failed and the run continues.
type RowResult struct {
	ID      int64   `json:"id"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}

// Summary aggregates a batch run for logs and exit codes.
type Summary struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func summarize(rows []RowResult) Summary {
	s := Summary{Processed: len(rows)}
	for _, r := range rows {
		switch r.Outcome {
		case OutcomeSuccess:
			s.Succeeded++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}
