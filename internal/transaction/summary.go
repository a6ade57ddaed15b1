package transaction

// Summary aggregates the stored transactions for reporting.
type Summary struct {
	Total       int     `json:"total"`
	TotalAmount float64 `json:"total_amount"`
	Successful  int     `json:"successful"`
	Failed      int     `json:"failed"`
	Pending     int     `json:"pending"`

	ByStatus   map[Status]int `json:"by_status"`
	ByProvider map[string]int `json:"by_provider"`

	// AverageProcessingMS averages only transactions that carry a
	// measured duration; an empty set yields 0.
	AverageProcessingMS float64 `json:"average_processing_ms"`
}

// Summarize computes the summary over txs in one pass.
func Summarize(txs []*Transaction) Summary {
	s := Summary{
		Total:      len(txs),
		ByStatus:   make(map[Status]int),
		ByProvider: make(map[string]int),
	}

	var durationSum int64
	var measured int

	for _, t := range txs {
		s.TotalAmount += t.Amount
		s.ByStatus[t.Status]++
		s.ByProvider[t.Provider]++

		switch t.Status {
		case StatusCompleted, StatusPaid:
			s.Successful++
		case StatusFailed:
			s.Failed++
		case StatusPending:
			s.Pending++
		}

		if t.ProcessedAt != nil {
			durationSum += t.ProcessingMS
			measured++
		}
	}

	if measured > 0 {
		s.AverageProcessingMS = float64(durationSum) / float64(measured)
	}
	return s
}
