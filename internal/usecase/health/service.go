package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckPending indicates work still in progress; it does not degrade the report.
	CheckPending CheckResult = "pending"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	corpus     CorpusCounter
	store      StorePinger
	embeddings PrecomputeStatus
}

// New creates a Service. store and embeddings can be nil when not configured.
func New(corpus CorpusCounter, store StorePinger, embeddings PrecomputeStatus) *Service {
	return &Service{corpus: corpus, store: store, embeddings: embeddings}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 3)

	if s.corpus.Len() > 0 {
		checks["corpus"] = CheckOK
	} else {
		checks["corpus"] = CheckError
	}

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			checks["store"] = CheckError
		} else {
			checks["store"] = CheckOK
		}
	}

	if s.embeddings != nil {
		st := s.embeddings.Status()
		switch {
		case st.Err != nil:
			checks["embeddings"] = CheckError
		case st.Done:
			checks["embeddings"] = CheckOK
		default:
			checks["embeddings"] = CheckPending
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
