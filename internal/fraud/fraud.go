package fraud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pago/internal/payments"
	"pago/internal/store"
)

// Flag marks a suspicious attribute of a request. multiple_attempts and
// suspicious_bin block processing; high_amount alone is advisory.
type Flag string

const (
	FlagHighAmount       Flag = "high_amount"
	FlagMultipleAttempts Flag = "multiple_attempts"
	FlagSuspiciousBIN    Flag = "suspicious_bin"
)

// Blocking reports whether the flag alone blocks the transaction.
func (f Flag) Blocking() bool {
	return f == FlagMultipleAttempts || f == FlagSuspiciousBIN
}

const (
	// highAmountThreshold is currency-agnostic on purpose; see the
	// gateway docs before "fixing" it with conversion.
	highAmountThreshold = 10000

	attemptWindow     = time.Hour
	maxRecentAttempts = 3
)

// Detector scores requests against recent history and the blocked-BIN
// set. It runs before any provider call: screening gates retryable
// work, it does not wrap it.
type Detector struct {
	blacklist *Blacklist
	store     store.TransactionStore
	logger    *zap.SugaredLogger
}

func NewDetector(blacklist *Blacklist, st store.TransactionStore, logger *zap.SugaredLogger) *Detector {
	return &Detector{
		blacklist: blacklist,
		store:     st,
		logger:    logger,
	}
}

// Analyze returns every flag raised for req. When a blocking flag is
// present it fails with a fraud error listing all flags; advisory-only
// flag sets are logged and returned for observability.
func (d *Detector) Analyze(ctx context.Context, req payments.PaymentRequest) ([]Flag, error) {
	var flags []Flag

	if req.Amount > highAmountThreshold {
		flags = append(flags, FlagHighAmount)
	}

	recent, err := d.store.FindByCustomer(ctx, req.CustomerEmail, attemptWindow)
	if err != nil {
		return nil, payments.NewPaymentError(fmt.Sprintf("fraud history lookup failed: %v", err))
	}
	if len(recent) > maxRecentAttempts {
		flags = append(flags, FlagMultipleAttempts)
	}

	if req.CardDetails != nil && d.blacklist.Blocked(req.CardDetails.BIN()) {
		flags = append(flags, FlagSuspiciousBIN)
	}

	if len(flags) == 0 {
		return nil, nil
	}

	d.logger.Warnw("suspicious payment flagged",
		"customer", payments.MaskEmail(req.CustomerEmail),
		"flags", joinFlags(flags),
	)

	for _, f := range flags {
		if f.Blocking() {
			return flags, payments.NewFraudError(
				"transaction blocked: "+joinFlags(flags),
				flagStrings(flags),
			)
		}
	}
	return flags, nil
}

func joinFlags(flags []Flag) string {
	return strings.Join(flagStrings(flags), ", ")
}

func flagStrings(flags []Flag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}
