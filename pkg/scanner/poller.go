package scanner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/progress"
)

const opPoll = "wait for scan"

var errNotTerminal = errors.New("scan has not reached a terminal state")

type PollerConfig struct {
	Interval    time.Duration
	MaxAttempts int
	// ProgressBudget is distributed evenly over all attempts.
	ProgressBudget float64
}

func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Interval:       constants.CYBEDEFEND_DEFAULT_POLL_INTERVAL_MS * time.Millisecond,
		MaxAttempts:    constants.CYBEDEFEND_DEFAULT_POLL_MAX_ATTEMPTS,
		ProgressBudget: progressPollingBudget,
	}
}

// Poller queries the status of a scan at a fixed interval until it is terminal or the attempt
// budget is used up.
type Poller struct {
	client cybedefend.Client
	cfg    PollerConfig
	logger *zerolog.Logger
}

func NewPoller(client cybedefend.Client, logger *zerolog.Logger, cfg PollerConfig) *Poller {
	defaults := DefaultPollerConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.ProgressBudget < 0 {
		cfg.ProgressBudget = 0
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Poller{client: client, cfg: cfg, logger: logger}
}

// Poll returns COMPLETED or FAILED as soon as the service reports it. Failed queries are retried
// on the next interval unless retrying cannot help (401, 403, 404, local configuration errors).
// A Timeout error is returned after MaxAttempts queries without a terminal state.
func (p *Poller) Poll(ctx context.Context, handle cybedefend.ScanHandle, tracker progress.Tracker) (cybedefend.ScanStatus, error) {
	if tracker == nil {
		tracker = progress.Discard
	}

	increment := p.cfg.ProgressBudget / float64(p.cfg.MaxAttempts)
	attempt := 0

	operation := func() (cybedefend.ScanStatus, error) {
		attempt++
		if err := ctx.Err(); err != nil {
			return cybedefend.ScanStatusUnknown, backoff.Permanent(errorcatalog.Label(opPoll, err))
		}

		status, err := p.client.GetScanStatus(ctx, handle.ProjectID, handle.ScanID)
		if err != nil {
			if errorcatalog.IsCancelled(err) || isFatal(err) {
				return cybedefend.ScanStatusUnknown, backoff.Permanent(err)
			}
			p.logger.Warn().Err(err).Int("attempt", attempt).Str("scanId", handle.ScanID).Msg("Failed to query scan status, retrying")
			return cybedefend.ScanStatusUnknown, err
		}

		tracker.Report(increment, fmt.Sprintf("scan %s (attempt %d/%d)", status, attempt, p.cfg.MaxAttempts))
		p.logger.Debug().Str("scanId", handle.ScanID).Str("status", string(status)).Int("attempt", attempt).Msg("Scan status")

		if status.IsTerminal() {
			return status, nil
		}
		return status, errNotTerminal
	}

	status, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(p.cfg.Interval)),
		backoff.WithMaxTries(uint(p.cfg.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if err == nil {
		return status, nil
	}

	var catalogErr *errorcatalog.Error
	switch {
	case ctx.Err() != nil:
		// cancelled while waiting for the next attempt
		return status, errorcatalog.Label(opPoll, ctx.Err())
	case errors.As(err, &catalogErr) && (catalogErr.Kind == errorcatalog.KindCancelled || isFatal(err)):
		return status, err
	}

	p.logger.Warn().Err(err).Int("attempts", attempt).Msg("Scan did not finish in time")
	return status, errorcatalog.NewTimeoutError(opPoll, fmt.Sprintf("scan %s did not finish after %d status checks", handle.ScanID, attempt))
}

func isFatal(err error) bool {
	switch errorcatalog.StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return errorcatalog.KindOf(err) == errorcatalog.KindConfiguration
}
