package screeningclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/screening"
)

const (
	DefaultMaxAttempts = 120
	DefaultInterval    = 5 * time.Second
)

// StatusFetcher retrieves one status snapshot for a screening job
type StatusFetcher interface {
	FetchStatus(ctx context.Context, id kernel.ScreeningJobID) (*screening.StatusResponse, error)
}

// Poller repeatedly fetches a screening job's status until it reaches a
// terminal state or the attempt budget runs out.
type Poller struct {
	fetcher     StatusFetcher
	interval    time.Duration
	maxAttempts int
}

// PollState is the poller's view of one tracked job
type PollState struct {
	JobID             kernel.ScreeningJobID
	AttemptsRemaining int
	LastSnapshot      *screening.StatusResponse
}

func NewPoller(fetcher StatusFetcher) *Poller {
	return &Poller{
		fetcher:     fetcher,
		interval:    DefaultInterval,
		maxAttempts: DefaultMaxAttempts,
	}
}

// WithInterval overrides the delay between attempts
func (p *Poller) WithInterval(d time.Duration) *Poller {
	p.interval = d
	return p
}

// WithMaxAttempts overrides the attempt budget
func (p *Poller) WithMaxAttempts(n int) *Poller {
	p.maxAttempts = n
	return p
}

// Poll tracks a job until COMPLETED or FAILED. A fetch error consumes an
// attempt but does not abort; the last successful snapshot is kept. Returns
// the final state; when attempts run out the state holds the last snapshot
// seen and an error is returned.
func (p *Poller) Poll(ctx context.Context, id kernel.ScreeningJobID) (*PollState, error) {
	state := &PollState{
		JobID:             id,
		AttemptsRemaining: p.maxAttempts,
	}

	for state.AttemptsRemaining > 0 {
		state.AttemptsRemaining--

		snapshot, err := p.fetcher.FetchStatus(ctx, id)
		if err == nil {
			state.LastSnapshot = snapshot
			if snapshot.Status == screening.StatusCompleted || snapshot.Status == screening.StatusFailed {
				return state, nil
			}
		}

		if state.AttemptsRemaining == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-time.After(p.interval):
		}
	}

	return state, fmt.Errorf("screening %s did not finish within %d attempts", id, p.maxAttempts)
}

// ============================================================================
// HTTP fetcher
// ============================================================================

// HTTPStatusFetcher fetches status snapshots from the screening API
type HTTPStatusFetcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPStatusFetcher(baseURL, apiKey string) *HTTPStatusFetcher {
	return &HTTPStatusFetcher{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPStatusFetcher) FetchStatus(ctx context.Context, id kernel.ScreeningJobID) (*screening.StatusResponse, error) {
	url := fmt.Sprintf("%s/api/v1/screenings/jobs/%s", f.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("X-API-Key", f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch status for %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status request for %s returned %d", id, resp.StatusCode)
	}

	var snapshot screening.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode status for %s: %w", id, err)
	}

	return &snapshot, nil
}
