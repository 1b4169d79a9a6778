package screeningclient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/talentrail/screening/pkg/kernel"
	"github.com/talentrail/screening/screening"
)

// scriptedFetcher replays a fixed sequence of snapshots and errors.
// After the script runs out it repeats the last step.
type scriptedFetcher struct {
	steps []fetchStep
	calls int
}

type fetchStep struct {
	snapshot *screening.StatusResponse
	err      error
}

func (f *scriptedFetcher) FetchStatus(_ context.Context, id kernel.ScreeningJobID) (*screening.StatusResponse, error) {
	i := f.calls
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	f.calls++
	step := f.steps[i]
	return step.snapshot, step.err
}

func snapshot(status screening.Status, processed, total int) *screening.StatusResponse {
	return &screening.StatusResponse{
		ScreeningJobID: "sj-1",
		Status:         status,
		ProcessedCount: processed,
		TotalResumes:   total,
	}
}

func TestPollStopsOnCompleted(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []fetchStep{
		{snapshot: snapshot(screening.StatusPending, 0, 3)},
		{snapshot: snapshot(screening.StatusProcessing, 1, 3)},
		{snapshot: snapshot(screening.StatusCompleted, 3, 3)},
	}}
	poller := NewPoller(fetcher).WithInterval(time.Millisecond).WithMaxAttempts(10)

	state, err := poller.Poll(context.Background(), "sj-1")
	if err != nil {
		t.Fatalf("Poll returned error: %v", err)
	}
	if state.LastSnapshot == nil || state.LastSnapshot.Status != screening.StatusCompleted {
		t.Fatalf("final snapshot = %+v, want COMPLETED", state.LastSnapshot)
	}
	if fetcher.calls != 3 {
		t.Errorf("fetcher called %d times, want 3", fetcher.calls)
	}
	if state.AttemptsRemaining != 7 {
		t.Errorf("attempts remaining = %d, want 7", state.AttemptsRemaining)
	}
}

func TestPollStopsOnFailed(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []fetchStep{
		{snapshot: snapshot(screening.StatusProcessing, 1, 2)},
		{snapshot: snapshot(screening.StatusFailed, 2, 2)},
	}}
	poller := NewPoller(fetcher).WithInterval(time.Millisecond).WithMaxAttempts(10)

	state, err := poller.Poll(context.Background(), "sj-1")
	if err != nil {
		t.Fatalf("Poll returned error: %v", err)
	}
	if state.LastSnapshot.Status != screening.StatusFailed {
		t.Errorf("final snapshot status = %s, want FAILED", state.LastSnapshot.Status)
	}
}

func TestPollSurvivesFetchErrors(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []fetchStep{
		{snapshot: snapshot(screening.StatusProcessing, 1, 2)},
		{err: errors.New("connection reset")},
		{snapshot: snapshot(screening.StatusCompleted, 2, 2)},
	}}
	poller := NewPoller(fetcher).WithInterval(time.Millisecond).WithMaxAttempts(10)

	state, err := poller.Poll(context.Background(), "sj-1")
	if err != nil {
		t.Fatalf("Poll returned error: %v", err)
	}
	if state.LastSnapshot.Status != screening.StatusCompleted {
		t.Errorf("final snapshot status = %s, want COMPLETED", state.LastSnapshot.Status)
	}
	if fetcher.calls != 3 {
		t.Errorf("fetcher called %d times, want 3 (the error consumes an attempt)", fetcher.calls)
	}
}

func TestPollKeepsLastSnapshotWhenBudgetRunsOut(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []fetchStep{
		{snapshot: snapshot(screening.StatusProcessing, 1, 5)},
	}}
	poller := NewPoller(fetcher).WithInterval(time.Millisecond).WithMaxAttempts(3)

	state, err := poller.Poll(context.Background(), "sj-1")
	if err == nil {
		t.Fatal("expected error when the attempt budget runs out")
	}
	if !strings.Contains(err.Error(), "did not finish within 3 attempts") {
		t.Errorf("error = %v, want budget exhaustion message", err)
	}
	if state.AttemptsRemaining != 0 {
		t.Errorf("attempts remaining = %d, want 0", state.AttemptsRemaining)
	}
	if state.LastSnapshot == nil || state.LastSnapshot.Status != screening.StatusProcessing {
		t.Errorf("last snapshot = %+v, want the PROCESSING view retained", state.LastSnapshot)
	}
	if fetcher.calls != 3 {
		t.Errorf("fetcher called %d times, want 3", fetcher.calls)
	}
}

func TestPollRespectsContextCancellation(t *testing.T) {
	fetcher := &scriptedFetcher{steps: []fetchStep{
		{snapshot: snapshot(screening.StatusProcessing, 1, 5)},
	}}
	poller := NewPoller(fetcher).WithInterval(time.Hour).WithMaxAttempts(10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := poller.Poll(ctx, "sj-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Poll error = %v, want context.Canceled", err)
	}
	if state.LastSnapshot == nil {
		t.Error("snapshot from the attempt before cancellation should be retained")
	}
}
