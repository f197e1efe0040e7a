package fritzbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/logging"
)

// DefaultVerifyDelay gives the router time to apply a change before it is
// read back
const DefaultVerifyDelay = 500 * time.Millisecond

// VerifyResult describes the outcome of a verification
type VerifyResult struct {
	Success bool
	// Mismatches holds one line per field that does not show the requested profile
	Mismatches []string
}

// Verify waits for delay, reads the assignment page once and checks that
// every field of cs shows the requested profile. There is no retry.
func (s *Session) Verify(ctx context.Context, cs *ChangeSet, delay time.Duration) (*VerifyResult, error) {
	result := &VerifyResult{}
	if cs.Empty() {
		result.Success = true
		return result, nil
	}

	if err := sleep(ctx, delay); err != nil {
		return nil, err
	}

	rows, err := NewFetcher(s.transport, s.sid).FetchAssignments(ctx)
	if err != nil {
		return nil, err
	}

	result.Mismatches = compareAssignments(cs, rows)
	result.Success = len(result.Mismatches) == 0
	if !result.Success {
		logging.Warn("Profile changes not confirmed by router", zap.Strings("mismatches", result.Mismatches))
	}
	return result, nil
}

func compareAssignments(cs *ChangeSet, rows []AssignmentRow) []string {
	actual := make(map[string]string, len(rows))
	for _, r := range rows {
		actual["profile:"+r.SecondaryID] = r.ProfileID
	}

	var mismatches []string
	for _, key := range cs.Keys() {
		want := cs.Fields[key]
		got, ok := actual[key]
		switch {
		case !ok:
			mismatches = append(mismatches, fmt.Sprintf("%s: device missing from assignment page", strings.TrimPrefix(key, "profile:")))
		case got != want:
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %s, got %s", strings.TrimPrefix(key, "profile:"), want, got))
		}
	}
	return mismatches
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
