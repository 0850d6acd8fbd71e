package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDigests struct {
	calls int
	err   error
}

func (f *fakeDigests) SendDigests(ctx context.Context) (domain.DigestResult, error) {
	f.calls++
	return domain.DigestResult{Message: "ok", EmailsSent: 1}, f.err
}

type fakeSync struct {
	calls int
}

func (f *fakeSync) SyncAccount(ctx context.Context, accountID string) (domain.SyncResult, error) {
	return domain.SyncResult{}, nil
}

func (f *fakeSync) SyncAll(ctx context.Context) (int, error) {
	f.calls++
	return 2, nil
}

func TestNew_Schedules(t *testing.T) {
	tests := []struct {
		name    string
		digest  string
		sync    string
		wantErr bool
	}{
		{name: "defaults"},
		{name: "custom", digest: "30 7 * * 1", sync: "*/15 * * * *"},
		{name: "invalid digest", digest: "not a schedule", wantErr: true},
		{name: "seconds field rejected", sync: "0 0 */6 * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(SchedulerDependencies{
				DigestManager:  &fakeDigests{},
				SyncManager:    &fakeSync{},
				DigestSchedule: tt.digest,
				SyncSchedule:   tt.sync,
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, s.Entries(), 2)
		})
	}
}

func TestScheduler_Runs(t *testing.T) {
	digests := &fakeDigests{}
	sync := &fakeSync{}

	s, err := New(SchedulerDependencies{DigestManager: digests, SyncManager: sync})
	require.NoError(t, err)

	require.NoError(t, s.runDigests(context.Background()))
	require.NoError(t, s.runSync(context.Background()))
	assert.Equal(t, 1, digests.calls)
	assert.Equal(t, 1, sync.calls)

	digests.err = errors.New("db down")
	assert.Error(t, s.runDigests(context.Background()))
}
