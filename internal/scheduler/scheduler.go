package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/robfig/cron"
	"github.com/rs/zerolog/log"
)

const (
	DefaultDigestSchedule = "0 8 * * *"
	DefaultSyncSchedule   = "0 */6 * * *"
)

type Scheduler struct {
	cron    *cron.Cron
	digests domain.DigestManager
	sync    domain.SyncManager
	timeout time.Duration
}

type SchedulerDependencies struct {
	DigestManager  domain.DigestManager
	SyncManager    domain.SyncManager
	DigestSchedule string
	SyncSchedule   string
	// JobTimeout bounds a single run. Zero means no bound.
	JobTimeout time.Duration
}

func New(deps SchedulerDependencies) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.NewWithLocation(time.UTC),
		digests: deps.DigestManager,
		sync:    deps.SyncManager,
		timeout: deps.JobTimeout,
	}

	digestSchedule := deps.DigestSchedule
	if digestSchedule == "" {
		digestSchedule = DefaultDigestSchedule
	}

	syncSchedule := deps.SyncSchedule
	if syncSchedule == "" {
		syncSchedule = DefaultSyncSchedule
	}

	if err := s.add("digest", digestSchedule, s.runDigests); err != nil {
		return nil, err
	}

	if err := s.add("sync", syncSchedule, s.runSync); err != nil {
		return nil, err
	}

	return s, nil
}

// add registers a job that is skipped while its previous run is still going.
func (s *Scheduler) add(name, spec string, run func(ctx context.Context) error) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("failed to parse %s schedule %q: %w", name, spec, err)
	}

	var running atomic.Bool

	s.cron.Schedule(schedule, cron.FuncJob(func() {
		if !running.CompareAndSwap(false, true) {
			log.Warn().Str("job", name).Msg("previous run still in progress, skipping")
			return
		}
		defer running.Store(false)

		ctx := context.Background()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		started := time.Now()
		if err := run(ctx); err != nil {
			log.Error().Err(err).Str("job", name).Msg("scheduled job failed")
			return
		}

		log.Info().Str("job", name).Dur("took", time.Since(started)).Msg("scheduled job finished")
	}))

	log.Debug().Str("job", name).Str("schedule", spec).Msg("scheduled job registered")

	return nil
}

func (s *Scheduler) runDigests(ctx context.Context) error {
	result, err := s.digests.SendDigests(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("emails_sent", result.EmailsSent).Msg(result.Message)

	return nil
}

func (s *Scheduler) runSync(ctx context.Context) error {
	synced, err := s.sync.SyncAll(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("accounts_synced", synced).Msg("linkedin accounts synced")

	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Entries returns the next run time of every registered job.
func (s *Scheduler) Entries() []time.Time {
	entries := s.cron.Entries()

	next := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		next = append(next, entry.Schedule.Next(time.Now()))
	}

	return next
}
