// workers/snapshot_worker.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game-catalog/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Snapshot is a point-in-time copy of the catalog, in store order.
type Snapshot struct {
	TakenAt time.Time
	Games   []models.Game
}

// Sink receives catalog snapshots. Sinks are write-only: nothing is ever
// read back into the store.
type Sink interface {
	Name() string
	Write(ctx context.Context, snap Snapshot) error
}

// Catalog is the part of the game store the worker reads.
type Catalog interface {
	Snapshot() []models.Game
}

type SnapshotWorker struct {
	catalog Catalog
	sinks   []Sink
	log     *logrus.Logger
	timeout time.Duration
	now     func() time.Time

	sched gocron.Scheduler
}

func NewSnapshotWorker(catalog Catalog, logger *logrus.Logger, sinks ...Sink) *SnapshotWorker {
	return &SnapshotWorker{
		catalog: catalog,
		sinks:   sinks,
		log:     logger,
		timeout: time.Minute,
		now:     time.Now,
	}
}

// RunOnce copies the catalog and writes it to every sink. A failing sink
// is logged and does not stop the others.
func (w *SnapshotWorker) RunOnce(ctx context.Context) error {
	snap := Snapshot{TakenAt: w.now().UTC(), Games: w.catalog.Snapshot()}

	var errs []error
	for _, sink := range w.sinks {
		entry := w.log.WithFields(logrus.Fields{"sink": sink.Name(), "games": len(snap.Games)})
		if err := sink.Write(ctx, snap); err != nil {
			entry.WithError(err).Error("[Snapshot] write failed")
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		entry.Debug("[Snapshot] written")
	}
	return errors.Join(errs...)
}

// Start runs RunOnce every interval until Stop.
func (w *SnapshotWorker) Start(interval time.Duration) error {
	if len(w.sinks) == 0 {
		return errors.New("snapshot worker has no sinks")
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
			defer cancel()
			_ = w.RunOnce(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("failed to schedule snapshot job: %w", err)
	}

	sched.Start()
	w.sched = sched
	w.log.WithField("interval", interval).Info("[Snapshot] scheduler started")
	return nil
}

func (w *SnapshotWorker) Stop() error {
	if w.sched == nil {
		return nil
	}
	err := w.sched.Shutdown()
	w.sched = nil
	return err
}
