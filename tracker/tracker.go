/*
Package tracker keeps statuses of registered dispatches up to date.
*/
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/egorka-gh/cdek/cdek"
	"github.com/egorka-gh/cdek/dto"
	"github.com/go-kit/kit/log"
)

// Dispatch is tracked carrier dispatch.
type Dispatch struct {
	DispatchNumber string `json:"dispatch_number" db:"dispatch_number"`
	OrderNumber    string `json:"order_number" db:"order_number"`
	StatusCode     int    `json:"status_code" db:"status_code"`
	StatusDate     string `json:"status_date" db:"status_date"`
	CityName       string `json:"city_name" db:"city_name"`
	Description    string `json:"description" db:"description"`
	//final status reached, not tracked anymore
	Done bool `json:"done" db:"done"`
}

// Repository stores tracked dispatches.
type Repository interface {
	AddDispatch(ctx context.Context, d Dispatch) error
	//ListPending returns not done dispatches, least recently checked first
	ListPending(ctx context.Context, limit int) ([]Dispatch, error)
	//SetStatus saves status and marks dispatch as checked
	SetStatus(ctx context.Context, d Dispatch) error
	//Touch marks dispatch as checked, status is kept
	Touch(ctx context.Context, dispatchNumber string) error
	LogStatus(ctx context.Context, dispatchNumber string, code int, date, message string) error
	Close()
}

// StatusReporter is the part of carrier service used by tracker.
type StatusReporter interface {
	StatusReport(ctx context.Context, req cdek.StatusReport) (*cdek.Response, error)
}

// ErrBusy is returned by Sync while previous sync is running.
var ErrBusy = errors.New("tracker: sync is running")

// Tracker polls carrier for statuses of pending dispatches.
type Tracker struct {
	client    StatusReporter
	factory   *cdek.StatusReportFactory
	repo      Repository
	logger    log.Logger
	batch     int
	now       func() time.Time
	isSyncing int64

	quitOnce sync.Once
	quit     chan struct{}
}

// New creates tracker, batch limits dispatches per status report.
func New(client StatusReporter, factory *cdek.StatusReportFactory, repo Repository, logger log.Logger, batch int) *Tracker {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if batch <= 0 {
		batch = 100
	}
	return &Tracker{
		client:  client,
		factory: factory,
		repo:    repo,
		logger:  logger,
		batch:   batch,
		now:     time.Now,
		quit:    make(chan struct{}),
	}
}

// Track starts tracking of registered dispatch.
func (t *Tracker) Track(ctx context.Context, orderNumber, dispatchNumber string) error {
	return t.repo.AddDispatch(ctx, Dispatch{
		DispatchNumber: dispatchNumber,
		OrderNumber:    orderNumber,
		StatusCode:     int(cdek.StatusRegistered),
	})
}

// Sync refreshes one batch of pending dispatches, returns count of changed statuses.
// Dispatches rejected by carrier or missing in the answer are touched,
// so the next batch moves on to others.
func (t *Tracker) Sync(ctx context.Context) (int, error) {
	if !atomic.CompareAndSwapInt64(&t.isSyncing, 0, 1) {
		return 0, ErrBusy
	}
	defer atomic.StoreInt64(&t.isSyncing, 0)

	pending, err := t.repo.ListPending(ctx, t.batch)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	byNumber := make(map[string]Dispatch, len(pending))
	q := dto.StatusQuery{}
	for _, d := range pending {
		byNumber[d.DispatchNumber] = d
		q.DispatchNumbers = append(q.DispatchNumbers, d.DispatchNumber)
	}
	req, err := q.Build(t.factory, t.now())
	if err != nil {
		return 0, err
	}
	resp, err := t.client.StatusReport(ctx, req)
	if err != nil {
		return 0, err
	}
	if len(resp.Errors) > 0 {
		return 0, fmt.Errorf("tracker: status report rejected: %s", resp.Errors[0])
	}

	changed := 0
	checked := make(map[string]bool, len(pending))
	for _, o := range resp.Data {
		if o.HasErrors() {
			t.logger.Log("dispatch", o.DispatchNumber, "order", o.Number, "err", o.Errors[0])
			continue
		}
		d, ok := byNumber[o.DispatchNumber]
		if !ok || o.Status == nil {
			continue
		}
		s := o.Status
		if int(s.Code) != d.StatusCode || s.Date != d.StatusDate {
			changed++
			if err := t.repo.LogStatus(ctx, d.DispatchNumber, int(s.Code), s.Date, s.Description); err != nil {
				return changed, err
			}
		}
		d.StatusCode = int(s.Code)
		d.StatusDate = s.Date
		d.CityName = s.CityName
		d.Description = s.Description
		d.Done = s.Code.Final()
		if err := t.repo.SetStatus(ctx, d); err != nil {
			return changed, err
		}
		checked[d.DispatchNumber] = true
	}
	for _, d := range pending {
		if checked[d.DispatchNumber] {
			continue
		}
		if err := t.repo.Touch(ctx, d.DispatchNumber); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// Run syncs every interval until ctx is done or Quit is called.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		n, err := t.Sync(ctx)
		if err != nil && !errors.Is(err, ErrBusy) {
			t.logger.Log("sync", "failed", "err", err)
		} else if n > 0 {
			t.logger.Log("sync", "done", "changed", n)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.quit:
			return nil
		case <-ticker.C:
		}
	}
}

// Quit stops Run.
func (t *Tracker) Quit() {
	t.quitOnce.Do(func() { close(t.quit) })
}
