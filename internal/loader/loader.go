package loader

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

// Fetcher loads the combined portfolio data
type Fetcher interface {
	FetchAll(ctx context.Context) (*models.Portfolio, error)
}

// Options configures a Loader
type Options struct {
	// AutoFetch starts a load as soon as Start is called
	AutoFetch bool
	OnSuccess func(*models.Portfolio)
	OnError   func(error)
}

// Loader tracks the lifecycle of portfolio loads for its consumers. Only the
// most recently issued load may change the published state.
type Loader struct {
	fetcher Fetcher
	opts    Options
	logger  *logrus.Logger
	group   singleflight.Group
	now     func() time.Time

	mu     sync.RWMutex
	status models.LoadStatus
	active string // flight key of the load that may still publish, empty when none
}

// New creates a loader. The initial state is loading when AutoFetch is set
// and idle otherwise.
func New(fetcher Fetcher, logger *logrus.Logger, opts Options) *Loader {
	state := models.StateIdle
	if opts.AutoFetch {
		state = models.StateLoading
	}
	return &Loader{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		status:  models.LoadStatus{State: state},
	}
}

// Start performs the initial load in the background when AutoFetch is set
func (l *Loader) Start(ctx context.Context) {
	if !l.opts.AutoFetch {
		return
	}
	go func() {
		if _, err := l.Refetch(ctx); err != nil {
			l.logger.WithError(err).Warn("Initial portfolio load failed")
		}
	}()
}

// Snapshot returns a copy of the current state
func (l *Loader) Snapshot() models.LoadStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.copyStatus()
}

// Refetch loads the portfolio, joining a load that is already in flight
func (l *Loader) Refetch(ctx context.Context) (models.LoadStatus, error) {
	return l.load(ctx, false)
}

// ForceRefetch starts a new load even if one is in flight. The older load's
// result is discarded when it arrives.
func (l *Loader) ForceRefetch(ctx context.Context) (models.LoadStatus, error) {
	return l.load(ctx, true)
}

func (l *Loader) load(ctx context.Context, force bool) (models.LoadStatus, error) {
	key, generation := l.begin(force)

	// the load outlives a caller that gives up waiting
	flightCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (interface{}, error) {
		if settled, status := l.settled(key); settled {
			// superseded, or already published before this flight started
			return status, nil
		}
		portfolio, err := l.fetcher.FetchAll(flightCtx)
		return l.finish(generation, portfolio, err), err
	})

	select {
	case res := <-ch:
		return res.Val.(models.LoadStatus), res.Err
	case <-ctx.Done():
		return l.Snapshot(), ctx.Err()
	}
}

// begin returns the flight to wait on. Unless force is set, a load already
// in flight is joined; otherwise a new generation is issued before any
// goroutine starts, so issue order decides which result is published.
func (l *Loader) begin(force bool) (string, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !force && l.active != "" {
		return l.active, l.status.Generation
	}

	l.status.Generation++
	l.status.State = models.StateLoading
	l.status.Error = ""
	l.active = "portfolio:" + strconv.FormatUint(l.status.Generation, 10)
	return l.active, l.status.Generation
}

// settled reports whether the load behind key is no longer the active one
func (l *Loader) settled(key string) (bool, models.LoadStatus) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.active == key {
		return false, models.LoadStatus{}
	}
	return true, l.copyStatus()
}

func (l *Loader) finish(generation uint64, portfolio *models.Portfolio, err error) models.LoadStatus {
	l.mu.Lock()
	if generation != l.status.Generation {
		status := l.copyStatus()
		l.mu.Unlock()
		l.logger.WithFields(logrus.Fields{
			"generation": generation,
			"current":    status.Generation,
		}).Debug("Discarding result of superseded portfolio load")
		return status
	}

	l.active = ""
	if err != nil {
		l.status.State = models.StateError
		l.status.Error = err.Error()
	} else {
		l.status.State = models.StateSuccess
		l.status.User = portfolio.User
		l.status.Repos = portfolio.Repos
		l.status.Stats = portfolio.Stats
		l.status.LastSuccess = l.now()
	}
	status := l.copyStatus()
	l.mu.Unlock()

	if err != nil {
		l.logger.WithError(err).WithField("generation", generation).Error("Portfolio load failed")
		if l.opts.OnError != nil {
			l.opts.OnError(err)
		}
		return status
	}

	l.logger.WithFields(logrus.Fields{
		"generation": generation,
		"repos":      len(portfolio.Repos),
	}).Info("Portfolio loaded")
	if l.opts.OnSuccess != nil {
		l.opts.OnSuccess(portfolio)
	}
	return status
}

// copyStatus must be called with l.mu held
func (l *Loader) copyStatus() models.LoadStatus {
	status := l.status
	if l.status.User != nil {
		user := *l.status.User
		status.User = &user
	}
	if l.status.Repos != nil {
		status.Repos = append([]models.Repository(nil), l.status.Repos...)
	}
	if l.status.Stats.MostUsedLanguages != nil {
		status.Stats.MostUsedLanguages = append([]models.LanguageStat(nil), l.status.Stats.MostUsedLanguages...)
	}
	return status
}
