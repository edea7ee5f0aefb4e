// Package session implements the per-client search session: the state the
// picker screen renders, the guarded asynchronous search, and the
// confirmation flow. One Coordinator serves one client session; the HTTP
// layer never touches State directly, it goes through the operations here.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"movie-match/internal/data/entity"
	"movie-match/pkg/metrics"
)

// searchWindow is the minimum wall-clock gap between two accepted
// searches. The timestamp only moves on accepted attempts, so hammering
// the button keeps rejecting until the window has passed since the last
// accepted one.
const searchWindow = 2 * time.Second

// defaultFirstName greets users that never set a display name.
const defaultFirstName = "Guest"

// Recommender is the external recommendation collaborator. It either
// returns a movie or an error wrapped with one of the contract sentinels
// in errors.go; it is never called with an empty genre list.
type Recommender interface {
	Recommend(ctx context.Context, genres []entity.MovieGenre) (*entity.Movie, error)
}

// CheckResult reports whether the app configuration has everything the
// recommendation flow needs.
type CheckResult struct {
	Valid       bool
	MissingKeys []string
}

// ConfigChecker validates the configuration on session start. Missing
// settings are a warning toast, never a hard failure.
type ConfigChecker interface {
	Check() CheckResult
}

// ConfigCheckFunc adapts a plain function to ConfigChecker.
type ConfigCheckFunc func() CheckResult

func (f ConfigCheckFunc) Check() CheckResult { return f() }

// IdentitySource exposes the current display name and change
// notifications for it. Subscribe must not hold internal locks while
// calling fn.
type IdentitySource interface {
	DisplayName() string
	Subscribe(fn func(displayName string)) (cancel func())
}

// Coordinator owns the state of one search session. A single mutex
// serializes every mutation; the only long operation, the recommendation
// call, runs outside the lock with IsLoading keeping further searches out.
// Listeners registered through OnChange get a state snapshot after every
// mutation, after the lock is released.
type Coordinator struct {
	recommender Recommender
	checker     ConfigChecker
	log         *zap.Logger
	now         func() time.Time

	mu             sync.Mutex
	state          State
	lastSearchAt   time.Time
	listeners      map[int]func(State)
	nextListener   int
	detachIdentity func()
	closed         bool
}

// NewCoordinator wires a coordinator to its collaborators. The checker may
// be nil when nobody validates configuration (tests mostly).
func NewCoordinator(recommender Recommender, checker ConfigChecker, log *zap.Logger) *Coordinator {
	return &Coordinator{
		recommender: recommender,
		checker:     checker,
		log:         log.With(zap.String("service", "coordinator")),
		now:         time.Now,
		listeners:   make(map[int]func(State)),
	}
}

// Initialize resets the transient screen state and validates the
// configuration. Missing settings surface as a toast and nothing else;
// the session keeps working and the search path reports the real failure
// if it comes to that.
func (c *Coordinator) Initialize() {
	var result CheckResult
	if c.checker != nil {
		result = c.checker.Check()
	} else {
		result = CheckResult{Valid: true}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.resetTransientLocked()
	c.state.IsLoading = false

	if !result.Valid {
		c.log.Warn("configuration incomplete",
			zap.Strings("missing_keys", result.MissingKeys),
		)
		c.state.Toast = Toast{Message: ToastMissingConfig, Visible: true}
	}

	c.unlockAndNotify()
}

// BindIdentity applies the source's current display name and re-applies it
// on every change. The subscription lives until Close.
func (c *Coordinator) BindIdentity(src IdentitySource) {
	c.SetUserIdentity(src.DisplayName())

	cancel := src.Subscribe(func(displayName string) {
		c.SetUserIdentity(displayName)
	})

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return
	}
	prev := c.detachIdentity
	c.detachIdentity = cancel
	c.mu.Unlock()

	if prev != nil {
		prev()
	}
}

// SetUserIdentity derives the greeting name: empty input falls back to the
// default label, everything else keeps the part before the first space.
func (c *Coordinator) SetUserIdentity(displayName string) {
	first := firstNameFrom(displayName)

	c.mu.Lock()
	if c.closed || c.state.FirstName == first {
		c.mu.Unlock()
		return
	}
	c.state.FirstName = first
	c.unlockAndNotify()
}

// SetGenres replaces the selection with the set the picker reports. Order
// is kept, duplicates are dropped.
func (c *Coordinator) SetGenres(genres []entity.MovieGenre) {
	unique := make([]entity.MovieGenre, 0, len(genres))
	seen := make(map[entity.MovieGenre]bool, len(genres))
	for _, g := range genres {
		if seen[g] {
			continue
		}
		seen[g] = true
		unique = append(unique, g)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.SelectedGenres = unique
	c.unlockAndNotify()
}

// SetGenreSelectionOpen drives the genre picker overlay flag. The client
// opens it; Initialize and an accepted Search close it.
func (c *Coordinator) SetGenreSelectionOpen(open bool) {
	c.mu.Lock()
	if c.closed || c.state.ShowGenreSelection == open {
		c.mu.Unlock()
		return
	}
	c.state.ShowGenreSelection = open
	c.unlockAndNotify()
}

// DismissToast hides the current toast.
func (c *Coordinator) DismissToast() {
	c.mu.Lock()
	if c.closed || !c.state.Toast.Visible {
		c.mu.Unlock()
		return
	}
	c.state.Toast = Toast{}
	c.unlockAndNotify()
}

// Search runs the guarded recommendation flow. It blocks until the
// collaborator answers; failures never escape, they become toasts and a
// clean transient reset. Guards, in order: a search already in flight is a
// silent no-op; an empty selection is a toast; a call inside the throttle
// window is a toast and does not move the window.
func (c *Coordinator) Search(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if c.state.IsLoading {
		c.log.Debug("search ignored, one already in flight")
		metrics.SearchesTotal.WithLabelValues("busy").Inc()
		c.mu.Unlock()
		return
	}

	if len(c.state.SelectedGenres) == 0 {
		metrics.SearchesTotal.WithLabelValues("no_genres").Inc()
		c.state.Toast = Toast{Message: ToastSelectGenre, Visible: true}
		c.unlockAndNotify()
		return
	}

	now := c.now()
	if elapsed := now.Sub(c.lastSearchAt); elapsed < searchWindow {
		c.log.Debug("search throttled", zap.Duration("since_last", elapsed))
		metrics.SearchesTotal.WithLabelValues("throttled").Inc()
		c.state.Toast = Toast{Message: ToastSlowDown, Visible: true}
		c.state.IsLoading = false
		c.unlockAndNotify()
		return
	}

	c.lastSearchAt = now
	c.state.IsLoading = true
	c.state.ShowGenreSelection = false
	genres := make([]entity.MovieGenre, len(c.state.SelectedGenres))
	copy(genres, c.state.SelectedGenres)
	c.unlockAndNotify()

	movie, err := c.recommender.Recommend(ctx, genres)
	if err == nil && movie == nil {
		err = errors.New("recommender returned no movie")
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if err != nil {
		toast, outcome := classifySearchError(err)
		c.log.Warn("recommendation failed",
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		metrics.SearchesTotal.WithLabelValues(outcome).Inc()
		c.state.Toast = Toast{Message: toast, Visible: true}
		c.resetTransientLocked()
	} else {
		c.log.Info("movie suggested",
			zap.String("movie_id", movie.ID),
			zap.String("title", movie.Title),
		)
		metrics.SearchesTotal.WithLabelValues("success").Inc()
		c.state.SuggestedMovie = movie
		c.state.ShowMovieConfirmation = true
	}

	c.state.IsLoading = false
	c.unlockAndNotify()
}

// Confirm promotes the suggestion to the selected movie. With nothing
// suggested it still clears the transient screen state so the client
// lands back on the picker.
func (c *Coordinator) Confirm() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if movie := c.state.SuggestedMovie; movie != nil {
		c.log.Info("movie confirmed",
			zap.String("movie_id", movie.ID),
			zap.String("title", movie.Title),
		)
		c.state.SelectedMovie = movie
		c.state.Toast = Toast{Message: ToastEnjoy, Visible: true}
	}

	c.resetTransientLocked()
	c.unlockAndNotify()
}

// RetrySearch clears the transient state and kicks off a fresh Search in
// the background. The search is detached from the caller's context so an
// ended HTTP request does not cancel it; every Search guard still applies,
// so a retry inside the throttle window is rejected like any other call.
func (c *Coordinator) RetrySearch(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.resetTransientLocked()
	c.unlockAndNotify()

	go c.Search(context.WithoutCancel(ctx))
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// OnChange registers a listener that receives a snapshot after every
// mutation. Listeners run outside the coordinator lock, in no particular
// order. The returned cancel removes the listener.
func (c *Coordinator) OnChange(fn func(State)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return func() {}
	}

	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Close detaches the identity subscription and drops all listeners. Every
// operation afterwards is a no-op; a search already in flight discards its
// result.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	detach := c.detachIdentity
	c.detachIdentity = nil
	c.listeners = nil
	c.mu.Unlock()

	if detach != nil {
		detach()
	}
	c.log.Debug("session coordinator closed")
}

// resetTransientLocked clears the per-search screen state: the pending
// suggestion and both overlay flags. Callers hold c.mu.
func (c *Coordinator) resetTransientLocked() {
	c.state.SuggestedMovie = nil
	c.state.ShowMovieConfirmation = false
	c.state.ShowGenreSelection = false
}

// unlockAndNotify snapshots the state, releases the lock and fans the
// snapshot out to the listeners. Callers hold c.mu and must not touch the
// coordinator afterwards.
func (c *Coordinator) unlockAndNotify() {
	snap := c.state.clone()
	fns := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// firstNameFrom keeps the token before the first space, or falls back to
// the default label for an empty name.
func firstNameFrom(displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return defaultFirstName
	}
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}
