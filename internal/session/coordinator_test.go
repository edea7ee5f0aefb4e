package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"movie-match/internal/data/entity"
)

type recommenderFunc func(ctx context.Context, genres []entity.MovieGenre) (*entity.Movie, error)

func (f recommenderFunc) Recommend(ctx context.Context, genres []entity.MovieGenre) (*entity.Movie, error) {
	return f(ctx, genres)
}

func staticRecommender(movie *entity.Movie, err error) recommenderFunc {
	return func(context.Context, []entity.MovieGenre) (*entity.Movie, error) {
		return movie, err
	}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeIdentity struct {
	mu       sync.Mutex
	name     string
	subs     map[int]func(string)
	nextSub  int
	canceled int
}

func newFakeIdentity(name string) *fakeIdentity {
	return &fakeIdentity{name: name, subs: make(map[int]func(string))}
}

func (f *fakeIdentity) DisplayName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name
}

func (f *fakeIdentity) Subscribe(fn func(string)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
		f.canceled++
	}
}

func (f *fakeIdentity) set(name string) {
	f.mu.Lock()
	f.name = name
	fns := make([]func(string), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(name)
	}
}

func (f *fakeIdentity) cancels() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canceled
}

func testMovie(id, title string) *entity.Movie {
	return &entity.Movie{ID: id, Title: title}
}

func newTestCoordinator(t *testing.T, rec Recommender) (*Coordinator, *fakeClock) {
	t.Helper()
	c := NewCoordinator(rec, nil, zap.NewNop())
	clock := newFakeClock()
	c.now = clock.Now
	return c, clock
}

func TestSearchSuggestsMovie(t *testing.T) {
	want := testMovie("m-1", "Heat")
	var gotGenres []entity.MovieGenre
	rec := recommenderFunc(func(_ context.Context, genres []entity.MovieGenre) (*entity.Movie, error) {
		gotGenres = genres
		return want, nil
	})

	c, _ := newTestCoordinator(t, rec)
	c.SetGenres([]entity.MovieGenre{entity.GenreAction, entity.GenreThriller})
	c.SetGenreSelectionOpen(true)

	c.Search(context.Background())

	state := c.Snapshot()
	if state.SuggestedMovie == nil || state.SuggestedMovie.Title != "Heat" {
		t.Fatalf("SuggestedMovie = %+v, want Heat", state.SuggestedMovie)
	}
	if !state.ShowMovieConfirmation {
		t.Error("ShowMovieConfirmation = false, want true")
	}
	if state.ShowGenreSelection {
		t.Error("ShowGenreSelection still open after accepted search")
	}
	if state.IsLoading {
		t.Error("IsLoading = true after search finished")
	}
	if state.Toast.Visible {
		t.Errorf("unexpected toast %q", state.Toast.Message)
	}
	if len(gotGenres) != 2 || gotGenres[0] != entity.GenreAction || gotGenres[1] != entity.GenreThriller {
		t.Errorf("recommender got genres %v", gotGenres)
	}
}

func TestSearchWithoutGenres(t *testing.T) {
	var calls int32
	rec := recommenderFunc(func(context.Context, []entity.MovieGenre) (*entity.Movie, error) {
		atomic.AddInt32(&calls, 1)
		return testMovie("m-1", "Heat"), nil
	})

	c, _ := newTestCoordinator(t, rec)
	c.Search(context.Background())

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("recommender called %d times with no genres selected", n)
	}
	state := c.Snapshot()
	if !state.Toast.Visible || state.Toast.Message != ToastSelectGenre {
		t.Errorf("toast = %+v, want %q", state.Toast, ToastSelectGenre)
	}
	if state.IsLoading {
		t.Error("IsLoading = true after rejected search")
	}
}

func TestSearchSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	var once sync.Once
	rec := recommenderFunc(func(context.Context, []entity.MovieGenre) (*entity.Movie, error) {
		atomic.AddInt32(&calls, 1)
		once.Do(func() { close(started) })
		<-release
		return testMovie("m-1", "Heat"), nil
	})

	c, _ := newTestCoordinator(t, rec)
	c.SetGenres([]entity.MovieGenre{entity.GenreDrama})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Search(context.Background())
	}()

	<-started
	if !c.Snapshot().IsLoading {
		t.Fatal("IsLoading = false while recommendation in flight")
	}

	// second call must bounce off the in-flight search
	c.Search(context.Background())
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("recommender called %d times, want 1", n)
	}

	close(release)
	<-done

	state := c.Snapshot()
	if state.SuggestedMovie == nil {
		t.Fatal("first search lost its result")
	}
	if state.Toast.Visible {
		t.Errorf("ignored second search raised toast %q", state.Toast.Message)
	}
}

func TestSearchThrottle(t *testing.T) {
	var calls int32
	rec := recommenderFunc(func(context.Context, []entity.MovieGenre) (*entity.Movie, error) {
		atomic.AddInt32(&calls, 1)
		return testMovie("m-1", "Heat"), nil
	})

	c, clock := newTestCoordinator(t, rec)
	c.SetGenres([]entity.MovieGenre{entity.GenreComedy})

	c.Search(context.Background())
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("first search: %d calls, want 1", n)
	}

	clock.Advance(time.Second)
	c.Search(context.Background())
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("search inside window reached recommender, %d calls", n)
	}
	state := c.Snapshot()
	if !state.Toast.Visible || state.Toast.Message != ToastSlowDown {
		t.Errorf("toast = %+v, want %q", state.Toast, ToastSlowDown)
	}
	if state.IsLoading {
		t.Error("IsLoading = true after throttled search")
	}

	// a rejected attempt must not push the window forward
	clock.Advance(900 * time.Millisecond)
	c.Search(context.Background())
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("search at 1.9s reached recommender, %d calls", n)
	}

	clock.Advance(100 * time.Millisecond)
	c.Search(context.Background())
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("search at exactly 2s: %d calls, want 2", n)
	}
}

func TestSearchFailureToasts(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		toast string
	}{
		{"auth required", ErrAuthRequired, ToastAuthRequired},
		{"wrapped auth required", fmt.Errorf("recommend: %w", ErrAuthRequired), ToastAuthRequired},
		{"no connectivity", ErrNoConnectivity, ToastNoConnection},
		{"timed out", ErrTimedOut, ToastTimedOut},
		{"context deadline", context.DeadlineExceeded, ToastTimedOut},
		{"network", ErrNetwork, ToastNetwork},
		{"unknown", errors.New("boom"), ToastSearchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCoordinator(t, staticRecommender(nil, tt.err))
			c.SetGenres([]entity.MovieGenre{entity.GenreHorror})

			c.Search(context.Background())

			state := c.Snapshot()
			if !state.Toast.Visible || state.Toast.Message != tt.toast {
				t.Errorf("toast = %+v, want %q", state.Toast, tt.toast)
			}
			if state.IsLoading {
				t.Error("IsLoading = true after failed search")
			}
			if state.SuggestedMovie != nil || state.ShowMovieConfirmation {
				t.Error("failed search left a suggestion behind")
			}
		})
	}
}

func TestSearchFailureClearsPreviousSuggestion(t *testing.T) {
	var calls int32
	rec := recommenderFunc(func(context.Context, []entity.MovieGenre) (*entity.Movie, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return testMovie("m-1", "Heat"), nil
		}
		return nil, ErrNetwork
	})

	c, clock := newTestCoordinator(t, rec)
	c.SetGenres([]entity.MovieGenre{entity.GenreAction})

	c.Search(context.Background())
	if c.Snapshot().SuggestedMovie == nil {
		t.Fatal("first search produced no suggestion")
	}

	clock.Advance(searchWindow)
	c.Search(context.Background())

	state := c.Snapshot()
	if state.SuggestedMovie != nil {
		t.Errorf("SuggestedMovie = %+v after failure, want nil", state.SuggestedMovie)
	}
	if state.ShowMovieConfirmation {
		t.Error("ShowMovieConfirmation = true after failure")
	}
}

func TestSearchNilMovie(t *testing.T) {
	c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
	c.SetGenres([]entity.MovieGenre{entity.GenreDrama})

	c.Search(context.Background())

	state := c.Snapshot()
	if !state.Toast.Visible || state.Toast.Message != ToastSearchFailed {
		t.Errorf("toast = %+v, want %q", state.Toast, ToastSearchFailed)
	}
	if state.SuggestedMovie != nil {
		t.Error("nil recommendation stored as suggestion")
	}
}

func TestConfirm(t *testing.T) {
	t.Run("with suggestion", func(t *testing.T) {
		want := testMovie("m-1", "Heat")
		c, _ := newTestCoordinator(t, staticRecommender(want, nil))
		c.SetGenres([]entity.MovieGenre{entity.GenreCrime})
		c.Search(context.Background())

		c.Confirm()

		state := c.Snapshot()
		if state.SelectedMovie == nil || state.SelectedMovie.ID != "m-1" {
			t.Fatalf("SelectedMovie = %+v, want m-1", state.SelectedMovie)
		}
		if state.SuggestedMovie != nil || state.ShowMovieConfirmation {
			t.Error("confirm left transient suggestion state behind")
		}
		if !state.Toast.Visible || state.Toast.Message != ToastEnjoy {
			t.Errorf("toast = %+v, want %q", state.Toast, ToastEnjoy)
		}
	})

	t.Run("without suggestion", func(t *testing.T) {
		c, _ := newTestCoordinator(t, staticRecommender(nil, ErrNetwork))
		c.SetGenreSelectionOpen(true)

		c.Confirm()

		state := c.Snapshot()
		if state.SelectedMovie != nil {
			t.Errorf("SelectedMovie = %+v, want nil", state.SelectedMovie)
		}
		if state.Toast.Visible {
			t.Errorf("unexpected toast %q", state.Toast.Message)
		}
		if state.ShowGenreSelection {
			t.Error("confirm did not clear the genre picker flag")
		}
	})
}

func TestRetrySearch(t *testing.T) {
	var calls int32
	rec := recommenderFunc(func(context.Context, []entity.MovieGenre) (*entity.Movie, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, ErrTimedOut
		}
		return testMovie("m-2", "Ronin"), nil
	})

	c, clock := newTestCoordinator(t, rec)
	c.SetGenres([]entity.MovieGenre{entity.GenreAction})

	c.Search(context.Background())
	if got := c.Snapshot().Toast.Message; got != ToastTimedOut {
		t.Fatalf("first search toast = %q, want %q", got, ToastTimedOut)
	}

	clock.Advance(searchWindow)

	states := make(chan State, 8)
	cancel := c.OnChange(func(s State) { states <- s })
	defer cancel()

	c.RetrySearch(context.Background())

	deadline := time.After(2 * time.Second)
	sawReset := false
	for {
		select {
		case s := <-states:
			if !sawReset {
				if s.SuggestedMovie != nil {
					t.Fatal("retry delivered a suggestion before clearing state")
				}
				sawReset = true
			}
			if s.SuggestedMovie != nil {
				if s.SuggestedMovie.ID != "m-2" {
					t.Fatalf("retry suggested %+v, want m-2", s.SuggestedMovie)
				}
				if n := atomic.LoadInt32(&calls); n != 2 {
					t.Fatalf("recommender called %d times, want 2", n)
				}
				return
			}
		case <-deadline:
			t.Fatal("retry search never delivered a suggestion")
		}
	}
}

func TestSetUserIdentity(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{"single token", "Plato", "Plato"},
		{"first of several", "Ada Lovelace", "Ada"},
		{"surrounding spaces", "  Grace Hopper  ", "Grace"},
		{"empty", "", defaultFirstName},
		{"blank", "   ", defaultFirstName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
			c.SetUserIdentity(tt.display)
			if got := c.Snapshot().FirstName; got != tt.want {
				t.Errorf("FirstName = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("unchanged name does not notify", func(t *testing.T) {
		c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
		var notifies int32
		cancel := c.OnChange(func(State) { atomic.AddInt32(&notifies, 1) })
		defer cancel()

		c.SetUserIdentity("Ada Smith")
		c.SetUserIdentity("Ada Jones")

		if n := atomic.LoadInt32(&notifies); n != 1 {
			t.Errorf("listener notified %d times, want 1", n)
		}
		if got := c.Snapshot().FirstName; got != "Ada" {
			t.Errorf("FirstName = %q, want Ada", got)
		}
	})
}

func TestBindIdentity(t *testing.T) {
	c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
	src := newFakeIdentity("Ada Lovelace")

	c.BindIdentity(src)
	if got := c.Snapshot().FirstName; got != "Ada" {
		t.Fatalf("FirstName = %q after bind, want Ada", got)
	}

	src.set("Grace Hopper")
	if got := c.Snapshot().FirstName; got != "Grace" {
		t.Errorf("FirstName = %q after update, want Grace", got)
	}

	src.set("")
	if got := c.Snapshot().FirstName; got != defaultFirstName {
		t.Errorf("FirstName = %q after clearing, want %q", got, defaultFirstName)
	}
}

func TestInitialize(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
		c.checker = ConfigCheckFunc(func() CheckResult {
			return CheckResult{Valid: true}
		})

		c.Initialize()

		if toast := c.Snapshot().Toast; toast.Visible {
			t.Errorf("unexpected toast %q", toast.Message)
		}
	})

	t.Run("missing keys", func(t *testing.T) {
		c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
		c.checker = ConfigCheckFunc(func() CheckResult {
			return CheckResult{MissingKeys: []string{"RECOMMEND_API_KEY"}}
		})

		c.Initialize()

		state := c.Snapshot()
		if !state.Toast.Visible || state.Toast.Message != ToastMissingConfig {
			t.Errorf("toast = %+v, want %q", state.Toast, ToastMissingConfig)
		}
	})

	t.Run("nil checker", func(t *testing.T) {
		c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
		c.Initialize()
		if toast := c.Snapshot().Toast; toast.Visible {
			t.Errorf("unexpected toast %q", toast.Message)
		}
	})

	t.Run("clears transient state", func(t *testing.T) {
		c, _ := newTestCoordinator(t, staticRecommender(testMovie("m-1", "Heat"), nil))
		c.SetGenres([]entity.MovieGenre{entity.GenreAction})
		c.Search(context.Background())
		if c.Snapshot().SuggestedMovie == nil {
			t.Fatal("search produced no suggestion")
		}

		c.Initialize()

		state := c.Snapshot()
		if state.SuggestedMovie != nil || state.ShowMovieConfirmation || state.ShowGenreSelection {
			t.Errorf("transient state survived Initialize: %+v", state)
		}
	})
}

func TestSetGenresDropsDuplicates(t *testing.T) {
	c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
	c.SetGenres([]entity.MovieGenre{
		entity.GenreAction, entity.GenreDrama, entity.GenreAction, entity.GenreDrama,
	})

	got := c.Snapshot().SelectedGenres
	want := []entity.MovieGenre{entity.GenreAction, entity.GenreDrama}
	if len(got) != len(want) {
		t.Fatalf("SelectedGenres = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SelectedGenres = %v, want %v", got, want)
		}
	}
}

func TestDismissToast(t *testing.T) {
	c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
	c.Search(context.Background()) // no genres selected, raises a toast

	if !c.Snapshot().Toast.Visible {
		t.Fatal("expected a toast to dismiss")
	}
	c.DismissToast()
	if toast := c.Snapshot().Toast; toast.Visible || toast.Message != "" {
		t.Errorf("toast = %+v after dismiss", toast)
	}
}

func TestOnChange(t *testing.T) {
	c, _ := newTestCoordinator(t, staticRecommender(nil, nil))

	var first, second int32
	cancelFirst := c.OnChange(func(State) { atomic.AddInt32(&first, 1) })
	cancelSecond := c.OnChange(func(State) { atomic.AddInt32(&second, 1) })
	defer cancelSecond()

	c.SetGenreSelectionOpen(true)
	if atomic.LoadInt32(&first) != 1 || atomic.LoadInt32(&second) != 1 {
		t.Fatalf("listeners saw %d/%d notifications, want 1/1",
			atomic.LoadInt32(&first), atomic.LoadInt32(&second))
	}

	cancelFirst()
	c.SetGenreSelectionOpen(false)
	if n := atomic.LoadInt32(&first); n != 1 {
		t.Errorf("canceled listener notified %d times, want 1", n)
	}
	if n := atomic.LoadInt32(&second); n != 2 {
		t.Errorf("remaining listener notified %d times, want 2", n)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
	c.SetGenres([]entity.MovieGenre{entity.GenreAction, entity.GenreDrama})

	snap := c.Snapshot()
	snap.SelectedGenres[0] = entity.GenreWestern

	if got := c.Snapshot().SelectedGenres[0]; got != entity.GenreAction {
		t.Errorf("mutating a snapshot changed coordinator state: %v", got)
	}
}

func TestClose(t *testing.T) {
	t.Run("operations become no-ops", func(t *testing.T) {
		var calls int32
		rec := recommenderFunc(func(context.Context, []entity.MovieGenre) (*entity.Movie, error) {
			atomic.AddInt32(&calls, 1)
			return testMovie("m-1", "Heat"), nil
		})
		c, _ := newTestCoordinator(t, rec)
		c.SetGenres([]entity.MovieGenre{entity.GenreAction})

		c.Close()

		c.Search(context.Background())
		if n := atomic.LoadInt32(&calls); n != 0 {
			t.Errorf("recommender called %d times after Close", n)
		}
		c.SetUserIdentity("Ada Lovelace")
		if got := c.Snapshot().FirstName; got != "" {
			t.Errorf("FirstName = %q mutated after Close", got)
		}
	})

	t.Run("detaches identity subscription", func(t *testing.T) {
		c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
		src := newFakeIdentity("Ada Lovelace")
		c.BindIdentity(src)

		c.Close()

		if n := src.cancels(); n != 1 {
			t.Fatalf("identity subscription canceled %d times, want 1", n)
		}
		src.set("Grace Hopper")
		if got := c.Snapshot().FirstName; got != "Ada" {
			t.Errorf("FirstName = %q, closed coordinator still following identity", got)
		}
	})

	t.Run("in-flight result is dropped", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		rec := recommenderFunc(func(context.Context, []entity.MovieGenre) (*entity.Movie, error) {
			close(started)
			<-release
			return testMovie("m-1", "Heat"), nil
		})
		c, _ := newTestCoordinator(t, rec)
		c.SetGenres([]entity.MovieGenre{entity.GenreAction})

		var notified int32
		c.OnChange(func(s State) {
			if s.SuggestedMovie != nil {
				atomic.AddInt32(&notified, 1)
			}
		})

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Search(context.Background())
		}()

		<-started
		c.Close()
		close(release)
		<-done

		if got := c.Snapshot().SuggestedMovie; got != nil {
			t.Errorf("SuggestedMovie = %+v stored after Close", got)
		}
		if n := atomic.LoadInt32(&notified); n != 0 {
			t.Errorf("listener saw %d suggestion notifications after Close", n)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		c, _ := newTestCoordinator(t, staticRecommender(nil, nil))
		c.Close()
		c.Close()

		if cancel := c.OnChange(func(State) {}); cancel == nil {
			t.Fatal("OnChange on closed coordinator returned nil cancel")
		} else {
			cancel()
		}
	})
}

func TestClassifySearchError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		toast   string
		outcome string
	}{
		{"auth", ErrAuthRequired, ToastAuthRequired, "auth_required"},
		{"connectivity", ErrNoConnectivity, ToastNoConnection, "no_connectivity"},
		{"timeout sentinel", ErrTimedOut, ToastTimedOut, "timed_out"},
		{"deadline exceeded", context.DeadlineExceeded, ToastTimedOut, "timed_out"},
		{"network sentinel", ErrNetwork, ToastNetwork, "network"},
		{"net timeout", &timeoutNetError{timeout: true}, ToastTimedOut, "timed_out"},
		{"net other", &timeoutNetError{timeout: false}, ToastNetwork, "network"},
		{"opaque", errors.New("boom"), ToastSearchFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toast, outcome := classifySearchError(tt.err)
			if toast != tt.toast {
				t.Errorf("toast = %q, want %q", toast, tt.toast)
			}
			if outcome != tt.outcome {
				t.Errorf("outcome = %q, want %q", outcome, tt.outcome)
			}
		})
	}
}

type timeoutNetError struct{ timeout bool }

func (e *timeoutNetError) Error() string   { return "net error" }
func (e *timeoutNetError) Timeout() bool   { return e.timeout }
func (e *timeoutNetError) Temporary() bool { return false }
