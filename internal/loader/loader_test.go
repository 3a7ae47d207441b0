package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/normalize"
	"github.com/octofit/dashboard/pkg/client"
)

type stubFetcher struct {
	resp  *client.Response
	err   error
	calls int
}

func (f *stubFetcher) Get(ctx context.Context, path string) (*client.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *recordingObserver) Observe(_ context.Context, ev Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *recordingObserver) phases() []models.Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.Phase, len(o.events))
	for i, ev := range o.events {
		out[i] = ev.Phase
	}
	return out
}

func ok(body string) *stubFetcher {
	return &stubFetcher{resp: &client.Response{URL: "http://api/x/", StatusCode: http.StatusOK, Body: []byte(body)}}
}

func TestLoadSuccessTransitions(t *testing.T) {
	obs := &recordingObserver{}
	var seen []models.Phase
	l := New(ok(`{"results":[{"id":1,"user":"a","total_points":5}]}`),
		WithResource("leaderboard"),
		WithObserver(obs),
		WithListener(func(s models.LoadState) { seen = append(seen, s.Phase) }),
	)
	require.Equal(t, models.PhaseIdle, l.State().Phase)

	state, err := l.Load(context.Background(), "/api/leaderboard/")
	require.NoError(t, err)
	require.Equal(t, models.PhaseSuccess, state.Phase)
	require.Len(t, state.Records, 1)

	rec := models.AsRecord(state.Records[0])
	require.Equal(t, json.Number("5"), rec["total_points"])

	require.Equal(t, []models.Phase{models.PhaseLoading, models.PhaseSuccess}, seen)
	require.Equal(t, []models.Phase{models.PhaseLoading, models.PhaseSuccess}, obs.phases())
	require.Equal(t, normalize.ShapeEnvelope, obs.events[1].Shape)
	require.Equal(t, "leaderboard", obs.events[1].Resource)
	require.NotEmpty(t, obs.events[0].LoadID)
	require.Equal(t, obs.events[0].LoadID, obs.events[1].LoadID)
}

func TestLoadEmptyArrayIsSuccess(t *testing.T) {
	state, err := New(ok(`[]`)).Load(context.Background(), "/api/activities/")
	require.NoError(t, err)
	require.Equal(t, models.PhaseSuccess, state.Phase)
	require.NotNil(t, state.Records)
	require.Empty(t, state.Records)
}

func TestLoadUnrecognizedShapeIsEmptySuccess(t *testing.T) {
	obs := &recordingObserver{}
	state, err := New(ok(`{"detail":"nope"}`), WithObserver(obs)).Load(context.Background(), "/api/teams/")
	require.NoError(t, err)
	require.Equal(t, models.PhaseSuccess, state.Phase)
	require.Empty(t, state.Records)

	last := obs.events[len(obs.events)-1]
	require.Equal(t, normalize.ShapeUnrecognized, last.Shape)
	require.Equal(t, "object with keys [detail]", last.Detail)
	require.Equal(t, slog.LevelWarn, last.Level())
}

func TestLoadHTTPStatusError(t *testing.T) {
	f := &stubFetcher{resp: &client.Response{StatusCode: http.StatusInternalServerError, Body: []byte(`[]`)}}
	state, err := New(f).Load(context.Background(), "/api/users/")
	require.NoError(t, err)
	require.Equal(t, models.PhaseError, state.Phase)
	require.Contains(t, state.Message(), "500")
	require.Nil(t, state.Records)

	var statusErr *HTTPStatusError
	require.True(t, errors.As(state.Err, &statusErr))
	require.Equal(t, "http_status", Kind(state.Err))
}

func TestLoadParseError(t *testing.T) {
	for _, body := range []string{`{"results": [`, ``, `<html></html>`, `[] []`} {
		state, err := New(ok(body)).Load(context.Background(), "/api/users/")
		require.NoError(t, err)
		require.Equal(t, models.PhaseError, state.Phase, body)

		var parseErr *ParseError
		require.True(t, errors.As(state.Err, &parseErr), body)
		require.Contains(t, state.Message(), "invalid JSON response", body)
	}
}

func TestLoadNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	state, err := New(&stubFetcher{err: cause}).Load(context.Background(), "/api/users/")
	require.NoError(t, err)
	require.Equal(t, models.PhaseError, state.Phase)
	require.ErrorIs(t, state.Err, cause)
	require.Equal(t, "dial tcp: connection refused", state.Message())
	require.Equal(t, "network", Kind(state.Err))
}

func TestLoadIsSingleShot(t *testing.T) {
	f := ok(`[]`)
	l := New(f)

	_, err := l.Load(context.Background(), "/api/users/")
	require.NoError(t, err)

	state, err := l.Load(context.Background(), "/api/users/")
	require.ErrorIs(t, err, ErrAlreadyStarted)
	require.Equal(t, models.PhaseSuccess, state.Phase)
	require.Equal(t, 1, f.calls)
}

func TestLoadDiscardsResultAfterCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()
	defer close(release)

	obs := &recordingObserver{}
	var changes int
	l := New(client.NewClient(srv.URL, ""),
		WithObserver(obs),
		WithListener(func(models.LoadState) { changes++ }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.Load(ctx, "/api/users/")
		done <- err
	}()

	require.Eventually(t, func() bool {
		return l.State().Phase == models.PhaseLoading
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrDiscarded)
	case <-time.After(2 * time.Second):
		t.Fatal("load did not return after cancel")
	}

	require.Equal(t, models.PhaseLoading, l.State().Phase)
	require.Equal(t, 1, changes)
	require.True(t, obs.events[len(obs.events)-1].Discarded)
}

func TestLoadAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Red"},{"id":2,"name":"Blue"}]`))
	}))
	defer srv.Close()

	state, err := New(client.NewClient(srv.URL, "")).Load(context.Background(), "/api/teams/")
	require.NoError(t, err)
	require.Equal(t, 2, state.Len())
}

func TestLogObserverLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogObserver(logger)

	obs.Observe(context.Background(), Event{LoadID: "l1", Resource: "users", Phase: models.PhaseError,
		StatusCode: 500, Err: &HTTPStatusError{StatusCode: 500}})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "ERROR", line["level"])
	require.Equal(t, "resource load error", line["msg"])
	require.Equal(t, "http_status", line["error_kind"])
	require.EqualValues(t, 500, line["status"])
}
