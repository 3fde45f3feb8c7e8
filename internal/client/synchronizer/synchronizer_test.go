package synchronizer

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstaller struct {
	calls [][2]string
	err   error
}

func (f *fakeInstaller) InstallSession(ctx context.Context, access, refresh string) error {
	f.calls = append(f.calls, [2]string{access, refresh})
	return f.err
}

type harness struct {
	installer *fakeInstaller
	statuses  []string
	navigated []string
	delays    []time.Duration
	fire      chan time.Time
	sync      *Synchronizer
}

func newHarness(installErr error) *harness {
	h := &harness{installer: &fakeInstaller{err: installErr}, fire: make(chan time.Time, 1)}
	h.sync = New(h.installer, time.Second, "/",
		func(ctx context.Context, path string) error {
			h.navigated = append(h.navigated, path)
			return nil
		},
		func(_ Phase, s string) { h.statuses = append(h.statuses, s) },
		nil,
	)
	h.sync.after = func(d time.Duration) <-chan time.Time {
		h.delays = append(h.delays, d)
		return h.fire
	}
	return h
}

func page(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestRun_InstallsOnceAndNavigatesAfterDelay(t *testing.T) {
	h := newHarness(nil)
	h.fire <- time.Now()

	res, err := h.sync.Run(context.Background(), page(t, "http://app/sync#access_token=A&refresh_token=B"))
	require.NoError(t, err)

	assert.Equal(t, Restored, res.Phase)
	assert.Equal(t, [][2]string{{"A", "B"}}, h.installer.calls)
	assert.Equal(t, []time.Duration{time.Second}, h.delays)
	assert.Equal(t, []string{"/"}, h.navigated)
	assert.Equal(t, []string{StatusParsing, StatusRestoring, StatusRestored}, h.statuses)
}

func TestRun_InstallFailureShowsMessageAndStays(t *testing.T) {
	h := newHarness(errors.New("Invalid Refresh Token: Already Used"))

	res, err := h.sync.Run(context.Background(), page(t, "http://app/sync#access_token=A&refresh_token=B"))
	require.NoError(t, err)

	assert.Equal(t, RestoreFailed, res.Phase)
	assert.Equal(t, "Error restoring session: Invalid Refresh Token: Already Used", res.Status)
	assert.ErrorIs(t, res.Err, common.ErrRestoreFailed)
	assert.Len(t, h.installer.calls, 1)
	assert.Empty(t, h.delays)
	assert.Empty(t, h.navigated)
}

func TestRun_EmptyFragment(t *testing.T) {
	h := newHarness(nil)

	res, err := h.sync.Run(context.Background(), page(t, "http://app/sync"))
	require.NoError(t, err)

	assert.Equal(t, MissingToken, res.Phase)
	assert.Equal(t, StatusNoToken, res.Status)
	assert.ErrorIs(t, res.Err, common.ErrMissingToken)
	assert.Empty(t, h.installer.calls)
	assert.Empty(t, h.navigated)
	assert.Equal(t, []string{StatusParsing, StatusNoToken}, h.statuses)
}

func TestRun_MissingOneToken(t *testing.T) {
	for _, raw := range []string{
		"http://app/sync#access_token=A",
		"http://app/sync#refresh_token=B",
		"http://app/sync#access_token=&refresh_token=B",
		"http://app/sync?access_token=A&refresh_token=B#x=1",
	} {
		t.Run(raw, func(t *testing.T) {
			h := newHarness(nil)

			res, err := h.sync.Run(context.Background(), page(t, raw))
			require.NoError(t, err)
			assert.Equal(t, MissingToken, res.Phase)
			assert.Equal(t, StatusMissingToken, res.Status)
			assert.Empty(t, h.installer.calls)
		})
	}
}

func TestRun_CancelDuringDelaySkipsNavigation(t *testing.T) {
	h := newHarness(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := h.sync.Run(ctx, page(t, "http://app/sync#access_token=A&refresh_token=B"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Restored, res.Phase)
	assert.Empty(t, h.navigated)
}

func TestRun_RealTimerHonorsDelay(t *testing.T) {
	var navigatedAt time.Time
	s := New(&fakeInstaller{}, 30*time.Millisecond, "/", func(ctx context.Context, path string) error {
		navigatedAt = time.Now()
		return nil
	}, nil, nil)

	start := time.Now()
	_, err := s.Run(context.Background(), page(t, "http://app/sync#access_token=A&refresh_token=B"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, navigatedAt.Sub(start), 30*time.Millisecond)
}
