package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls atomic.Int32
	code  atomic.Value
	err   error
}

func (f *fakeSource) LastUnknownCode(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	s, _ := f.code.Load().(string)
	return s, nil
}

type field struct {
	mu    sync.Mutex
	value string
}

func (f *field) Empty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value == ""
}

func (f *field) Fill(code string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.value != "" {
		return false
	}
	f.value = code
	return true
}

func (f *field) set(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

func (f *field) get() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

const interval = 10 * time.Millisecond

func TestPoller_PollsWhileEmpty(t *testing.T) {
	src := &fakeSource{}
	dst := &field{}
	p := New(src, dst, interval, nil)

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return src.calls.Load() >= 3 }, time.Second, interval)
	assert.Empty(t, dst.get())
}

func TestPoller_FillsAndStopsPolling(t *testing.T) {
	src := &fakeSource{}
	src.code.Store("AB12")
	dst := &field{}
	p := New(src, dst, interval, nil)

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return dst.get() == "AB12" }, time.Second, interval)

	calls := src.calls.Load()
	time.Sleep(5 * interval)
	assert.Equal(t, calls, src.calls.Load())
}

func TestPoller_SkipsWhenUserTyped(t *testing.T) {
	src := &fakeSource{}
	src.code.Store("FFEE")
	dst := &field{}
	dst.set("typed")
	p := New(src, dst, interval, nil)

	p.Start(context.Background())
	time.Sleep(5 * interval)
	p.Stop()

	assert.Zero(t, src.calls.Load())
	assert.Equal(t, "typed", dst.get())
}

func TestPoller_StopHaltsPolls(t *testing.T) {
	src := &fakeSource{}
	p := New(src, &field{}, interval, nil)

	p.Start(context.Background())
	require.Eventually(t, func() bool { return src.calls.Load() >= 1 }, time.Second, interval)
	p.Stop()
	assert.False(t, p.Running())

	calls := src.calls.Load()
	time.Sleep(5 * interval)
	assert.Equal(t, calls, src.calls.Load())

	p.Stop()
}

func TestPoller_ErrorsAreIgnored(t *testing.T) {
	src := &fakeSource{err: errors.New("server unavailable")}
	p := New(src, &field{}, interval, nil)

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return src.calls.Load() >= 2 }, time.Second, interval)
}

func TestPoller_StartTwiceRunsOneLoop(t *testing.T) {
	p := New(&fakeSource{}, &field{}, interval, nil)
	p.Start(context.Background())
	first := p.done
	p.Start(context.Background())
	assert.Equal(t, first, p.done)
	p.Stop()
}

func TestPoller_ParentContextCancel(t *testing.T) {
	src := &fakeSource{}
	ctx, cancel := context.WithCancel(context.Background())
	p := New(src, &field{}, interval, nil)
	p.Start(ctx)
	cancel()

	time.Sleep(3 * interval)
	calls := src.calls.Load()
	time.Sleep(5 * interval)
	assert.Equal(t, calls, src.calls.Load())
	p.Stop()
}
