package future

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopSource_RequestStopIsMonotonic(t *testing.T) {
	t.Parallel()

	s := NewStopSource()
	assert.True(t, s.RequestStop())
	assert.False(t, s.RequestStop())
	assert.True(t, s.StopRequested())
}

func TestStopSource_CallbacksRunInOrder(t *testing.T) {
	t.Parallel()

	s := NewStopSource()
	var order []int
	tok := s.Token()
	tok.OnStop(func() { order = append(order, 1) })
	tok.OnStop(func() { order = append(order, 2) })

	s.RequestStop()
	assert.Equal(t, []int{1, 2}, order)
}

func TestStopSource_CallbackRegisteredAfterStopFiresImmediately(t *testing.T) {
	t.Parallel()

	s := NewStopSource()
	s.RequestStop()

	var fired bool
	s.Token().OnStop(func() { fired = true })
	assert.True(t, fired)
}

func TestStopSource_StopRequestedNeverTrueWhileCallbackRunning(t *testing.T) {
	t.Parallel()

	s := NewStopSource()
	callbackStarted := make(chan struct{})
	releaseCallback := make(chan struct{})
	s.Token().OnStop(func() {
		close(callbackStarted)
		<-releaseCallback
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.RequestStop()
	}()

	<-callbackStarted
	// The callback is blocked inside RequestStop; no observer may see
	// stop_requested() == true yet.
	assert.False(t, s.StopRequested())
	close(releaseCallback)
	wg.Wait()
	assert.True(t, s.StopRequested())
}

func TestStopSource_NilDeregisteredCallbackSkippedSafely(t *testing.T) {
	t.Parallel()

	s := NewStopSource()
	deregister := s.Token().OnStop(func() { t.Fatal("deregistered callback must not run") })
	deregister()

	var ran bool
	s.Token().OnStop(func() { ran = true })

	assert.NotPanics(t, func() { s.RequestStop() })
	assert.True(t, ran)
}

func TestStopToken_ZeroValueNeverCancellable(t *testing.T) {
	t.Parallel()

	var tok StopToken
	assert.False(t, tok.Stoppable())
	assert.False(t, tok.StopRequested())

	var fired bool
	tok.OnStop(func() { fired = true })
	assert.False(t, fired)
}
