package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"all", "check", "state", "log", "downtime", "comment", "command", "program"} {
		tr, err := r.Find(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, tr.Name())
	}

	_, err := r.Find("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(),
		"unknown trigger 'bogus', allowed: all, check, state, log, downtime, comment, command, program")
}

func TestWaitForTimesOut(t *testing.T) {
	r := NewRegistry()
	tr, _ := r.Find("check")
	start := time.Now()
	assert.False(t, tr.WaitFor(10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestNotifyWakesWaiter(t *testing.T) {
	r := NewRegistry()
	tr, _ := r.Find("state")
	done := make(chan bool, 1)
	go func() {
		done <- tr.WaitFor(2 * time.Second)
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, r.Notify("state"))
	select {
	case woken := <-done:
		assert.True(t, woken)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken")
	}
}

func TestNotifyAlsoFiresAll(t *testing.T) {
	r := NewRegistry()
	done := make(chan bool, 1)
	go func() {
		done <- r.All().WaitFor(2 * time.Second)
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, r.Notify("log"))
	select {
	case woken := <-done:
		assert.True(t, woken)
	case <-time.After(time.Second):
		t.Fatal("all-trigger waiter was not woken")
	}
}

func TestFireWakesAllWaiters(t *testing.T) {
	r := NewRegistry()
	tr := r.All()
	done := make(chan bool, 3)
	for i := 0; i < 3; i++ {
		go func() {
			done <- tr.WaitFor(2 * time.Second)
		}()
	}
	time.Sleep(10 * time.Millisecond)
	tr.Fire()
	for i := 0; i < 3; i++ {
		select {
		case woken := <-done:
			assert.True(t, woken)
		case <-time.After(time.Second):
			t.Fatal("waiter was not woken")
		}
	}
}
