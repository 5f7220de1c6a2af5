package vfs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestCallbackChangeToken(t *testing.T) {
	token := NewCallbackChangeToken()
	if token.HasChanged() {
		t.Fatal("expected new token to be unchanged")
	}

	var calls atomic.Int32
	token.RegisterChangeCallback(func() { calls.Add(1) })
	unregister := token.RegisterChangeCallback(func() { calls.Add(100) })
	unregister()

	token.SignalChange()
	token.SignalChange()
	if !token.HasChanged() {
		t.Error("expected token to be changed")
	}
	if calls.Load() != 1 {
		t.Errorf("expected one callback run, got %d", calls.Load())
	}

	late := make(chan struct{})
	token.RegisterChangeCallback(func() { close(late) })
	select {
	case <-late:
	default:
		t.Error("expected late callback to run immediately")
	}
}

func TestPollingChangeToken(t *testing.T) {
	var checks atomic.Int32
	token := NewPollingChangeToken(context.Background(), PollingConfig{
		Interval: 10 * time.Millisecond,
		CheckFunc: func() bool {
			return checks.Add(1) >= 3
		},
	})
	defer token.Stop()

	fired := make(chan struct{})
	token.RegisterChangeCallback(func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	if !token.HasChanged() {
		t.Error("expected token to be changed")
	}
}

func TestPollingChangeTokenStop(t *testing.T) {
	token := NewPollingChangeToken(context.Background(), PollingConfig{
		Interval:  10 * time.Millisecond,
		CheckFunc: func() bool { return false },
	})
	token.Stop()
	token.Stop()
	time.Sleep(30 * time.Millisecond)
	if token.HasChanged() {
		t.Error("expected stopped token to stay unchanged")
	}
}

func TestOnChange(t *testing.T) {
	tokens := make(chan *CallbackChangeToken, 4)
	actions := make(chan struct{}, 4)

	cancel := OnChange(func() (ChangeToken, error) {
		tok := NewCallbackChangeToken()
		tokens <- tok
		return tok, nil
	}, func() {
		actions <- struct{}{}
	})
	defer cancel()

	for i := 0; i < 2; i++ {
		select {
		case tok := <-tokens:
			tok.SignalChange()
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for token")
		}
		select {
		case <-actions:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for action")
		}
	}
}
