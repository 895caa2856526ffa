package tui

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestChanConfirmer_RoundTrip(t *testing.T) {
	c := newChanConfirmer()

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := c.Confirm(context.Background(), "Delete?")
		done <- result{ok, err}
	}()

	msg := listenConfirm(c.requests)()
	req, isReq := msg.(confirmRequestMsg)
	if !isReq {
		t.Fatalf("expected confirmRequestMsg, got %T", msg)
	}
	if req.prompt != "Delete?" {
		t.Fatalf("unexpected prompt %q", req.prompt)
	}
	req.reply <- true

	select {
	case r := <-done:
		if !r.ok || r.err != nil {
			t.Fatalf("expected yes, got %v %v", r.ok, r.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("confirmer did not return")
	}
}

func TestChanConfirmer_ContextCancelled(t *testing.T) {
	c := newChanConfirmer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := c.Confirm(ctx, "Delete?")
	if ok || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v %v", ok, err)
	}
}

func TestListenConfirm_Closed(t *testing.T) {
	ch := make(chan confirmRequest)
	close(ch)

	if _, ok := listenConfirm(ch)().(errMsg); !ok {
		t.Fatalf("expected errMsg on closed channel")
	}
}
