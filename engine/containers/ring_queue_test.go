package containers

import (
	"errors"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull; got %v", err)
	}
	if v, _ := rq.Peek(); v != 1 {
		t.Fatalf("expected 1 at the front; got %d", v)
	}
	for i := 1; i <= 3; i++ {
		v, err := rq.Dequeue()
		if err != nil || v != i {
			t.Fatalf("expected %d; got %d (%v)", i, v, err)
		}
	}
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty; got %v", err)
	}
}

func TestRingQueuePushDropsOldest(t *testing.T) {
	rq := NewRingQueue[string](2)
	rq.Push("a")
	rq.Push("b")
	rq.Push("c")

	items := rq.Items()
	if len(items) != 2 || items[0] != "b" || items[1] != "c" {
		t.Fatalf("expected [b c]; got %v", items)
	}

	rq.Clear()
	if !rq.IsEmpty() || rq.Len() != 0 {
		t.Fatalf("expected an empty queue after Clear; got %d items", rq.Len())
	}
}
