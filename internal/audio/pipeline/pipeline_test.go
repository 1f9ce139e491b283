package pipeline

import (
	"testing"
	"time"
)

func TestAddOnPipeTransforms(t *testing.T) {
	quit := make(chan struct{})
	defer close(quit)

	in := make(chan int, 4)
	out := AddOnPipe(quit, func(x int) int { return x * 2 }, in, 4)

	for _, v := range []int{1, 2, 3} {
		in <- v
	}
	for _, want := range []int{2, 4, 6} {
		select {
		case got := <-out:
			if got != want {
				t.Fatalf("got %d, want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for pipeline output")
		}
	}
}

func TestAddOnPipeClosesWithInput(t *testing.T) {
	quit := make(chan struct{})
	defer close(quit)

	in := make(chan string)
	out := AddOnPipe(quit, func(s string) string { return s }, in, 1)
	close(in)

	select {
	case _, ok := <-out:
		if ok {
			t.Fatal("expected closed output channel")
		}
	case <-time.After(time.Second):
		t.Fatal("output channel did not close")
	}
}

func TestAddOnPipeStopsOnQuit(t *testing.T) {
	quit := make(chan struct{})
	in := make(chan int)
	out := AddOnPipe(quit, func(x int) int { return x }, in, 1)
	close(quit)

	select {
	case _, ok := <-out:
		if ok {
			t.Fatal("expected closed output channel")
		}
	case <-time.After(time.Second):
		t.Fatal("output channel did not close after quit")
	}
}
