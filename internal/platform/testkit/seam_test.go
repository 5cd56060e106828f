package testkit

import (
	"sync"
	"testing"
	"time"
)

var (
	nowFn   = func() string { return "real" }
	maxDays = 3660
)

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &nowFn, func() string { return "fake" })
		Swap(t, &maxDays, 31)
		if nowFn() != "fake" || maxDays != 31 {
			t.Fatalf("swap did not apply: %s %d", nowFn(), maxDays)
		}
	})
	if nowFn() != "real" || maxDays != 3660 {
		t.Fatalf("swap not restored: %s %d", nowFn(), maxDays)
	}
}

func TestSerial_NoInterleaving(t *testing.T) {
	var mu sync.Mutex
	var seq []string
	mark := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"a", "b"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				mark(name + "+")
				time.Sleep(20 * time.Millisecond)
				mark(name + "-")
			})
		}
	})

	if len(seq) != 4 {
		t.Fatalf("seq = %v", seq)
	}
	// each start is immediately followed by its own end
	if seq[0][0] != seq[1][0] || seq[2][0] != seq[3][0] {
		t.Fatalf("interleaved: %v", seq)
	}
}
