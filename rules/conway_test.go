package rules

import "testing"

func TestConway(t *testing.T) {
	for n := uint8(0); n <= 8; n++ {
		var (
			wantAlive = n == 2 || n == 3
			wantDead  = n == 3
		)
		if got := Conway(true, n); got != wantAlive {
			t.Errorf("Conway(alive, %d) = %v, want %v", n, got, wantAlive)
		}
		if got := Conway(false, n); got != wantDead {
			t.Errorf("Conway(dead, %d) = %v, want %v", n, got, wantDead)
		}
	}
}
