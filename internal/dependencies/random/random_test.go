package random

import "testing"

func TestIntnStaysInRange(t *testing.T) {
	r := New()
	for n := 1; n <= 10; n++ {
		for i := 0; i < 200; i++ {
			got := r.Intn(n)
			if got < 0 || got >= n {
				t.Fatalf("Intn(%d) = %d, out of range", n, got)
			}
		}
	}
}

func TestIntnNonPositive(t *testing.T) {
	r := New()
	if got := r.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
	if got := r.Intn(-3); got != 0 {
		t.Errorf("Intn(-3) = %d, want 0", got)
	}
}
