package mathx

import "testing"

func TestMinMax(t *testing.T) {
	if got := Min(3, 5); got != 3 {
		t.Fatalf("Min(3,5) = %d", got)
	}
	if got := Min(int64(7), int64(7)); got != 7 {
		t.Fatalf("Min(7,7) = %d", got)
	}
	if got := Max(uint64(1000), uint64(5000)); got != 5000 {
		t.Fatalf("Max(1000,5000) = %d", got)
	}
	if got := Max(-2, -9); got != -2 {
		t.Fatalf("Max(-2,-9) = %d", got)
	}
}
