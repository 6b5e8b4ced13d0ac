package native

import "testing"

func TestTap_ReturnsLatestInOrder(t *testing.T) {
	tap := NewTap(4)
	tap.Write([][2]float64{{1, 1}, {2, 2}, {3, 3}})
	tap.Write([][2]float64{{4, 4}, {5, 5}, {6, 0}})

	got := tap.Samples(3)
	want := []float64{4, 5, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
	if n := len(tap.Samples(10)); n != 4 {
		t.Errorf("Expected request capped at tap size 4, got %d", n)
	}
}

func TestTap_FedBySuspendedContext(t *testing.T) {
	c := NewContext(testRate)
	tap := NewTap(8)
	tap.Write([][2]float64{{1, 1}})
	c.SetTap(tap)

	c.Stream(make([][2]float64, 8))
	for _, v := range tap.Samples(8) {
		if v != 0 {
			t.Fatalf("Expected silence written to the tap, got %v", tap.Samples(8))
		}
	}
}
