// contention_test.go - the pure contentionDelay timing function

package spectrum

import "testing"

func TestContentionDelayOutsideDisplayWindow(t *testing.T) {
	if got := contentionDelay(0); got != 0 {
		t.Fatalf("T-state 0 (vertical blank) delay = %d, want 0", got)
	}
	if got := contentionDelay(FrameLength - 1); got != 0 {
		t.Fatalf("last T-state of frame delay = %d, want 0", got)
	}
}

func TestContentionDelayCyclicPattern(t *testing.T) {
	want := [8]int{6, 5, 4, 3, 2, 1, 0, 0}
	for i, w := range want {
		got := contentionDelay(DisplayStartTState + uint64(i))
		if got != w {
			t.Fatalf("offset %d into scanline: delay = %d, want %d", i, got, w)
		}
	}
}

func TestContentionDelayZeroAfterFirst128OfScanline(t *testing.T) {
	if got := contentionDelay(DisplayStartTState + 128); got != 0 {
		t.Fatalf("delay at scanline offset 128 = %d, want 0", got)
	}
	if got := contentionDelay(DisplayStartTState + ScanlineLength - 1); got != 0 {
		t.Fatalf("delay at last T-state of scanline = %d, want 0", got)
	}
}

func TestContentionDelayWrapsAcrossFrames(t *testing.T) {
	first := contentionDelay(DisplayStartTState)
	wrapped := contentionDelay(DisplayStartTState + FrameLength*3)
	if first != wrapped {
		t.Fatalf("delay must be periodic in FrameLength: %d != %d", first, wrapped)
	}
}
