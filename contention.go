// contention.go - ULA memory contention timing for the ZX Spectrum 48K

package spectrum

// Published 48K timing constants. One frame is 69888 T-states at 3.5MHz;
// the ULA reads bitmap/attribute bytes for 128 of every 224 T-states on
// each of the 192 visible scanlines, starting at T-state 14335.
const (
	FrameLength          = 69888
	ScanlineLength       = 224
	DisplayStartTState   = 14335
	VisibleScanlineCount = 192
	displayEndTState     = DisplayStartTState + VisibleScanlineCount*ScanlineLength
)

// contentionPattern is the reference lightweight approximation from the
// spec: 6,5,4,3,2,1,0,0 T-states added cyclically across the first 128
// T-states of a contended scanline, 0 for the remaining 96.
var contentionPattern = [8]int{6, 5, 4, 3, 2, 1, 0, 0}

// contentionDelay returns the number of extra T-states a contended memory
// access incurs given the CPU's absolute T-state count. It is a pure
// function of T-state position only, as the spec requires.
func contentionDelay(absoluteTStates uint64) int {
	t := absoluteTStates % FrameLength
	if t < DisplayStartTState || t >= displayEndTState {
		return 0
	}
	rel := (t - DisplayStartTState) % ScanlineLength
	if rel >= 128 {
		return 0
	}
	return contentionPattern[rel%8]
}
