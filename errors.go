// errors.go - error taxonomy for the ZX Spectrum 48K core

package spectrum

import "fmt"

// InvalidRomSizeError is returned by Memory.LoadROM when the supplied image
// is not exactly RomSize bytes.
type InvalidRomSizeError struct {
	Got int
}

func (e *InvalidRomSizeError) Error() string {
	return fmt.Sprintf("spectrum: invalid ROM size: got %d bytes, want %d", e.Got, RomSize)
}
