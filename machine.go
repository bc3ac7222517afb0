// machine.go - wires Z80, Memory and ULA into a runnable 48K machine
//
// Grounded on spec.md §6.5's frame-driver pseudocode: run the CPU until
// its accumulated T-state count reaches the frame boundary, rasterize,
// repeat. The only shared-mutable state is the *uint64 T-state cell
// Memory uses for contention and the CPU's own Cycles field, which is
// that same cell.

package spectrum

// Machine composes the three core components into the synchronous loop
// spec.md §6.1 describes: no threads, no channels, one forward-time
// primitive (CPU.Step).
type Machine struct {
	CPU    *Z80
	Memory *Memory
	ULA    *ULA
}

// NewMachine builds a fully wired 48K core. rom must be exactly RomSize
// bytes; callers that need to defer ROM loading should build the pieces
// individually instead.
func NewMachine(rom []byte) (*Machine, error) {
	cpu := &Z80{}
	mem := NewMemory(&cpu.Cycles)
	if err := mem.LoadROM(rom); err != nil {
		return nil, err
	}
	cpu.Init(mem)

	ula := NewULA(mem, cpu.RequestInterrupt)
	cpu.AttachIO(ula)

	return &Machine{CPU: cpu, Memory: mem, ULA: ula}, nil
}

// RunFrame executes CPU instructions until the accumulated T-state count
// for this frame reaches FrameLength, advancing the ULA after every
// instruction so its interrupt pulse and flash-phase bookkeeping stay in
// step with CPU time, then rasterizes exactly once.
func (m *Machine) RunFrame() []byte {
	target := m.CPU.Cycles + FrameLength
	for m.CPU.Cycles < target {
		consumed := m.CPU.Step()
		m.ULA.Advance(consumed)
	}
	return m.ULA.RenderFrame()
}

// Reset reinitializes CPU architectural state and zeroes RAM, per
// spec.md §4.1's lifecycle contract. ROM contents and I/O wiring survive.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Memory.Reset()
}
