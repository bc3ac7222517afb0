// z80_flags_test.go - documented and undocumented flag derivations

package spectrum

import "testing"

func TestZ80CPSetsFlagsWithoutModifyingA(t *testing.T) {
	rig := newZ80TestRig()
	rig.load(0x0000, []byte{
		0x3E, 0x10, // LD A,0x10
		0xFE, 0x10, // CP 0x10
	})
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x10)
	if !rig.cpu.Flag(flagZ) {
		t.Fatalf("expected Z after CP of equal values")
	}
	if rig.cpu.Flag(flagC) {
		t.Fatalf("expected no carry after CP of equal values")
	}
}

func TestZ80INCDoesNotAffectCarry(t *testing.T) {
	rig := newZ80TestRig()
	rig.load(0x0000, []byte{
		0x37,       // SCF (set carry)
		0x3E, 0xFF, // LD A,0xFF
		0x3C,       // INC A
	})
	rig.cpu.Step()
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x00)
	if !rig.cpu.Flag(flagZ) {
		t.Fatalf("expected Z after INC wraps 0xFF to 0x00")
	}
	if !rig.cpu.Flag(flagC) {
		t.Fatalf("INC must preserve carry untouched")
	}
	if rig.cpu.Flag(flagPV) {
		t.Fatalf("INC only sets overflow when the input was 0x7F, not on 0xFF wrap")
	}
}

func TestZ80DAAAfterBCDAdd(t *testing.T) {
	rig := newZ80TestRig()
	rig.load(0x0000, []byte{
		0x3E, 0x15, // LD A,0x15 (BCD 15)
		0xC6, 0x27, // ADD A,0x27 (BCD 27)
		0x27, // DAA
	})
	rig.cpu.Step()
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x42) // 15+27=42 in BCD
}

func TestZ80BitUndocumentedXYFromInternalValue(t *testing.T) {
	rig := newZ80TestRig()
	// BIT 0,B where B holds a value with bit 5 and bit 3 set (0x28):
	// undocumented X/Y come from the tested register's own value here,
	// since B is not the (HL)/(IX+d) case.
	rig.load(0x0000, []byte{0xCB, 0x40}) // BIT 0,B
	rig.cpu.B = 0x28
	rig.cpu.Step()
	if rig.cpu.Flag(flagZ) == false {
		t.Fatalf("expected BIT 0 of 0x28 to be zero (bit0 clear)")
	}
	if rig.cpu.F&flagY == 0 {
		t.Fatalf("expected Y flag copied from tested byte bit 5")
	}
	if rig.cpu.F&flagX == 0 {
		t.Fatalf("expected X flag copied from tested byte bit 3")
	}
}

func TestZ80RotateCarryChain(t *testing.T) {
	rig := newZ80TestRig()
	rig.load(0x0000, []byte{
		0x3E, 0x80, // LD A,0x80
		0x07, // RLCA -> A=0x01, C=1
		0x07, // RLCA -> A=0x02, C=0
	})
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x01)
	if !rig.cpu.Flag(flagC) {
		t.Fatalf("expected carry set after rotating 0x80 left")
	}
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x02)
	if rig.cpu.Flag(flagC) {
		t.Fatalf("expected carry clear on second rotate")
	}
}
