// z80_cb_test.go - CB-prefix rotate/shift/BIT/RES/SET family

package spectrum

import "testing"

func TestZ80CBRotateRegister(t *testing.T) {
	rig := newZ80TestRig()
	rig.load(0x0000, []byte{0xCB, 0x00}) // RLC B
	rig.cpu.B = 0x81
	rig.cpu.Step()
	requireEqualU8(t, "B", rig.cpu.B, 0x03)
	if !rig.cpu.Flag(flagC) {
		t.Fatalf("expected carry out of bit 7")
	}
}

func TestZ80CBSLLSetsLowBit(t *testing.T) {
	rig := newZ80TestRig()
	rig.load(0x0000, []byte{0xCB, 0x30}) // undocumented SLL B
	rig.cpu.B = 0x01
	rig.cpu.Step()
	requireEqualU8(t, "B", rig.cpu.B, 0x03) // (0x01<<1)|1
}

func TestZ80CBRotateMemoryIndirect(t *testing.T) {
	rig := newZ80TestRig()
	rig.load(0x0000, []byte{
		0x21, 0x00, 0x80, // LD HL,0x8000
		0xCB, 0x06, // RLC (HL)
	})
	rig.bus.mem[0x8000] = 0x80
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "(HL)", rig.bus.mem[0x8000], 0x01)
	if !rig.cpu.Flag(flagC) {
		t.Fatalf("expected carry out of bit 7")
	}
}

func TestZ80CBBitResSet(t *testing.T) {
	rig := newZ80TestRig()
	rig.load(0x0000, []byte{
		0x3E, 0x00, // LD A,0
		0xCB, 0xC7, // SET 0,A
		0xCB, 0x4F, // BIT 1,A
		0xCB, 0x87, // RES 0,A
	})
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "A after SET 0,A", rig.cpu.A, 0x01)
	rig.cpu.Step()
	if !rig.cpu.Flag(flagZ) {
		t.Fatalf("expected Z set since bit 1 of 0x01 is clear")
	}
	rig.cpu.Step()
	requireEqualU8(t, "A after RES 0,A", rig.cpu.A, 0x00)
}
