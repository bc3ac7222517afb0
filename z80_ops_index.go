// z80_ops_index.go - DD/FD-prefix instruction family (spec.md §4.2 family
// 4/5): IX/IY substitute for HL in the handful of opcodes that reference
// it directly (ADD, INC/DEC, the three (nn) load forms, PUSH/POP, EX
// (SP),HL, JP (HL), LD SP,HL), and for the H/L halves in LD/ALU/INC/DEC
// when the opcode doesn't also touch (HL). Everything else falls through
// unchanged to the unprefixed handler, matching real (and undocumented)
// Z80 behaviour - the wasted prefix fetch is the only cost.
//
// readReg8/writeReg8 already redirect register codes 4 and 5 through
// readIndexHigh/Low based on c.mode, so the large "plain register, no
// (HL) involved" swath of LD r,r' / ALU A,r / INC r / DEC r needs no
// dedicated table entry at all: falling through to baseOps gets the
// index substitution for free. The opcodes that use (HL) need their own
// entry, to turn (HL) into (index+d); where such an opcode also names H
// or L, hardware uses the PLAIN H/L register, not IXH/IYH - the one
// genuine exception to the "redirect via mode" rule.

package spectrum

func (c *Z80) indexReg() *uint16 {
	if c.mode == prefixFD {
		return &c.IY
	}
	return &c.IX
}

func (c *Z80) initDDOps() { buildIndexOps(&c.ddOps) }
func (c *Z80) initFDOps() { buildIndexOps(&c.fdOps) }

func buildIndexOps(table *[256]func(*Z80)) {
	rpGet := [4]func(*Z80) uint16{
		(*Z80).BC, (*Z80).DE,
		func(c *Z80) uint16 { return *c.indexReg() },
		func(c *Z80) uint16 { return c.SP },
	}

	for rp := byte(0); rp < 4; rp++ {
		rp := rp
		get := rpGet[rp]
		table[0x09+rp<<4] = func(cpu *Z80) {
			idx := cpu.indexReg()
			cpu.addHL16(func() uint16 { return *idx }, func(v uint16) { *idx = v }, get(cpu))
			cpu.tick(15)
		}
	}

	table[0x21] = func(cpu *Z80) { *cpu.indexReg() = cpu.fetchWord(); cpu.tick(14) }
	table[0x22] = func(cpu *Z80) {
		addr := cpu.fetchWord()
		v := *cpu.indexReg()
		cpu.mem.Write(addr, byte(v))
		cpu.mem.Write(addr+1, byte(v>>8))
		cpu.tick(20)
	}
	table[0x2A] = func(cpu *Z80) { addr := cpu.fetchWord(); *cpu.indexReg() = readWord(cpu, addr); cpu.tick(20) }
	table[0x23] = func(cpu *Z80) { *cpu.indexReg()++; cpu.tick(10) }
	table[0x2B] = func(cpu *Z80) { *cpu.indexReg()--; cpu.tick(10) }

	table[0x34] = func(cpu *Z80) {
		addr := cpu.indexedAddr()
		cpu.write(addr, cpu.inc8(cpu.read(addr)))
		cpu.tick(23)
	}
	table[0x35] = func(cpu *Z80) {
		addr := cpu.indexedAddr()
		cpu.write(addr, cpu.dec8(cpu.read(addr)))
		cpu.tick(23)
	}
	table[0x36] = func(cpu *Z80) {
		addr := cpu.indexedAddr()
		v := cpu.fetchByte()
		cpu.write(addr, v)
		cpu.tick(19)
	}

	// LD (index+d),r and LD r,(index+d): the plain-register quirk.
	for src := byte(0); src < 8; src++ {
		if src == 6 {
			continue
		}
		src := src
		table[0x70+src] = func(cpu *Z80) {
			addr := cpu.indexedAddr()
			cpu.write(addr, cpu.readReg8Plain(src))
			cpu.tick(19)
		}
	}
	for dest := byte(0); dest < 8; dest++ {
		if dest == 6 {
			continue
		}
		dest := dest
		table[0x46+dest<<3] = func(cpu *Z80) {
			addr := cpu.indexedAddr()
			cpu.writeReg8Plain(dest, cpu.read(addr))
			cpu.tick(19)
		}
	}

	for op := byte(0); op < 8; op++ {
		opcode := 0x86 + op<<3
		aop := aluOp(op)
		table[opcode] = func(cpu *Z80) {
			addr := cpu.indexedAddr()
			cpu.performALU(aop, cpu.read(addr))
			cpu.tick(19)
		}
	}

	table[0xE5] = func(cpu *Z80) { cpu.pushWord(*cpu.indexReg()); cpu.tick(15) }
	table[0xE1] = func(cpu *Z80) { *cpu.indexReg() = cpu.popWord(); cpu.tick(14) }
	table[0xE3] = func(cpu *Z80) {
		idx := cpu.indexReg()
		lo := cpu.read(cpu.SP)
		hi := cpu.read(cpu.SP + 1)
		mem := uint16(hi)<<8 | uint16(lo)
		cpu.write(cpu.SP, byte(*idx))
		cpu.write(cpu.SP+1, byte(*idx>>8))
		*idx = mem
		cpu.tick(23)
	}
	table[0xE9] = func(cpu *Z80) { cpu.PC = *cpu.indexReg(); cpu.tick(8) }
	table[0xF9] = func(cpu *Z80) { cpu.SP = *cpu.indexReg(); cpu.tick(10) }
}

// indexedAddr fetches the instruction's displacement byte and returns the
// effective (IX+d)/(IY+d) address - called exactly once per instruction,
// immediately after the opcode, matching real fetch order.
func (c *Z80) indexedAddr() uint16 {
	disp := int8(c.fetchByte())
	return uint16(int32(*c.indexReg()) + int32(disp))
}

func (c *Z80) opDDPrefix() { c.dispatchIndexed(prefixDD) }
func (c *Z80) opFDPrefix() { c.dispatchIndexed(prefixFD) }

func (c *Z80) dispatchIndexed(mode prefixMode) {
	op := c.fetchOpcode()
	switch op {
	case 0xDD:
		c.tick(4)
		c.dispatchIndexed(prefixDD)
		return
	case 0xFD:
		c.tick(4)
		c.dispatchIndexed(prefixFD)
		return
	case 0xED:
		c.mode = prefixNone
		c.opEDPrefix()
		return
	case 0xCB:
		c.mode = mode
		c.indexedCB()
		return
	}

	c.mode = mode
	table := c.ddOps
	if mode == prefixFD {
		table = c.fdOps
	}
	if fn := table[op]; fn != nil {
		fn(c)
		return
	}
	c.tick(4)
	c.mode = mode
	c.baseOps[op](c)
}

// indexedCB implements the DDCB/FDCB sub-family: displacement, then
// opcode, operating on (index+d) with the documented undocumented
// write-back to the opcode's register field when that field isn't 6.
func (c *Z80) indexedCB() {
	disp := int8(c.fetchByte())
	op := c.fetchByte()
	addr := uint16(int32(*c.indexReg()) + int32(disp))
	reg := op & 0x07
	group := op >> 6

	switch group {
	case 0:
		shiftIdx := (op >> 3) & 0x07
		v := c.read(addr)
		res, carryOut := c.shiftFuncs[shiftIdx](v)
		c.write(addr, res)
		c.F &^= flagH | flagN | flagC
		if carryOut {
			c.F |= flagC
		}
		c.setSZPFlags(res)
		if reg != 6 {
			c.writeReg8Plain(reg, res)
		}
		c.tick(23)
	case 1:
		mask := byte(1) << ((op >> 3) & 0x07)
		v := c.read(addr)
		c.bitTest(v, mask, 6)
		c.tick(20)
	case 2:
		mask := byte(1) << ((op >> 3) & 0x07)
		res := c.read(addr) &^ mask
		c.write(addr, res)
		if reg != 6 {
			c.writeReg8Plain(reg, res)
		}
		c.tick(23)
	default:
		mask := byte(1) << ((op >> 3) & 0x07)
		res := c.read(addr) | mask
		c.write(addr, res)
		if reg != 6 {
			c.writeReg8Plain(reg, res)
		}
		c.tick(23)
	}
}
