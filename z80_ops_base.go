// z80_ops_base.go - unprefixed instruction family (spec.md §4.2 family 1)
//
// Built the way the teacher's initBaseOps does: a table of function values
// indexed by opcode byte, with the large regular blocks (LD r,r'; ALU A,r;
// INC/DEC r; conditional JP/JR/CALL/RET; PUSH/POP rp) generated by loops
// over the opcode's bit-encoded operand fields rather than spelled out
// 64-ways by hand.

package spectrum

// condCode evaluates one of the eight Z80 condition codes (the cc field
// used by conditional JP/JR/CALL/RET), encoded NZ,Z,NC,C,PO,PE,P,M.
func (c *Z80) condCode(cc byte) bool {
	switch cc {
	case 0:
		return !c.Flag(flagZ)
	case 1:
		return c.Flag(flagZ)
	case 2:
		return !c.Flag(flagC)
	case 3:
		return c.Flag(flagC)
	case 4:
		return !c.Flag(flagPV)
	case 5:
		return c.Flag(flagPV)
	case 6:
		return !c.Flag(flagS)
	default:
		return c.Flag(flagS)
	}
}

func (c *Z80) initBaseOps() {
	for i := range c.baseOps {
		c.baseOps[i] = (*Z80).opUnimplementedBase
	}

	c.baseOps[0x00] = (*Z80).opNOP
	c.baseOps[0x08] = (*Z80).opEXAFAF
	c.baseOps[0x10] = (*Z80).opDJNZ
	c.baseOps[0x18] = (*Z80).opJRUncond
	c.baseOps[0x76] = (*Z80).opHALT
	c.baseOps[0xC3] = (*Z80).opJPNN
	c.baseOps[0xC9] = (*Z80).opRET
	c.baseOps[0xCB] = (*Z80).opCBPrefix
	c.baseOps[0xCD] = (*Z80).opCALLNN
	c.baseOps[0xD3] = (*Z80).opOUTNA
	c.baseOps[0xD9] = (*Z80).opEXX
	c.baseOps[0xDB] = (*Z80).opINAN
	c.baseOps[0xDD] = (*Z80).opDDPrefix
	c.baseOps[0xE3] = (*Z80).opEXSPHL
	c.baseOps[0xE9] = (*Z80).opJPHL
	c.baseOps[0xEB] = (*Z80).opEXDEHL
	c.baseOps[0xED] = (*Z80).opEDPrefix
	c.baseOps[0xF3] = (*Z80).opDI
	c.baseOps[0xF9] = (*Z80).opLDSPHL
	c.baseOps[0xFB] = (*Z80).opEI
	c.baseOps[0xFD] = (*Z80).opFDPrefix

	c.baseOps[0x07] = (*Z80).opRLCA
	c.baseOps[0x0F] = (*Z80).opRRCA
	c.baseOps[0x17] = (*Z80).opRLA
	c.baseOps[0x1F] = (*Z80).opRRA
	c.baseOps[0x27] = (*Z80).opDAA
	c.baseOps[0x2F] = (*Z80).opCPL
	c.baseOps[0x37] = (*Z80).opSCF
	c.baseOps[0x3F] = (*Z80).opCCF

	// 16-bit LD rr,nn / ADD HL,rr / INC rr / DEC rr (rp = BC,DE,HL,SP)
	rpGet := [4]func(*Z80) uint16{(*Z80).BC, (*Z80).DE, (*Z80).HL, func(c *Z80) uint16 { return c.SP }}
	rpSet := [4]func(*Z80, uint16){(*Z80).SetBC, (*Z80).SetDE, (*Z80).SetHL, func(c *Z80, v uint16) { c.SP = v }}
	for rp := byte(0); rp < 4; rp++ {
		rp := rp
		set := rpSet[rp]
		get := rpGet[rp]
		c.baseOps[0x01+rp<<4] = func(cpu *Z80) { set(cpu, cpu.fetchWord()); cpu.tick(10) }
		c.baseOps[0x09+rp<<4] = func(cpu *Z80) { cpu.addHL(get(cpu)); cpu.tick(11) }
		c.baseOps[0x03+rp<<4] = func(cpu *Z80) { set(cpu, get(cpu)+1); cpu.tick(6) }
		c.baseOps[0x0B+rp<<4] = func(cpu *Z80) { set(cpu, get(cpu)-1); cpu.tick(6) }
	}

	c.baseOps[0x02] = func(cpu *Z80) { cpu.write(cpu.BC(), cpu.A); cpu.tick(7) }
	c.baseOps[0x12] = func(cpu *Z80) { cpu.write(cpu.DE(), cpu.A); cpu.tick(7) }
	c.baseOps[0x0A] = func(cpu *Z80) { cpu.A = cpu.read(cpu.BC()); cpu.tick(7) }
	c.baseOps[0x1A] = func(cpu *Z80) { cpu.A = cpu.read(cpu.DE()); cpu.tick(7) }
	c.baseOps[0x22] = func(cpu *Z80) { addr := cpu.fetchWord(); cpu.mem.Write(addr, byte(cpu.HL())); cpu.mem.Write(addr+1, byte(cpu.HL()>>8)); cpu.tick(16) }
	c.baseOps[0x2A] = func(cpu *Z80) { addr := cpu.fetchWord(); cpu.SetHL(readWord(cpu, addr)); cpu.tick(16) }
	c.baseOps[0x32] = func(cpu *Z80) { addr := cpu.fetchWord(); cpu.write(addr, cpu.A); cpu.tick(13) }
	c.baseOps[0x3A] = func(cpu *Z80) { addr := cpu.fetchWord(); cpu.A = cpu.read(addr); cpu.tick(13) }

	// INC r / DEC r / LD r,n (r = B,C,D,E,H,L,(HL),A ; step 8 from 0x04/0x05/0x06)
	for r := byte(0); r < 8; r++ {
		r := r
		c.baseOps[0x04+r<<3] = func(cpu *Z80) {
			cpu.writeReg8(r, cpu.inc8(cpu.readReg8(r)))
			cpu.tick(cpu.regTiming(r, 4, 11))
		}
		c.baseOps[0x05+r<<3] = func(cpu *Z80) {
			cpu.writeReg8(r, cpu.dec8(cpu.readReg8(r)))
			cpu.tick(cpu.regTiming(r, 4, 11))
		}
		c.baseOps[0x06+r<<3] = func(cpu *Z80) {
			v := cpu.fetchByte()
			cpu.writeReg8(r, v)
			cpu.tick(cpu.regTiming(r, 7, 10))
		}
	}

	// LD r,r' for all 64 combinations except 0x76 (HALT).
	for dest := byte(0); dest < 8; dest++ {
		for src := byte(0); src < 8; src++ {
			op := 0x40 + dest<<3 + src
			if op == 0x76 {
				continue
			}
			dest, src := dest, src
			c.baseOps[op] = func(cpu *Z80) {
				cpu.writeReg8(dest, cpu.readReg8(src))
				cpu.tick(cpu.regTiming2(dest, src))
			}
		}
	}

	// ALU A,r for the eight ALU ops x eight sources.
	for op := byte(0); op < 8; op++ {
		for src := byte(0); src < 8; src++ {
			opcode := 0x80 + op<<3 + src
			aop := aluOp(op)
			src := src
			c.baseOps[opcode] = func(cpu *Z80) {
				cpu.performALU(aop, cpu.readReg8(src))
				cpu.tick(cpu.regTiming(src, 4, 7))
			}
		}
	}

	// ALU A,n (immediate forms), RST, PUSH/POP, conditional JP/CALL/RET.
	for op := byte(0); op < 8; op++ {
		opcode := 0xC6 + op<<3
		aop := aluOp(op)
		c.baseOps[opcode] = func(cpu *Z80) { cpu.performALU(aop, cpu.fetchByte()); cpu.tick(7) }

		rst := 0xC7 + op<<3
		vector := uint16(op) * 8
		c.baseOps[rst] = func(cpu *Z80) { cpu.pushWord(cpu.PC); cpu.PC = vector; cpu.tick(11) }
	}

	pushGet := [4]func(*Z80) uint16{(*Z80).BC, (*Z80).DE, (*Z80).HL, (*Z80).AF}
	popSet := [4]func(*Z80, uint16){(*Z80).SetBC, (*Z80).SetDE, (*Z80).SetHL, (*Z80).SetAF}
	for rp := byte(0); rp < 4; rp++ {
		get := pushGet[rp]
		set := popSet[rp]
		c.baseOps[0xC5+rp<<4] = func(cpu *Z80) { cpu.pushWord(get(cpu)); cpu.tick(11) }
		c.baseOps[0xC1+rp<<4] = func(cpu *Z80) { set(cpu, cpu.popWord()); cpu.tick(10) }
	}

	for cc := byte(0); cc < 8; cc++ {
		cc := cc
		c.baseOps[0xC0+cc<<3] = func(cpu *Z80) { cpu.retCond(cpu.condCode(cc)) }
		c.baseOps[0xC2+cc<<3] = func(cpu *Z80) { cpu.jpCond(cpu.condCode(cc)) }
		c.baseOps[0xC4+cc<<3] = func(cpu *Z80) { cpu.callCond(cpu.condCode(cc)) }
		if cc < 4 {
			c.baseOps[0x20+cc<<3] = func(cpu *Z80) { cpu.jrCond(cpu.condCode(cc)) }
		}
	}
}

func readWord(c *Z80, addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// regTiming returns normal for any plain register code and wide for (HL).
func (c *Z80) regTiming(code byte, normal, wide int) int {
	if code == 6 {
		return wide
	}
	return normal
}

// regTiming2 is LD r,r''s timing: 4 normally, 7 if either operand is (HL).
func (c *Z80) regTiming2(dest, src byte) int {
	if dest == 6 || src == 6 {
		return 7
	}
	return 4
}

func (c *Z80) opUnimplementedBase() {
	c.reportUnimplemented("base", 0)
	c.tick(4)
}

func (c *Z80) opNOP()  { c.tick(4) }
func (c *Z80) opHALT() { c.Halted = true; c.tick(4) }

func (c *Z80) opEXAFAF() { c.ExAF(); c.tick(4) }
func (c *Z80) opEXX()    { c.Exx(); c.tick(4) }
func (c *Z80) opEXDEHL() { c.D, c.H = c.H, c.D; c.E, c.L = c.L, c.E; c.tick(4) }

func (c *Z80) opEXSPHL() {
	lo := c.read(c.SP)
	hi := c.read(c.SP + 1)
	mem := uint16(hi)<<8 | uint16(lo)
	hl := c.HL()
	c.write(c.SP, byte(hl))
	c.write(c.SP+1, byte(hl>>8))
	c.SetHL(mem)
	c.tick(19)
}

func (c *Z80) opJPNN() { c.PC = c.fetchWord(); c.tick(10) }

func (c *Z80) opJRUncond() {
	disp := int8(c.fetchByte())
	c.PC = uint16(int32(c.PC) + int32(disp))
	c.tick(12)
}

func (c *Z80) opDJNZ() {
	disp := int8(c.fetchByte())
	c.B--
	if c.B != 0 {
		c.PC = uint16(int32(c.PC) + int32(disp))
		c.tick(13)
	} else {
		c.tick(8)
	}
}

func (c *Z80) jpCond(cond bool) {
	addr := c.fetchWord()
	if cond {
		c.PC = addr
	}
	c.tick(10)
}

func (c *Z80) jrCond(cond bool) {
	disp := int8(c.fetchByte())
	if cond {
		c.PC = uint16(int32(c.PC) + int32(disp))
		c.tick(12)
	} else {
		c.tick(7)
	}
}

func (c *Z80) callCond(cond bool) {
	addr := c.fetchWord()
	if cond {
		c.pushWord(c.PC)
		c.PC = addr
		c.tick(17)
	} else {
		c.tick(10)
	}
}

func (c *Z80) retCond(cond bool) {
	if cond {
		c.PC = c.popWord()
		c.tick(11)
	} else {
		c.tick(5)
	}
}

func (c *Z80) opCALLNN() {
	addr := c.fetchWord()
	c.pushWord(c.PC)
	c.PC = addr
	c.tick(17)
}

func (c *Z80) opRET() { c.PC = c.popWord(); c.tick(10) }
func (c *Z80) opJPHL() { c.PC = c.HL(); c.tick(4) }

func (c *Z80) opLDSPHL() { c.SP = c.HL(); c.tick(6) }

func (c *Z80) opOUTNA() {
	port := uint16(c.A)<<8 | uint16(c.fetchByte())
	c.out(port, c.A)
	c.tick(11)
}

func (c *Z80) opINAN() {
	port := uint16(c.A)<<8 | uint16(c.fetchByte())
	c.A = c.in(port)
	c.tick(11)
}

func (c *Z80) opDI() { c.IFF1, c.IFF2 = false, false; c.eiDelay = false; c.tick(4) }
func (c *Z80) opEI()  { c.IFF1, c.IFF2 = true, true; c.eiDelay = true; c.tick(4) }

func (c *Z80) opRLCA() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | c.A>>7
	c.updateRotateFlags(carry)
	c.tick(4)
}

func (c *Z80) opRRCA() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | c.A<<7
	c.updateRotateFlags(carry)
	c.tick(4)
}

func (c *Z80) opRLA() {
	carryIn := c.Flag(flagC)
	carryOut := c.A&0x80 != 0
	c.A <<= 1
	if carryIn {
		c.A |= 0x01
	}
	c.updateRotateFlags(carryOut)
	c.tick(4)
}

func (c *Z80) opRRA() {
	carryIn := c.Flag(flagC)
	carryOut := c.A&0x01 != 0
	c.A >>= 1
	if carryIn {
		c.A |= 0x80
	}
	c.updateRotateFlags(carryOut)
	c.tick(4)
}

func (c *Z80) opDAA() { c.daa(); c.tick(4) }

func (c *Z80) opCPL() {
	c.A = ^c.A
	c.F = c.F&(flagS|flagZ|flagPV|flagC) | flagH | flagN
	c.F |= c.A & (flagX | flagY)
	c.tick(4)
}

func (c *Z80) opSCF() {
	c.F = c.F&(flagS|flagZ|flagPV) | flagC
	c.F |= c.A & (flagX | flagY)
	c.tick(4)
}

func (c *Z80) opCCF() {
	carry := c.Flag(flagC)
	c.F = c.F&(flagS|flagZ|flagPV) | c.A&(flagX|flagY)
	if carry {
		c.F |= flagH
	} else {
		c.F |= flagC
	}
	c.tick(4)
}
