// z80_ops_ed.go - ED-prefix instruction family (spec.md §4.2 family 3):
// the 16-bit ADC/SBC HL,rr pairs, extended LD (nn),rr / LD rr,(nn) forms,
// NEG, RETN/RETI, IM 0/1/2, the I/R interrupt-state loads, RRD/RLD, IN
// r,(C)/OUT (C),r and the sixteen block transfer/search/IO instructions.
// Any other ED-prefixed byte escapes to an 8 T-state NOP. Outside the
// 0x40-0x7F block it is also reported through OnUnimplemented; the two
// spare slots inside that block (ED 77, ED 7F) are silent NOPs.

package spectrum

func (c *Z80) initEDOps() {
	for i := range c.edOps {
		c.edOps[i] = (*Z80).opEDUnimplemented
	}

	edRpGet := [4]func(*Z80) uint16{(*Z80).BC, (*Z80).DE, (*Z80).HL, func(c *Z80) uint16 { return c.SP }}
	edRpSet := [4]func(*Z80, uint16){(*Z80).SetBC, (*Z80).SetDE, (*Z80).SetHL, func(c *Z80, v uint16) { c.SP = v }}

	// The regular 0x40-0x7F block: 8 rows (r = row, rp = row>>1) x 8 columns.
	for row := byte(0); row < 8; row++ {
		row := row
		rp := row >> 1
		get := edRpGet[rp]
		set := edRpSet[rp]
		base := 0x40 + row<<3

		if row == 6 {
			c.edOps[base+0] = func(cpu *Z80) { cpu.updateInFlags(cpu.in(cpu.BC())); cpu.tick(12) }
			c.edOps[base+1] = func(cpu *Z80) { cpu.out(cpu.BC(), 0); cpu.tick(12) }
		} else {
			c.edOps[base+0] = func(cpu *Z80) {
				ptr := cpu.edRegPtr(row)
				*ptr = cpu.in(cpu.BC())
				cpu.updateInFlags(*ptr)
				cpu.tick(12)
			}
			c.edOps[base+1] = func(cpu *Z80) { cpu.out(cpu.BC(), *cpu.edRegPtr(row)); cpu.tick(12) }
		}

		if row%2 == 0 {
			c.edOps[base+2] = func(cpu *Z80) { cpu.sbcHL(get(cpu)); cpu.tick(15) }
			c.edOps[base+3] = func(cpu *Z80) {
				addr := cpu.fetchWord()
				v := get(cpu)
				cpu.mem.Write(addr, byte(v))
				cpu.mem.Write(addr+1, byte(v>>8))
				cpu.tick(20)
			}
		} else {
			c.edOps[base+2] = func(cpu *Z80) { cpu.adcHL(get(cpu)); cpu.tick(15) }
			c.edOps[base+3] = func(cpu *Z80) {
				addr := cpu.fetchWord()
				set(cpu, readWord(cpu, addr))
				cpu.tick(20)
			}
		}

		c.edOps[base+4] = (*Z80).opNEG

		if row == 1 {
			c.edOps[base+5] = (*Z80).opRETI
		} else {
			c.edOps[base+5] = (*Z80).opRETN
		}

		im := [4]byte{0, 0, 1, 2}[row%4]
		c.edOps[base+6] = func(cpu *Z80) { cpu.IM = im; cpu.tick(8) }

		switch row {
		case 0:
			c.edOps[base+7] = func(cpu *Z80) { cpu.I = cpu.A; cpu.tick(9) }
		case 1:
			c.edOps[base+7] = func(cpu *Z80) { cpu.R = cpu.A; cpu.tick(9) }
		case 2:
			c.edOps[base+7] = func(cpu *Z80) { cpu.A = cpu.I; cpu.updateLDAIRFlags(); cpu.tick(9) }
		case 3:
			c.edOps[base+7] = func(cpu *Z80) { cpu.A = cpu.R; cpu.updateLDAIRFlags(); cpu.tick(9) }
		case 4:
			c.edOps[base+7] = (*Z80).opRRD
		case 5:
			c.edOps[base+7] = (*Z80).opRLD
		default:
			c.edOps[base+7] = (*Z80).opNOP8
		}
	}

	c.edOps[0xA0] = (*Z80).opLDI
	c.edOps[0xA1] = (*Z80).opCPI
	c.edOps[0xA2] = (*Z80).opINI
	c.edOps[0xA3] = (*Z80).opOUTI
	c.edOps[0xA8] = (*Z80).opLDD
	c.edOps[0xA9] = (*Z80).opCPD
	c.edOps[0xAA] = (*Z80).opIND
	c.edOps[0xAB] = (*Z80).opOUTD
	c.edOps[0xB0] = (*Z80).opLDIR
	c.edOps[0xB1] = (*Z80).opCPIR
	c.edOps[0xB2] = (*Z80).opINIR
	c.edOps[0xB3] = (*Z80).opOTIR
	c.edOps[0xB8] = (*Z80).opLDDR
	c.edOps[0xB9] = (*Z80).opCPDR
	c.edOps[0xBA] = (*Z80).opINDR
	c.edOps[0xBB] = (*Z80).opOTDR
}

func (c *Z80) edRegPtr(code byte) *byte {
	switch code {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	default:
		return &c.A
	}
}

func (c *Z80) opEDUnimplemented() {
	c.reportUnimplemented("ED", c.lastEDOpcode)
	c.tick(8)
}

func (c *Z80) opNOP8() { c.tick(8) }

func (c *Z80) opEDPrefix() {
	op := c.fetchOpcode()
	c.lastEDOpcode = op
	c.edOps[op](c)
}

func (c *Z80) opNEG() {
	value := c.A
	c.A = 0
	c.subA(value, 0, true)
	c.tick(8)
}

func (c *Z80) opRETN() {
	c.IFF1 = c.IFF2
	c.PC = c.popWord()
	c.tick(14)
}

func (c *Z80) opRETI() {
	c.IFF1 = c.IFF2
	c.PC = c.popWord()
	c.tick(14)
}

func (c *Z80) opRRD() {
	addr := c.HL()
	mem := c.read(addr)
	a := c.A
	c.A = a&0xF0 | mem&0x0F
	c.write(addr, mem>>4|a<<4)
	c.updateAParityFlagsPreserveCarry()
	c.tick(18)
}

func (c *Z80) opRLD() {
	addr := c.HL()
	mem := c.read(addr)
	a := c.A
	c.A = a&0xF0 | mem>>4
	c.write(addr, mem<<4|a&0x0F)
	c.updateAParityFlagsPreserveCarry()
	c.tick(18)
}

// --- block transfer/search/IO group ---

func (c *Z80) opLDI() { c.ldiCore(1); c.tick(16) }
func (c *Z80) opLDD() { c.ldiCore(-1); c.tick(16) }

func (c *Z80) ldiCore(step int16) {
	value := c.read(c.HL())
	c.write(c.DE(), value)
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.SetDE(uint16(int32(c.DE()) + int32(step)))
	bc := c.BC() - 1
	c.SetBC(bc)
	c.updateLDIFlags(value, bc)
}

func (c *Z80) opLDIR() {
	c.ldiCore(1)
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *Z80) opLDDR() {
	c.ldiCore(-1)
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *Z80) cpiCore(step int16) {
	value := c.read(c.HL())
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	bc := c.BC() - 1
	c.SetBC(bc)

	diff := c.A - value
	halfBorrow := c.A&0x0F < value&0x0F

	c.F &= flagC
	c.F |= flagN
	if diff == 0 {
		c.F |= flagZ
	}
	if diff&0x80 != 0 {
		c.F |= flagS
	}
	if halfBorrow {
		c.F |= flagH
		diff--
	}
	if bc != 0 {
		c.F |= flagPV
	}
	c.F |= diff & flagX
	if diff&0x02 != 0 {
		c.F |= flagY
	}
}

func (c *Z80) opCPI() { c.cpiCore(1); c.tick(16) }
func (c *Z80) opCPD() { c.cpiCore(-1); c.tick(16) }

func (c *Z80) opCPIR() {
	c.cpiCore(1)
	if c.BC() != 0 && !c.Flag(flagZ) {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *Z80) opCPDR() {
	c.cpiCore(-1)
	if c.BC() != 0 && !c.Flag(flagZ) {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *Z80) iniCore(step int16) {
	value := c.in(c.BC())
	c.write(c.HL(), value)
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.B--
	c.updateBlockIOFlags()
}

func (c *Z80) opINI() { c.iniCore(1); c.tick(16) }
func (c *Z80) opIND() { c.iniCore(-1); c.tick(16) }

func (c *Z80) opINIR() {
	c.iniCore(1)
	if c.B != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *Z80) opINDR() {
	c.iniCore(-1)
	if c.B != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *Z80) outiCore(step int16) {
	value := c.read(c.HL())
	c.B--
	c.out(c.BC(), value)
	c.SetHL(uint16(int32(c.HL()) + int32(step)))
	c.updateBlockIOFlags()
}

func (c *Z80) opOUTI() { c.outiCore(1); c.tick(16) }
func (c *Z80) opOUTD() { c.outiCore(-1); c.tick(16) }

func (c *Z80) opOTIR() {
	c.outiCore(1)
	if c.B != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *Z80) opOTDR() {
	c.outiCore(-1)
	if c.B != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}
