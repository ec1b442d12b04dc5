package cpu

// operand is what the addressing resolver hands to a kernel: either a
// value (Immediate, or the byte already read from an effective address)
// or the effective address itself, plus whether the source/destination is
// the accumulator rather than memory. Branch kernels reuse Addr as the
// branch target.
type operand struct {
	Value       byte
	Addr        uint16
	Accumulator bool
}

// resolve implements the 13 addressing modes of §4.1: it reads 0-2 operand
// bytes starting at PC (advancing PC past each one), and returns either an
// immediate value or an effective address together with the byte found
// there.
//
// The one hardware quirk reproduced here is the indirect page-boundary
// bug: when a 16-bit pointer's low byte is $FF, the high byte of the word
// it points to is fetched from the start of the *same* page rather than
// the next one. JMP (Indirect) is the only legal opcode that uses this
// mode, but the bug applies to it unconditionally.
func (c *CPU) resolve(mode AddressingMode) operand {
	switch mode {
	case Implied:
		return operand{}

	case Accumulator:
		return operand{Value: c.Regs.A, Accumulator: true}

	case Immediate:
		addr := c.Regs.PC
		c.Regs.PC++
		return operand{Value: c.Read(addr), Addr: addr}

	case ZeroPage:
		addr := uint16(c.fetchByte())
		return operand{Addr: addr, Value: c.Read(addr)}

	case ZeroPageX:
		addr := uint16(byte(c.fetchByte() + c.Regs.X)) // 8-bit wrap
		return operand{Addr: addr, Value: c.Read(addr)}

	case ZeroPageY:
		addr := uint16(byte(c.fetchByte() + c.Regs.Y)) // 8-bit wrap
		return operand{Addr: addr, Value: c.Read(addr)}

	case Relative:
		disp := int8(c.fetchByte())
		// PC already points past the displacement byte, i.e. at the
		// instruction following the branch; the target is relative to
		// that, not to the branch opcode itself.
		addr := uint16(int32(c.Regs.PC) + int32(disp))
		return operand{Addr: addr}

	case Absolute:
		addr := c.fetchWord()
		return operand{Addr: addr, Value: c.Read(addr)}

	case AbsoluteX:
		addr := c.fetchWord() + uint16(c.Regs.X)
		return operand{Addr: addr, Value: c.Read(addr)}

	case AbsoluteY:
		addr := c.fetchWord() + uint16(c.Regs.Y)
		return operand{Addr: addr, Value: c.Read(addr)}

	case Indirect:
		ptr := c.fetchWord()
		addr := c.readWordBuggy(ptr)
		return operand{Addr: addr, Value: c.Read(addr)}

	case IndirectX:
		ptr := byte(c.fetchByte() + c.Regs.X) // 8-bit wrap before indirection
		lo := c.Read(uint16(ptr))
		hi := c.Read(uint16(byte(ptr + 1))) // wraps within the zero page
		addr := uint16(hi)<<8 | uint16(lo)
		return operand{Addr: addr, Value: c.Read(addr)}

	case IndirectY:
		ptr := c.fetchByte()
		lo := c.Read(uint16(ptr))
		hi := c.Read(uint16(byte(ptr + 1))) // wraps within the zero page
		addr := (uint16(hi)<<8 | uint16(lo)) + uint16(c.Regs.Y)
		return operand{Addr: addr, Value: c.Read(addr)}
	}

	panic("cpu: unhandled addressing mode in decode table")
}

// fetchByte reads the byte at PC and advances PC by one.
func (c *CPU) fetchByte() byte {
	b := c.Read(c.Regs.PC)
	c.Regs.PC++
	return b
}

// fetchWord reads a little-endian word starting at PC, advancing PC by
// two: the low byte is read (and PC advanced) before the high byte.
func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

// readWordBuggy reads the little-endian word at ptr, reproducing the
// classic 6502 JMP (Indirect) bug: if ptr's low byte is $FF, the high byte
// comes from ptr&0xFF00 (the start of the same page) instead of ptr+1.
func (c *CPU) readWordBuggy(ptr uint16) uint16 {
	lo := c.Read(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := c.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}
