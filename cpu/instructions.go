package cpu

import "github.com/cego/m6502/mask"

// Instruction kernels. Each kernel implements exactly one mnemonic's
// effect per §4.2: flags not mentioned in a kernel's comment are left
// untouched. op carries whatever resolve produced for the current
// addressing mode -- a kernel reads only the field(s) its category needs:
//
//   - Command:          no operand; acts on registers/flags/stack directly.
//   - Branch:           op.Addr is the branch target.
//   - Argument:         op.Value is the operand to read.
//   - MemoryWrite:      op.Addr is the effective address to write (or the
//     destination for JMP/JSR).
//   - AccumulatorWrite: op.Value is read, transformed, and written back to
//     A (op.Accumulator) or op.Addr.

// ---- Command ----

func kCLC(c *CPU, _ operand) { c.Regs.P.SetCarry(false) }
func kCLD(c *CPU, _ operand) { c.Regs.P.SetDecimal(false) }
func kCLI(c *CPU, _ operand) { c.Regs.P.SetInterrupt(false) }
func kCLV(c *CPU, _ operand) { c.Regs.P.SetOverflow(false) }
func kSEC(c *CPU, _ operand) { c.Regs.P.SetCarry(true) }
func kSED(c *CPU, _ operand) { c.Regs.P.SetDecimal(true) }
func kSEI(c *CPU, _ operand) { c.Regs.P.SetInterrupt(true) }

func kDEX(c *CPU, _ operand) { c.Regs.X--; c.Regs.P.SetZN(c.Regs.X) }
func kDEY(c *CPU, _ operand) { c.Regs.Y--; c.Regs.P.SetZN(c.Regs.Y) }
func kINX(c *CPU, _ operand) { c.Regs.X++; c.Regs.P.SetZN(c.Regs.X) }
func kINY(c *CPU, _ operand) { c.Regs.Y++; c.Regs.P.SetZN(c.Regs.Y) }

func kTAX(c *CPU, _ operand) { c.Regs.X = c.Regs.A; c.Regs.P.SetZN(c.Regs.X) }
func kTAY(c *CPU, _ operand) { c.Regs.Y = c.Regs.A; c.Regs.P.SetZN(c.Regs.Y) }
func kTXA(c *CPU, _ operand) { c.Regs.A = c.Regs.X; c.Regs.P.SetZN(c.Regs.A) }
func kTYA(c *CPU, _ operand) { c.Regs.A = c.Regs.Y; c.Regs.P.SetZN(c.Regs.A) }
func kTSX(c *CPU, _ operand) { c.Regs.X = c.Regs.SP; c.Regs.P.SetZN(c.Regs.X) }
func kTXS(c *CPU, _ operand) { c.Regs.SP = c.Regs.X } // flags unchanged

func kNOP(c *CPU, _ operand) {}

func kPHA(c *CPU, _ operand) { c.push8(c.Regs.A) }
func kPHP(c *CPU, _ operand) { c.push8(c.Regs.P.PushByte() | 0x10) } // B set, like BRK's push

func kPLA(c *CPU, _ operand) {
	c.Regs.A = c.pop8()
	c.Regs.P.SetZN(c.Regs.A)
}

func kPLP(c *CPU, _ operand) { c.Regs.P = FromPulledByte(c.pop8()) }

// BRK forces a software interrupt: push PC, set B, push P, jump through
// the IRQ/BRK vector. Unlike a hardware IRQ/NMI, the pushed status byte
// has B set (§4.2, §4.4).
func kBRK(c *CPU, _ operand) {
	c.push16(c.Regs.PC)
	pushed := c.Regs.P.PushByte() | 0x10
	c.push8(pushed)
	c.Regs.P.SetInterrupt(true)
	c.Regs.PC = c.readVector(VectorIRQ)
}

// RTI returns from an interrupt: pull P, then pull PC. The pulled P is
// used as-is -- no B-flag toggling.
func kRTI(c *CPU, _ operand) {
	c.Regs.P = FromPulledByte(c.pop8())
	c.Regs.PC = c.pop16()
}

// RTS returns from a subroutine: pull PC, then add 1 to compensate for
// JSR having pushed PC-1.
func kRTS(c *CPU, _ operand) {
	c.Regs.PC = c.pop16() + 1
}

// ---- Branch ----

func kBCC(c *CPU, op operand) { branchIf(c, op, !c.Regs.P.Carry()) }
func kBCS(c *CPU, op operand) { branchIf(c, op, c.Regs.P.Carry()) }
func kBEQ(c *CPU, op operand) { branchIf(c, op, c.Regs.P.Zero()) }
func kBNE(c *CPU, op operand) { branchIf(c, op, !c.Regs.P.Zero()) }
func kBPL(c *CPU, op operand) { branchIf(c, op, !c.Regs.P.Negative()) }
func kBMI(c *CPU, op operand) { branchIf(c, op, c.Regs.P.Negative()) }
func kBVC(c *CPU, op operand) { branchIf(c, op, !c.Regs.P.Overflow()) }
func kBVS(c *CPU, op operand) { branchIf(c, op, c.Regs.P.Overflow()) }

func branchIf(c *CPU, op operand, take bool) {
	if take {
		c.Regs.PC = op.Addr
	}
}

// ---- Argument ----

func kADC(c *CPU, op operand) {
	a, m := c.Regs.A, op.Value
	carryIn := uint16(0)
	if c.Regs.P.Carry() {
		carryIn = 1
	}
	sum := uint16(a) + uint16(m) + carryIn
	result := byte(sum)

	c.Regs.P.SetCarry(sum > 0xFF)
	signA, signM, signR := a&0x80 != 0, m&0x80 != 0, result&0x80 != 0
	c.Regs.P.SetOverflow(signA != signR && signA == signM)
	c.Regs.P.SetZN(result)
	c.Regs.A = result
}

// SBC's overflow rule is not ADC's rule run backwards: V is set when A
// and the result disagree in sign AND A and M disagree in sign.
func kSBC(c *CPU, op operand) {
	a, m := c.Regs.A, op.Value
	borrow := int16(1)
	if c.Regs.P.Carry() {
		borrow = 0
	}
	full := int16(a) - int16(m) - borrow
	result := byte(full)

	c.Regs.P.SetCarry(full >= 0)
	signA, signM, signR := a&0x80 != 0, m&0x80 != 0, result&0x80 != 0
	c.Regs.P.SetOverflow(signA != signR && signA != signM)
	c.Regs.P.SetZN(result)
	c.Regs.A = result
}

func kAND(c *CPU, op operand) { c.Regs.A &= op.Value; c.Regs.P.SetZN(c.Regs.A) }
func kEOR(c *CPU, op operand) { c.Regs.A ^= op.Value; c.Regs.P.SetZN(c.Regs.A) }
func kORA(c *CPU, op operand) { c.Regs.A |= op.Value; c.Regs.P.SetZN(c.Regs.A) }

// BIT tests bits of A against M without altering A. N and V come directly
// from M's bit 7 and bit 6; Z comes from the AND of A and M.
func kBIT(c *CPU, op operand) {
	m := op.Value
	c.Regs.P.SetZero(c.Regs.A&m == 0)
	c.Regs.P.SetNegative(mask.IsSet(m, mask.I1))
	c.Regs.P.SetOverflow(mask.IsSet(m, mask.I2))
}

func compare(c *CPU, reg, m byte) {
	diff := reg - m
	c.Regs.P.SetCarry(reg >= m)
	c.Regs.P.SetZero(reg == m)
	c.Regs.P.SetNegative(diff&0x80 != 0)
}

func kCMP(c *CPU, op operand) { compare(c, c.Regs.A, op.Value) }
func kCPX(c *CPU, op operand) { compare(c, c.Regs.X, op.Value) }
func kCPY(c *CPU, op operand) { compare(c, c.Regs.Y, op.Value) }

func kLDA(c *CPU, op operand) { c.Regs.A = op.Value; c.Regs.P.SetZN(c.Regs.A) }
func kLDX(c *CPU, op operand) { c.Regs.X = op.Value; c.Regs.P.SetZN(c.Regs.X) }
func kLDY(c *CPU, op operand) { c.Regs.Y = op.Value; c.Regs.P.SetZN(c.Regs.Y) }

// ---- MemoryWrite ----

func kJMP(c *CPU, op operand) { c.Regs.PC = op.Addr }

func kJSR(c *CPU, op operand) {
	c.push16(c.Regs.PC - 1)
	c.Regs.PC = op.Addr
}

func kINC(c *CPU, op operand) {
	v := c.Read(op.Addr) + 1
	c.Write(op.Addr, v)
	c.Regs.P.SetZN(v)
}

func kDEC(c *CPU, op operand) {
	v := c.Read(op.Addr) - 1
	c.Write(op.Addr, v)
	c.Regs.P.SetZN(v)
}

func kSTA(c *CPU, op operand) { c.Write(op.Addr, c.Regs.A) }
func kSTX(c *CPU, op operand) { c.Write(op.Addr, c.Regs.X) }
func kSTY(c *CPU, op operand) { c.Write(op.Addr, c.Regs.Y) }

// ---- AccumulatorWrite ----

func writeBack(c *CPU, op operand, result byte) {
	if op.Accumulator {
		c.Regs.A = result
	} else {
		c.Write(op.Addr, result)
	}
	c.Regs.P.SetZN(result)
}

func kASL(c *CPU, op operand) {
	c.Regs.P.SetCarry(mask.IsSet(op.Value, mask.I1)) // old bit 7
	writeBack(c, op, op.Value<<1)
}

func kLSR(c *CPU, op operand) {
	c.Regs.P.SetCarry(mask.IsSet(op.Value, mask.I8)) // old bit 0
	writeBack(c, op, op.Value>>1)
}

func kROL(c *CPU, op operand) {
	result, carryOut := mask.RotateLeftThroughCarry(op.Value, c.Regs.P.Carry())
	c.Regs.P.SetCarry(carryOut)
	writeBack(c, op, result)
}

func kROR(c *CPU, op operand) {
	result, carryOut := mask.RotateRightThroughCarry(op.Value, c.Regs.P.Carry())
	c.Regs.P.SetCarry(carryOut)
	writeBack(c, op, result)
}
