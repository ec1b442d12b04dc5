package cpu

import "github.com/cego/m6502/mask"

// Flags packs the six status bits the 6502 exposes into a single byte, bit
// layout NV-BDIZC (bit 7 down to bit 0). Bit 5 is unused on real hardware
// and always reads back as 1; PushByte enforces that when the flags are
// written to the stack.
//
// https://www.nesdev.org/wiki/Status_flags
type Flags byte

// mask's bit positions are 1-indexed from the MSB, the opposite convention
// from the 6502's own bit numbering (C is bit 0, N is bit 7); these are the
// positions each named flag lives at once translated.
const (
	posNegative  = mask.I1
	posOverflow  = mask.I2
	posUnused    = mask.I3
	posBreak     = mask.I4
	posDecimal   = mask.I5
	posInterrupt = mask.I6
	posZero      = mask.I7
	posCarry     = mask.I8
)

func (p Flags) Carry() bool     { return mask.IsSet(byte(p), posCarry) }
func (p Flags) Zero() bool      { return mask.IsSet(byte(p), posZero) }
func (p Flags) Interrupt() bool { return mask.IsSet(byte(p), posInterrupt) }
func (p Flags) Decimal() bool   { return mask.IsSet(byte(p), posDecimal) }
func (p Flags) Break() bool     { return mask.IsSet(byte(p), posBreak) }
func (p Flags) Overflow() bool  { return mask.IsSet(byte(p), posOverflow) }
func (p Flags) Negative() bool  { return mask.IsSet(byte(p), posNegative) }

func (p *Flags) SetCarry(v bool) {
	if v {
		*p = Flags(mask.Set(byte(*p), posCarry, 1))
	} else {
		*p = Flags(mask.Unset(byte(*p), posCarry, posCarry))
	}
}

func (p *Flags) SetZero(v bool) {
	if v {
		*p = Flags(mask.Set(byte(*p), posZero, 1))
	} else {
		*p = Flags(mask.Unset(byte(*p), posZero, posZero))
	}
}

func (p *Flags) SetInterrupt(v bool) {
	if v {
		*p = Flags(mask.Set(byte(*p), posInterrupt, 1))
	} else {
		*p = Flags(mask.Unset(byte(*p), posInterrupt, posInterrupt))
	}
}

func (p *Flags) SetDecimal(v bool) {
	if v {
		*p = Flags(mask.Set(byte(*p), posDecimal, 1))
	} else {
		*p = Flags(mask.Unset(byte(*p), posDecimal, posDecimal))
	}
}

func (p *Flags) SetBreak(v bool) {
	if v {
		*p = Flags(mask.Set(byte(*p), posBreak, 1))
	} else {
		*p = Flags(mask.Unset(byte(*p), posBreak, posBreak))
	}
}

func (p *Flags) SetOverflow(v bool) {
	if v {
		*p = Flags(mask.Set(byte(*p), posOverflow, 1))
	} else {
		*p = Flags(mask.Unset(byte(*p), posOverflow, posOverflow))
	}
}

func (p *Flags) SetNegative(v bool) {
	if v {
		*p = Flags(mask.Set(byte(*p), posNegative, 1))
	} else {
		*p = Flags(mask.Unset(byte(*p), posNegative, posNegative))
	}
}

// SetZN sets the Zero and Negative flags from the given result byte, the
// pattern every load/arithmetic/shift kernel ends with.
func (p *Flags) SetZN(result byte) {
	p.SetZero(result == 0)
	p.SetNegative(mask.IsSet(result, mask.I1))
}

// PushByte returns the byte representation of p as it would appear on the
// stack: bit 5 forced to 1, per hardware.
func (p Flags) PushByte() byte {
	return byte(p) | 0x20
}

// FromPulledByte restores P from a byte popped off the stack. Bit 5 is
// always treated as set, matching PushByte.
func FromPulledByte(b byte) Flags {
	return Flags(b | 0x20)
}

// Registers holds the programmer-visible CPU state: three 8-bit
// general-purpose/index registers, an 8-bit stack pointer (the low byte of
// the $01xx page), a 16-bit program counter, and the packed status flags.
type Registers struct {
	A  byte
	X  byte
	Y  byte
	SP byte
	PC uint16
	P  Flags
}
