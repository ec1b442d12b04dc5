// Package cpu implements the instruction-set core of a MOS Technology 6502
// microprocessor: fetch/decode/execute, the register and flag model, the
// 13 addressing modes, and the reset/IRQ/NMI entry points. It reproduces
// NMOS 6502 semantics closely enough that assembled 6502 programs run
// correctly, including the JMP (Indirect) page-boundary bug.
//
// The core has no memory of its own beyond its registers; it is driven
// entirely through the mem.Bus contract supplied at construction.
// Decimal-mode arithmetic, illegal-opcode execution, and sub-instruction
// cycle timing are out of scope -- see SPEC_FULL.md.
package cpu

import "github.com/cego/m6502/mem"

// Vector addresses the signal entry points read their destination PC from.
const (
	VectorNMI   uint16 = 0xFFFA
	VectorReset uint16 = 0xFFFC
	VectorIRQ   uint16 = 0xFFFE
)

// StackPage is the fixed base address of the hardware stack; SP is always
// the low byte of an address in this page.
const StackPage uint16 = 0x0100

// CPU is the instruction-set interpreter. It is single-threaded and
// non-reentrant: Step and the signal entry points must not be called
// concurrently from multiple goroutines, and none of them suspend
// mid-instruction.
type CPU struct {
	Regs Registers
	Bus  mem.Bus

	// UnofficialOpcodeHandler, if set, is invoked whenever Step decodes a
	// byte with no entry in the opcode table, before the nominal 1-cycle
	// charge is applied. It lets a host (a trace TUI, a CLI) surface the
	// event without the core depending on a logging library itself.
	UnofficialOpcodeHandler func(opcode byte, pc uint16)

	// Debug-only snapshot of the most recently decoded instruction,
	// updated by Step; used by tracing tools, never read by the core
	// itself.
	LastMnemonic string
	LastMode     AddressingMode
	LastOperand  byte
	LastAddress  uint16
}

// New binds a CPU to the given bus. The CPU's registers start zeroed; call
// Reset to bring it to the state real hardware powers on in.
func New(bus mem.Bus) *CPU {
	return &CPU{Bus: bus}
}

// Read reads one byte from the bus.
func (c *CPU) Read(addr uint16) byte { return c.Bus.Read(addr) }

// Write writes one byte to the bus.
func (c *CPU) Write(addr uint16, v byte) { c.Bus.Write(addr, v) }

func (c *CPU) readVector(addr uint16) uint16 {
	lo := c.Read(addr)
	hi := c.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// push8 writes v at the current stack address, then decrements SP.
func (c *CPU) push8(v byte) {
	c.Write(StackPage|uint16(c.Regs.SP), v)
	c.Regs.SP--
}

// pop8 increments SP, then reads the byte now at the stack address.
func (c *CPU) pop8() byte {
	c.Regs.SP++
	return c.Read(StackPage | uint16(c.Regs.SP))
}

// push16 pushes w as two bytes, high byte first: the low byte ends up at
// the lower address, the high byte at the higher one.
func (c *CPU) push16(w uint16) {
	c.push8(byte(w >> 8))
	c.push8(byte(w))
}

// pop16 reverses push16: low byte popped first, then high.
func (c *CPU) pop16() uint16 {
	lo := c.pop8()
	hi := c.pop8()
	return uint16(hi)<<8 | uint16(lo)
}

// Reset brings the CPU to its power-on state: registers cleared, stack
// pointer at $FF, flags at 0b00100000, PC loaded from the reset vector.
func (c *CPU) Reset() {
	c.Regs.A = 0
	c.Regs.X = 0
	c.Regs.Y = 0
	c.Regs.SP = 0xFF
	c.Regs.P = 0x20
	c.Regs.PC = c.readVector(VectorReset)
}

// IRQ requests a maskable interrupt. It is a no-op if the interrupt
// disable flag is set. Otherwise it pushes PC and P (with B clear), sets
// the interrupt disable flag, and jumps through the IRQ/BRK vector.
func (c *CPU) IRQ() {
	if c.Regs.P.Interrupt() {
		return
	}
	c.push16(c.Regs.PC)
	c.Regs.P.SetBreak(false)
	pushed := c.Regs.P.PushByte() &^ 0x10 // B clear on a hardware interrupt
	c.push8(pushed)
	c.Regs.P.SetInterrupt(true)
	c.Regs.PC = c.readVector(VectorIRQ)
}

// NMI requests a non-maskable interrupt: unlike IRQ it cannot be disabled
// by the I flag. Otherwise it behaves like IRQ, except that it jumps through
// the NMI vector.
func (c *CPU) NMI() {
	c.push16(c.Regs.PC)
	c.Regs.P.SetBreak(false)
	pushed := c.Regs.P.PushByte() &^ 0x10
	c.push8(pushed)
	c.Regs.P.SetInterrupt(true)
	c.Regs.PC = c.readVector(VectorNMI)
}

// Step executes exactly one instruction and returns its base cycle count
// (2-7 for legal opcodes, 1 for an unrecognised one). Page-crossing and
// branch-taken cycle penalties are not modeled.
func (c *CPU) Step() byte {
	opcodePC := c.Regs.PC
	opcode := c.fetchByte()

	entry := opcodeTable[opcode]
	if entry.Mnemonic == "" {
		if c.UnofficialOpcodeHandler != nil {
			c.UnofficialOpcodeHandler(opcode, opcodePC)
		}
		return 1
	}

	op := c.resolve(entry.Mode)

	category, ok := mnemonicCategory[entry.Mnemonic]
	if !ok {
		panic("cpu: opcode table entry " + entry.Mnemonic + " has no category: decode table inconsistency")
	}
	if entry.Mode == Immediate && category != Argument {
		panic("cpu: Immediate addressing paired with non-Argument mnemonic " + entry.Mnemonic)
	}
	if entry.Mode == Accumulator && category != AccumulatorWrite {
		panic("cpu: Accumulator addressing paired with non-AccumulatorWrite mnemonic " + entry.Mnemonic)
	}

	kernel, ok := kernelByMnemonic[entry.Mnemonic]
	if !ok {
		panic("cpu: opcode table entry " + entry.Mnemonic + " has no kernel: decode table inconsistency")
	}

	c.LastMnemonic = entry.Mnemonic
	c.LastMode = entry.Mode
	c.LastOperand = op.Value
	c.LastAddress = op.Addr

	kernel(c, op)

	return entry.Cycles
}
