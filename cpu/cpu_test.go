package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cego/m6502/mem"
)

func newCPU() (*CPU, *mem.RAM) {
	ram := mem.NewRAM()
	return New(ram), ram
}

func TestResetVector(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0xDEAD)

	c.Reset()

	assert.Equal(t, uint16(0xDEAD), c.Regs.PC)
	assert.Equal(t, byte(0xFF), c.Regs.SP)
	assert.Equal(t, byte(0), c.Regs.A)
	assert.Equal(t, byte(0), c.Regs.X)
	assert.Equal(t, byte(0), c.Regs.Y)
	assert.Equal(t, byte(0x20), byte(c.Regs.P))
}

func TestINXLoop(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Load([]byte{0xE8, 0x4C, 0x00, 0x00}, 0x0000) // INX; JMP $0000
	c.Reset()

	for i := 0; i < 5; i++ {
		c.Step() // INX
		c.Step() // JMP $0000
	}

	assert.Equal(t, byte(5), c.Regs.X)
	assert.Equal(t, uint16(0x0000), c.Regs.PC)
}

func TestLDAImmediateSetsZero(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Load([]byte{0xA9, 0x00}, 0x0000) // LDA #$00
	c.Reset()

	c.Step()

	assert.Equal(t, byte(0x00), c.Regs.A)
	assert.True(t, c.Regs.P.Zero())
	assert.False(t, c.Regs.P.Negative())
	assert.Equal(t, uint16(0x0002), c.Regs.PC)
}

func TestADCWithOverflow(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Load([]byte{0x69, 0x50}, 0x0000) // ADC #$50
	c.Reset()
	c.Regs.A = 0x50
	c.Regs.P.SetCarry(false)

	c.Step()

	assert.Equal(t, byte(0xA0), c.Regs.A)
	assert.True(t, c.Regs.P.Negative())
	assert.True(t, c.Regs.P.Overflow())
	assert.False(t, c.Regs.P.Carry())
	assert.False(t, c.Regs.P.Zero())
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Load([]byte{0x20, 0x05, 0x00}, 0x0000) // JSR $0005
	ram.Load([]byte{0x60}, 0x0005)             // RTS
	c.Reset()
	startSP := c.Regs.SP

	c.Step() // JSR
	c.Step() // RTS

	assert.Equal(t, uint16(0x0003), c.Regs.PC)
	assert.Equal(t, startSP, c.Regs.SP)
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Write(0x10FF, 0x34)
	ram.Write(0x1000, 0x12) // deliberately NOT at $1100
	ram.Write(0x1100, 0x56)
	ram.Load([]byte{0x6C, 0xFF, 0x10}, 0x0000) // JMP ($10FF)
	c.Reset()

	c.Step()

	assert.Equal(t, uint16(0x1234), c.Regs.PC)
}

func TestPushPullAccumulatorRoundTrip(t *testing.T) {
	for b := 0; b < 256; b += 37 {
		c, ram := newCPU()
		ram.SetVector(VectorReset, 0x0000)
		ram.Load([]byte{0x48, 0x68}, 0x0000) // PHA; PLA
		c.Reset()
		c.Regs.A = byte(b)

		c.Step() // PHA
		c.Regs.A = 0
		c.Step() // PLA

		assert.Equal(t, byte(b), c.Regs.A)
		assert.Equal(t, byte(b) == 0, c.Regs.P.Zero())
		assert.Equal(t, byte(b)&0x80 != 0, c.Regs.P.Negative())
	}
}

func TestStackPointerWraps(t *testing.T) {
	c, _ := newCPU()
	c.Regs.SP = 0
	c.push8(0x42)
	assert.Equal(t, byte(0xFF), c.Regs.SP)
	got := c.pop8()
	assert.Equal(t, byte(0x42), got)
	assert.Equal(t, byte(0), c.Regs.SP)
}

func TestBranchDisplacementIsRelativeToFollowingInstruction(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Load([]byte{0xD0, 0x05}, 0x0000) // BNE +5
	c.Reset()
	c.Regs.P.SetZero(false)

	c.Step()

	assert.Equal(t, uint16(0x0007), c.Regs.PC) // 0x0002 (after operand) + 5
}

func TestBranchNotTakenLeavesPCAtFollowingInstruction(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Load([]byte{0xD0, 0x05}, 0x0000) // BNE +5
	c.Reset()
	c.Regs.P.SetZero(true)

	c.Step()

	assert.Equal(t, uint16(0x0002), c.Regs.PC)
}

func TestUnofficialOpcodeInvokesHandler(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Load([]byte{0x02}, 0x0000) // not in the legal opcode table
	c.Reset()

	var gotOpcode byte
	var gotPC uint16
	c.UnofficialOpcodeHandler = func(opcode byte, pc uint16) {
		gotOpcode = opcode
		gotPC = pc
	}

	cycles := c.Step()

	assert.Equal(t, byte(0x02), gotOpcode)
	assert.Equal(t, uint16(0x0000), gotPC)
	assert.Equal(t, byte(1), cycles)
}

func TestIRQIgnoredWhenInterruptDisableSet(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.SetVector(VectorIRQ, 0x9000)
	c.Reset()
	c.Regs.P.SetInterrupt(true)
	pcBefore := c.Regs.PC

	c.IRQ()

	assert.Equal(t, pcBefore, c.Regs.PC)
}

func TestNMICannotBeMasked(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.SetVector(VectorNMI, 0x9100)
	c.Reset()
	c.Regs.P.SetInterrupt(true)

	c.NMI()

	assert.Equal(t, uint16(0x9100), c.Regs.PC)
	assert.True(t, c.Regs.P.Interrupt())
}

func TestBRKSetsBreakOnPushedStatusOnly(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.SetVector(VectorIRQ, 0x9200)
	ram.Load([]byte{0x00}, 0x0000) // BRK
	c.Reset()

	c.Step()

	pushed := c.Read(StackPage | uint16(c.Regs.SP+1))
	assert.NotZero(t, pushed&0x10)
	assert.False(t, c.Regs.P.Break()) // BRK sets B only in the pushed copy, not in P itself
	assert.Equal(t, uint16(0x9200), c.Regs.PC)
}
