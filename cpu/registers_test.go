package cpu

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
)

func TestFlagsGettersMatchSetters(t *testing.T) {
	var p Flags
	p.SetCarry(true)
	p.SetZero(true)
	p.SetInterrupt(true)
	p.SetDecimal(true)
	p.SetBreak(true)
	p.SetOverflow(true)
	p.SetNegative(true)

	assert.True(t, p.Carry())
	assert.True(t, p.Zero())
	assert.True(t, p.Interrupt())
	assert.True(t, p.Decimal())
	assert.True(t, p.Break())
	assert.True(t, p.Overflow())
	assert.True(t, p.Negative())

	p.SetCarry(false)
	assert.False(t, p.Carry())
}

func TestPushByteForcesUnusedBitHigh(t *testing.T) {
	var p Flags
	assert.Equal(t, byte(0x20), p.PushByte())
}

func TestFromPulledByteForcesUnusedBitHigh(t *testing.T) {
	got := FromPulledByte(0x00)
	assert.Equal(t, byte(0x20), byte(got))
}

// TestSnapshotRoundTrip exercises go-test/deep's struct diffing to compare
// two Registers snapshots taken before and after an instruction that should
// leave every field unchanged except PC.
func TestSnapshotRoundTrip(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.Load([]byte{0xEA}, 0x0000) // NOP
	c.Reset()

	before := c.Regs
	c.Step()
	after := c.Regs

	before.PC = after.PC // the only field NOP is expected to change
	if diff := deep.Equal(before, after); diff != nil {
		t.Errorf("unexpected register drift after NOP: %v", diff)
	}
}

// TestBRKThenRTIRestoresFlags guards against BRK baking its own
// SetInterrupt(true) into the status byte it pushes: RTI's plain pull must
// land P back at its pre-BRK value, I included, so a handler that returns
// via RTI does not leave IRQs masked forever. The one bit that differs is
// B: BRK pushes it set and RTI pulls the byte as-is.
func TestBRKThenRTIRestoresFlags(t *testing.T) {
	c, ram := newCPU()
	ram.SetVector(VectorReset, 0x0000)
	ram.SetVector(VectorIRQ, 0x9000)
	ram.Load([]byte{0x00}, 0x0000) // BRK
	ram.Load([]byte{0x40}, 0x9000) // RTI
	c.Reset()

	before := c.Regs
	assert.False(t, before.P.Interrupt())

	c.Step() // BRK
	c.Step() // RTI

	after := c.Regs
	after.PC = before.PC // BRK/RTI round-trip changes PC transiently, not meaningfully
	// B is pulled back from the byte BRK pushed.
	before.P.SetBreak(true)
	if diff := deep.Equal(before, after); diff != nil {
		t.Errorf("registers did not return to their pre-BRK state: %v", diff)
	}
}
