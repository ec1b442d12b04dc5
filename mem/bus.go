// Package mem provides the bus contract the cpu package is driven through,
// plus a flat-RAM implementation suitable for tests and the standalone
// driver in cmd/step6502.
package mem

import (
	"strconv"
	"strings"
)

// A Bus is the CPU's only collaborator: a 16-bit address space that can be
// read and written one byte at a time. Any type satisfying this contract --
// flat RAM, bank-switched cartridge memory, memory-mapped IO -- can drive
// the CPU; the CPU never assumes anything about decoding, mirroring, or
// side effects beyond Read/Write.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, data byte)
}

// RAM is the simplest conforming Bus: 64KB of flat, unmirrored memory. It is
// the one used by the CPU's own tests and by cmd/step6502; a host with
// memory-mapped IO devices or bank switching supplies its own Bus instead.
type RAM struct {
	data [65536]byte
}

// NewRAM returns a zeroed 64KB RAM bus.
func NewRAM() *RAM {
	return &RAM{}
}

// Read returns the byte at addr.
func (r *RAM) Read(addr uint16) byte {
	return r.data[addr]
}

// Write stores data at addr.
func (r *RAM) Write(addr uint16, data byte) {
	r.data[addr] = data
}

// Load copies program into memory starting at addr.
func (r *RAM) Load(program []byte, addr uint16) {
	copy(r.data[addr:], program)
}

// LoadHex parses a whitespace-separated listing of hex byte values (e.g.
// "A9 00 8D 00 02") and places the decoded bytes at addr. It is the format
// produced by most 6502 disassemblers and is convenient for hand-written
// test fixtures.
func (r *RAM) LoadHex(listing string, addr uint16) error {
	for i, field := range strings.Fields(listing) {
		v, err := strconv.ParseUint(field, 16, 8)
		if err != nil {
			return err
		}
		r.data[addr+uint16(i)] = byte(v)
	}
	return nil
}

// SetVector writes a little-endian 16-bit pointer at addr/addr+1, the form
// used to program the reset/IRQ/NMI vectors in tests.
func (r *RAM) SetVector(addr uint16, value uint16) {
	r.data[addr] = byte(value)
	r.data[addr+1] = byte(value >> 8)
}
