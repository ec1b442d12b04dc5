package cpu

// AddressingMode identifies one of the 13 ways an instruction's operand can
// be supplied. It governs how many bytes follow the opcode and how the
// addressing resolver turns those bytes into an effective address or an
// immediate value.
type AddressingMode byte

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

// operandBytes is the number of operand bytes following the opcode for
// each addressing mode, per spec: 0, 1, 2 bytes total.
var operandBytes = [...]byte{
	Implied:     0,
	Accumulator: 0,
	Immediate:   1,
	ZeroPage:    1,
	ZeroPageX:   1,
	ZeroPageY:   1,
	Relative:    1,
	Absolute:    2,
	AbsoluteX:   2,
	AbsoluteY:   2,
	Indirect:    2,
	IndirectX:   1,
	IndirectY:   1,
}

// Category groups mnemonics by how the dispatch loop must apply their
// effect: whether they read an operand, write memory, write the
// accumulator, or need no operand at all.
type Category byte

const (
	// Command instructions take no operand (Implied/Accumulator-less);
	// they act directly on registers, flags, or the stack.
	Command Category = iota
	// Branch instructions consume a Relative operand and conditionally
	// move the program counter.
	Branch
	// Argument instructions read a value (immediate or from memory) and
	// never write it back.
	Argument
	// MemoryWrite instructions compute an effective address and write to
	// it (or, for JMP/JSR, redirect the program counter to it).
	MemoryWrite
	// AccumulatorWrite instructions read a byte (from A or memory),
	// transform it, and write the result back to the same place.
	AccumulatorWrite
)

// mnemonicCategory maps each of the 56 distinct mnemonics to its semantic
// category. This table, not the addressing mode, decides how Step applies
// an instruction's effect.
var mnemonicCategory = map[string]Category{
	"CLC": Command, "CLD": Command, "CLI": Command, "CLV": Command,
	"SEC": Command, "SED": Command, "SEI": Command,
	"DEX": Command, "DEY": Command, "INX": Command, "INY": Command,
	"TAX": Command, "TAY": Command, "TXA": Command, "TYA": Command, "TSX": Command, "TXS": Command,
	"NOP": Command, "PHA": Command, "PHP": Command, "PLA": Command, "PLP": Command,
	"BRK": Command, "RTI": Command, "RTS": Command,

	"BCC": Branch, "BCS": Branch, "BEQ": Branch, "BNE": Branch,
	"BPL": Branch, "BMI": Branch, "BVC": Branch, "BVS": Branch,

	"ADC": Argument, "SBC": Argument, "AND": Argument, "EOR": Argument, "ORA": Argument,
	"BIT": Argument, "CMP": Argument, "CPX": Argument, "CPY": Argument,
	"LDA": Argument, "LDX": Argument, "LDY": Argument,

	"JMP": MemoryWrite, "JSR": MemoryWrite,
	"INC": MemoryWrite, "DEC": MemoryWrite,
	"STA": MemoryWrite, "STX": MemoryWrite, "STY": MemoryWrite,

	"ASL": AccumulatorWrite, "LSR": AccumulatorWrite, "ROL": AccumulatorWrite, "ROR": AccumulatorWrite,
}

// kernelFunc is the signature every instruction kernel implements. op
// carries whatever the addressing resolver produced for the current
// instruction; a kernel reads only the fields relevant to its category.
type kernelFunc func(c *CPU, op operand)

// kernelByMnemonic dispatches a decoded mnemonic to the function that
// actually mutates CPU state. Defined in instructions.go.
var kernelByMnemonic = map[string]kernelFunc{
	"ADC": kADC, "AND": kAND, "ASL": kASL,
	"BCC": kBCC, "BCS": kBCS, "BEQ": kBEQ, "BIT": kBIT, "BMI": kBMI, "BNE": kBNE, "BPL": kBPL, "BVC": kBVC, "BVS": kBVS,
	"BRK": kBRK,
	"CLC": kCLC, "CLD": kCLD, "CLI": kCLI, "CLV": kCLV,
	"CMP": kCMP, "CPX": kCPX, "CPY": kCPY,
	"DEC": kDEC, "DEX": kDEX, "DEY": kDEY,
	"EOR": kEOR,
	"INC": kINC, "INX": kINX, "INY": kINY,
	"JMP": kJMP, "JSR": kJSR,
	"LDA": kLDA, "LDX": kLDX, "LDY": kLDY,
	"LSR": kLSR,
	"NOP": kNOP,
	"ORA": kORA,
	"PHA": kPHA, "PHP": kPHP, "PLA": kPLA, "PLP": kPLP,
	"ROL": kROL, "ROR": kROR,
	"RTI": kRTI, "RTS": kRTS,
	"SBC": kSBC,
	"SEC": kSEC, "SED": kSED, "SEI": kSEI,
	"STA": kSTA, "STX": kSTX, "STY": kSTY,
	"TAX": kTAX, "TAY": kTAY, "TSX": kTSX, "TXA": kTXA, "TXS": kTXS, "TYA": kTYA,
}

// opcodeEntry is one row of the opcode table: which mnemonic a byte
// decodes to, how its operand is addressed, and how many base cycles it
// costs. A zero-value entry (empty Mnemonic) marks an opcode byte with no
// legal 6502 instruction.
type opcodeEntry struct {
	Mnemonic string
	Mode     AddressingMode
	Cycles   byte
}

// opcodeTable is the dense, 256-entry, process-wide decode table: "a
// single dense table of structs is simpler and faster than mapping-based
// lookup" for something looked up once per fetched byte. It is populated
// once, below, from the canonical 151-entry list; unofficial/illegal
// opcodes are left at their zero value.
var opcodeTable [256]opcodeEntry

func init() {
	for _, row := range legalOpcodes {
		opcodeTable[row.code] = opcodeEntry{Mnemonic: row.mnemonic, Mode: row.mode, Cycles: row.cycles}
	}
}

var legalOpcodes = []struct {
	code     byte
	mnemonic string
	mode     AddressingMode
	cycles   byte
}{
	{0x69, "ADC", Immediate, 2}, {0x65, "ADC", ZeroPage, 3}, {0x75, "ADC", ZeroPageX, 4},
	{0x6D, "ADC", Absolute, 4}, {0x7D, "ADC", AbsoluteX, 4}, {0x79, "ADC", AbsoluteY, 4},
	{0x61, "ADC", IndirectX, 6}, {0x71, "ADC", IndirectY, 5},

	{0x29, "AND", Immediate, 2}, {0x25, "AND", ZeroPage, 3}, {0x35, "AND", ZeroPageX, 4},
	{0x2D, "AND", Absolute, 4}, {0x3D, "AND", AbsoluteX, 4}, {0x39, "AND", AbsoluteY, 4},
	{0x21, "AND", IndirectX, 6}, {0x31, "AND", IndirectY, 5},

	{0x0A, "ASL", Accumulator, 2}, {0x06, "ASL", ZeroPage, 5}, {0x16, "ASL", ZeroPageX, 6},
	{0x0E, "ASL", Absolute, 6}, {0x1E, "ASL", AbsoluteX, 7},

	{0x90, "BCC", Relative, 2}, {0xB0, "BCS", Relative, 2}, {0xF0, "BEQ", Relative, 2},
	{0x30, "BMI", Relative, 2}, {0xD0, "BNE", Relative, 2}, {0x10, "BPL", Relative, 2},
	{0x50, "BVC", Relative, 2}, {0x70, "BVS", Relative, 2},

	{0x24, "BIT", ZeroPage, 3}, {0x2C, "BIT", Absolute, 4},

	{0x00, "BRK", Implied, 7},

	{0x18, "CLC", Implied, 2}, {0xD8, "CLD", Implied, 2}, {0x58, "CLI", Implied, 2}, {0xB8, "CLV", Implied, 2},

	{0xC9, "CMP", Immediate, 2}, {0xC5, "CMP", ZeroPage, 3}, {0xD5, "CMP", ZeroPageX, 4},
	{0xCD, "CMP", Absolute, 4}, {0xDD, "CMP", AbsoluteX, 4}, {0xD9, "CMP", AbsoluteY, 4},
	{0xC1, "CMP", IndirectX, 6}, {0xD1, "CMP", IndirectY, 5},

	{0xE0, "CPX", Immediate, 2}, {0xE4, "CPX", ZeroPage, 3}, {0xEC, "CPX", Absolute, 4},
	{0xC0, "CPY", Immediate, 2}, {0xC4, "CPY", ZeroPage, 3}, {0xCC, "CPY", Absolute, 4},

	{0xC6, "DEC", ZeroPage, 5}, {0xD6, "DEC", ZeroPageX, 6}, {0xCE, "DEC", Absolute, 6}, {0xDE, "DEC", AbsoluteX, 7},
	{0xCA, "DEX", Implied, 2}, {0x88, "DEY", Implied, 2},

	{0x49, "EOR", Immediate, 2}, {0x45, "EOR", ZeroPage, 3}, {0x55, "EOR", ZeroPageX, 4},
	{0x4D, "EOR", Absolute, 4}, {0x5D, "EOR", AbsoluteX, 4}, {0x59, "EOR", AbsoluteY, 4},
	{0x41, "EOR", IndirectX, 6}, {0x51, "EOR", IndirectY, 5},

	{0xE6, "INC", ZeroPage, 5}, {0xF6, "INC", ZeroPageX, 6}, {0xEE, "INC", Absolute, 6}, {0xFE, "INC", AbsoluteX, 7},
	{0xE8, "INX", Implied, 2}, {0xC8, "INY", Implied, 2},

	{0x4C, "JMP", Absolute, 3}, {0x6C, "JMP", Indirect, 5},
	{0x20, "JSR", Absolute, 6},

	{0xA9, "LDA", Immediate, 2}, {0xA5, "LDA", ZeroPage, 3}, {0xB5, "LDA", ZeroPageX, 4},
	{0xAD, "LDA", Absolute, 4}, {0xBD, "LDA", AbsoluteX, 4}, {0xB9, "LDA", AbsoluteY, 4},
	{0xA1, "LDA", IndirectX, 6}, {0xB1, "LDA", IndirectY, 5},

	{0xA2, "LDX", Immediate, 2}, {0xA6, "LDX", ZeroPage, 3}, {0xB6, "LDX", ZeroPageY, 4},
	{0xAE, "LDX", Absolute, 4}, {0xBE, "LDX", AbsoluteY, 4},

	{0xA0, "LDY", Immediate, 2}, {0xA4, "LDY", ZeroPage, 3}, {0xB4, "LDY", ZeroPageX, 4},
	{0xAC, "LDY", Absolute, 4}, {0xBC, "LDY", AbsoluteX, 4},

	{0x4A, "LSR", Accumulator, 2}, {0x46, "LSR", ZeroPage, 5}, {0x56, "LSR", ZeroPageX, 6},
	{0x4E, "LSR", Absolute, 6}, {0x5E, "LSR", AbsoluteX, 7},

	{0xEA, "NOP", Implied, 2},

	{0x09, "ORA", Immediate, 2}, {0x05, "ORA", ZeroPage, 3}, {0x15, "ORA", ZeroPageX, 4},
	{0x0D, "ORA", Absolute, 4}, {0x1D, "ORA", AbsoluteX, 4}, {0x19, "ORA", AbsoluteY, 4},
	{0x01, "ORA", IndirectX, 6}, {0x11, "ORA", IndirectY, 5},

	{0x48, "PHA", Implied, 3}, {0x08, "PHP", Implied, 3}, {0x68, "PLA", Implied, 4}, {0x28, "PLP", Implied, 4},

	{0x2A, "ROL", Accumulator, 2}, {0x26, "ROL", ZeroPage, 5}, {0x36, "ROL", ZeroPageX, 6},
	{0x2E, "ROL", Absolute, 6}, {0x3E, "ROL", AbsoluteX, 7},

	{0x6A, "ROR", Accumulator, 2}, {0x66, "ROR", ZeroPage, 5}, {0x76, "ROR", ZeroPageX, 6},
	{0x6E, "ROR", Absolute, 6}, {0x7E, "ROR", AbsoluteX, 7},

	{0x40, "RTI", Implied, 6}, {0x60, "RTS", Implied, 6},

	{0xE9, "SBC", Immediate, 2}, {0xE5, "SBC", ZeroPage, 3}, {0xF5, "SBC", ZeroPageX, 4},
	{0xED, "SBC", Absolute, 4}, {0xFD, "SBC", AbsoluteX, 4}, {0xF9, "SBC", AbsoluteY, 4},
	{0xE1, "SBC", IndirectX, 6}, {0xF1, "SBC", IndirectY, 5},

	{0x38, "SEC", Implied, 2}, {0xF8, "SED", Implied, 2}, {0x78, "SEI", Implied, 2},

	{0x85, "STA", ZeroPage, 3}, {0x95, "STA", ZeroPageX, 4}, {0x8D, "STA", Absolute, 4},
	{0x9D, "STA", AbsoluteX, 5}, {0x99, "STA", AbsoluteY, 5}, {0x81, "STA", IndirectX, 6}, {0x91, "STA", IndirectY, 6},

	{0x86, "STX", ZeroPage, 3}, {0x96, "STX", ZeroPageY, 4}, {0x8E, "STX", Absolute, 4},
	{0x84, "STY", ZeroPage, 3}, {0x94, "STY", ZeroPageX, 4}, {0x8C, "STY", Absolute, 4},

	{0xAA, "TAX", Implied, 2}, {0xA8, "TAY", Implied, 2}, {0xBA, "TSX", Implied, 2},
	{0x8A, "TXA", Implied, 2}, {0x9A, "TXS", Implied, 2}, {0x98, "TYA", Implied, 2},
}
