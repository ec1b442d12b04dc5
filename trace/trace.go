// Package trace provides an interactive bubbletea TUI for single-stepping a
// cpu.CPU and watching its registers, flags, and the memory around the
// program counter change one instruction at a time. It only depends on the
// CPU's public surface (Regs, Step, Last*), the same contract any other host
// would use to drive the core.
package trace

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/cego/m6502/cpu"
	"github.com/cego/m6502/mem"
)

type model struct {
	cpu    *cpu.CPU
	ram    *mem.RAM
	prevPC uint16
	steps  int
	err    error
}

// New returns a bubbletea program that steps c one instruction per
// keypress, starting from whatever state c is already in (the caller is
// expected to have called Reset or otherwise primed PC beforehand).
func New(c *cpu.CPU, ram *mem.RAM) *tea.Program {
	return tea.NewProgram(model{cpu: c, ram: ram})
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j", "n":
			m.prevPC = m.cpu.Regs.PC
			func() {
				defer func() {
					if r := recover(); r != nil {
						m.err = fmt.Errorf("%v", r)
					}
				}()
				m.cpu.Step()
			}()
			m.steps++
		}
	}
	return m, nil
}

const bytesPerRow = 16

// renderPage renders 16 consecutive bytes starting at a 16-byte-aligned
// address, highlighting the byte the program counter currently sits on.
func (m model) renderPage(start uint16) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X | ", start)
	for i := 0; i < bytesPerRow; i++ {
		addr := start + uint16(i)
		v := m.ram.Read(addr)
		if addr == m.cpu.Regs.PC {
			fmt.Fprintf(&b, "[%02X] ", v)
		} else {
			fmt.Fprintf(&b, " %02X  ", v)
		}
	}
	return b.String()
}

func (m model) pageTable() string {
	header := "page  | "
	for col := 0; col < bytesPerRow; col++ {
		header += fmt.Sprintf(" %X   ", col)
	}
	rows := []string{header}

	base := m.cpu.Regs.PC &^ (bytesPerRow - 1)
	for page := -1; page <= 2; page++ {
		rows = append(rows, m.renderPage(base+uint16(page*bytesPerRow)))
	}
	return strings.Join(rows, "\n")
}

func (m model) status() string {
	p := m.cpu.Regs.P
	var flags strings.Builder
	for _, set := range []bool{
		p.Negative(), p.Overflow(), true, p.Break(),
		p.Decimal(), p.Interrupt(), p.Zero(), p.Carry(),
	} {
		if set {
			flags.WriteString("1 ")
		} else {
			flags.WriteString("0 ")
		}
	}

	return fmt.Sprintf(`
step: %d
  PC: %04X (was %04X)
   A: %02X   X: %02X   Y: %02X
  SP: %02X
N V _ B D I Z C
%s
last: %s (%d)`,
		m.steps,
		m.cpu.Regs.PC, m.prevPC,
		m.cpu.Regs.A, m.cpu.Regs.X, m.cpu.Regs.Y,
		m.cpu.Regs.SP,
		flags.String(),
		m.cpu.LastMnemonic, m.cpu.LastMode,
	)
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("decode panic: %v\n\npress q to quit", m.err)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), "  ", m.status()),
		"",
		spew.Sdump(m.cpu.Regs),
		"space/j/n: step one instruction    q: quit",
	)
}
