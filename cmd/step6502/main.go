// Command step6502 loads a hand-written hex listing into RAM and either
// runs it for a fixed number of steps or drops into the interactive
// trace TUI.
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/cego/m6502/cpu"
	"github.com/cego/m6502/mem"
	"github.com/cego/m6502/trace"
)

func main() {
	app := &cli.App{
		Name:    "step6502",
		Usage:   "load a 6502 hex listing and step it",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "load",
				Aliases: []string{"l"},
				Usage:   "path to a whitespace-separated hex byte listing",
			},
			&cli.IntFlag{
				Name:    "origin",
				Aliases: []string{"o"},
				Usage:   "address the listing is loaded at, and the reset vector target",
				Value:   0x0600,
			},
			&cli.IntFlag{
				Name:    "steps",
				Aliases: []string{"n"},
				Usage:   "number of instructions to execute in batch mode",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "single-step under the trace TUI instead of running -steps instructions in batch mode",
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	listingPath := c.String("load")
	if listingPath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("", 86)
	}

	listing, err := os.ReadFile(listingPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading %s: %v", listingPath, err), 1)
	}

	origin := uint16(c.Int("origin"))
	ram := mem.NewRAM()
	if err := ram.LoadHex(string(listing), origin); err != nil {
		return cli.Exit(fmt.Sprintf("parsing hex listing: %v", err), 1)
	}
	ram.SetVector(cpu.VectorReset, origin)

	core := cpu.New(ram)
	core.Reset()

	if c.Bool("interactive") {
		_, err := trace.New(core, ram).Run()
		return err
	}

	for i := 0; i < c.Int("steps"); i++ {
		core.Step()
		fmt.Printf("%04X  %-4s  A=%02X X=%02X Y=%02X SP=%02X P=%02X\n",
			core.Regs.PC, core.LastMnemonic,
			core.Regs.A, core.Regs.X, core.Regs.Y, core.Regs.SP, byte(core.Regs.P))
	}
	return nil
}
