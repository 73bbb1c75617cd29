// Package main provides the entry point for the SimProc simulator.
package main

import (
	"os"

	"gopkg.in/urfave/cli.v2"

	"github.com/fabienpinel/simproc/emu"
	"github.com/fabienpinel/simproc/insts"
	"github.com/fabienpinel/simproc/loader"
)

// Embedded static image, used when no binary file is given: a short
// arithmetic program with a conditional branch, ending on HALT.
var (
	demoText = []uint32{
		insts.Immediate(insts.OpADD, 1, 0),               // ADD R01, #0
		insts.Absolute(insts.OpSUB, 1, 0),                // SUB R01, @0x0000
		insts.Absolute(insts.OpBRANCH, uint8(insts.CondGE), 4), // BRANCH GE, @0x0004
		insts.Bare(insts.OpNOP),                          // NOP
		insts.Absolute(insts.OpSTORE, 1, 5),              // STORE R01, @0x0005
		insts.Bare(insts.OpHALT),                         // HALT
	}
	demoData    = []emu.Word{5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	demoDataEnd = uint32(10)
)

func main() {
	app := &cli.App{
		Name:  "simproc",
		Usage: "Run a SimProc machine program",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "d",
				Usage: "enable interactive debug from the first instruction",
			},
			&cli.StringFlag{
				Name:  "b",
				Usage: "load the program from a binary `FILE`",
			},
		},
		Action: run,
	}

	app.Run(os.Args)
}

func run(c *cli.Context) error {
	machine := emu.NewMachine()

	if path := c.String("b"); path != "" {
		prog, err := loader.Load(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		machine.LoadProgram(prog.Text, prog.Data, prog.DataEnd)
	} else {
		machine.LoadProgram(demoText, demoData, demoDataEnd)
	}

	if err := machine.Run(c.Bool("d")); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
