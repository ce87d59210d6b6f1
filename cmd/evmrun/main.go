// Copyright 2026 The Guillotine Authors
// This file is part of the Guillotine EVM engine.
//
// Guillotine is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Guillotine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Guillotine. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/evmts/guillotine/internal/vm"
	"github.com/evmts/guillotine/log"
	"github.com/evmts/guillotine/params"
	goerrors "github.com/evmts/guillotine/pkg/errors"
)

const usageText = `evmrun [options]

Runs a sequence of EVM bytecode and prints its terminal status:

  evmrun --code 6001600101           inline hex-encoded bytecode
  evmrun --file program.hex          load hex-encoded bytecode from a file
  evmrun --code 60.. --gas 50000     set the initial gas limit
  evmrun --code 60.. --memory-limit 1048576   cap memory growth at 1 MiB`

func main() {
	app := &cli.App{
		Name:      "evmrun",
		Usage:     "standalone Guillotine EVM bytecode runner",
		UsageText: usageText,
		Version:   params.VersionWithMeta,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "code",
				Usage: "hex-encoded bytecode (0x prefix optional)",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "path to a file containing hex-encoded bytecode",
			},
			&cli.Uint64Flag{
				Name:  "gas",
				Usage: "initial gas limit",
				Value: 10_000_000,
			},
			&cli.StringFlag{
				Name:  "calldata",
				Usage: "hex-encoded call data (0x prefix optional)",
			},
			&cli.StringFlag{
				Name:  "log.level",
				Usage: "log level: trace, debug, info, warn, error, crit",
				Value: "info",
			},
			&cli.Uint64Flag{
				Name:  "memory-limit",
				Usage: "soft cap on memory growth, in bytes",
				Value: vm.DefaultMemoryLimit,
			},
			&cli.Uint64Flag{
				Name:  "initcode-limit",
				Usage: "cap on CREATE/CREATE2 initcode size, in bytes",
				Value: vm.DefaultInitcodeSizeLimit,
			},
		},
		Action:    run,
		Copyright: "Copyright 2026 The Guillotine Authors",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log.Init("", log.Config{Level: c.String("log.level"), Console: true})

	code, err := loadCode(c)
	if err != nil {
		return err
	}
	callData, err := decodeHex(c.String("calldata"))
	if err != nil {
		return goerrors.Wrap(err, "decoding --calldata")
	}

	bc, err := vm.Validate(code, false)
	if err != nil {
		return goerrors.Wrap(err, "validating bytecode")
	}
	plan := vm.Build(bc)

	log.Info("running bytecode", "bytes", len(code), "gas", c.Uint64("gas"))

	storage := vm.NewMapStorageHost()
	frame := vm.NewFrame(plan, c.Uint64("gas"), storage, vm.Address{}, vm.Address{}, uint256.Int{}, callData, false, nil, nil)
	frame.WithConfig(vm.Config{
		MemoryLimit:       c.Uint64("memory-limit"),
		InitcodeSizeLimit: c.Uint64("initcode-limit"),
	})
	defer frame.Release()

	status := frame.Run()

	fmt.Printf("status:        %s\n", status)
	fmt.Printf("gas remaining: %d\n", frame.Gas)
	if frame.Failure != nil {
		fmt.Printf("failure:       %s\n", frame.Failure)
	}
	if len(frame.ReturnData) > 0 {
		fmt.Printf("return data:   0x%s\n", hex.EncodeToString(frame.ReturnData))
	}
	if frame.Stack.Len() > 0 {
		fmt.Printf("top of stack:  0x%s\n", frame.Stack.Peek().Hex())
	}
	for _, entry := range frame.Logs {
		fmt.Printf("log: topics=%d data=%d bytes\n", len(entry.Topics), len(entry.Data))
	}

	return nil
}

func loadCode(c *cli.Context) ([]byte, error) {
	switch {
	case c.String("code") != "":
		code, err := decodeHex(c.String("code"))
		if err != nil {
			return nil, goerrors.Wrap(err, "decoding --code")
		}
		return code, nil
	case c.String("file") != "":
		raw, err := os.ReadFile(c.String("file"))
		if err != nil {
			return nil, goerrors.Wrap(err, "reading --file")
		}
		code, err := decodeHex(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, goerrors.Wrap(err, "decoding file contents")
		}
		return code, nil
	default:
		return nil, goerrors.ErrMissingArgument
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, goerrors.ErrInvalidHexInput
	}
	return b, nil
}
