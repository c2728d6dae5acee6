package main

import "github.com/urfave/cli/v2"

var (
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "gator.yaml",
		Usage:   "load configuration from `file`",
	}

	SchemaFlag = &cli.StringFlag{
		Name:    "schema",
		Aliases: []string{"s"},
		Usage:   "restrict to `schema` (config or sets)",
	}
	SymbolFlag = &cli.StringFlag{
		Name:  "symbol",
		Usage: "restrict to `symbol`",
	}
	CsvFlag = &cli.StringFlag{
		Name:     "csv",
		Usage:    "read bars or ticks from csv `file`",
		Required: true,
	}
	TicksFlag = &cli.BoolFlag{
		Name:  "ticks",
		Usage: "the csv holds time,bid,ask quotes instead of bars",
	}
	EquityFlag = &cli.Float64Flag{
		Name:  "equity",
		Value: 100000,
		Usage: "starting paper `equity`",
	}
	AddrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "listen `address`, overrides http.addr",
	}
)
