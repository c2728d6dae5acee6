package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/evdnx/gator/api"
	"github.com/evdnx/gator/backtest"
	"github.com/evdnx/gator/catalog"
	"github.com/evdnx/gator/config"
	"github.com/evdnx/gator/executor"
	"github.com/evdnx/gator/logger"
	"github.com/evdnx/gator/store"
	"github.com/evdnx/gator/strategy"
	"github.com/evdnx/gator/types"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var (
	listCommand = &cli.Command{
		Action: list,
		Name:   "list",
		Usage:  "List catalog keys",
		Flags: []cli.Flag{
			SymbolFlag,
			SchemaFlag,
		},
	}
	showCommand = &cli.Command{
		Action:    show,
		Name:      "show",
		Usage:     "Print the record for a symbol and timeframe",
		ArgsUsage: "SYMBOL TIMEFRAME",
		Flags: []cli.Flag{
			SchemaFlag,
		},
	}
	validateCommand = &cli.Command{
		Action: validate,
		Name:   "validate",
		Usage:  "Build the catalog and report every invalid or duplicate record",
	}
	driftCommand = &cli.Command{
		Action: drift,
		Name:   "drift",
		Usage:  "Report symbol and timeframe pairs defined under both schemas",
	}
	serveCommand = &cli.Command{
		Action: serve,
		Name:   "serve",
		Usage:  "Serve the catalog read-only over HTTP",
		Flags: []cli.Flag{
			AddrFlag,
		},
	}
	pushCommand = &cli.Command{
		Action: push,
		Name:   "push",
		Usage:  "Write the file records to MongoDB; built-in records are not stored",
	}
	backtestCommand = &cli.Command{
		Action:    runBacktest,
		Name:      "backtest",
		Usage:     "Replay a csv through the Gator strategy on a paper account",
		ArgsUsage: "SYMBOL TIMEFRAME",
		Flags: []cli.Flag{
			CsvFlag,
			TicksFlag,
			EquityFlag,
		},
	}
)

// env is what every command needs: the configuration and a logger.
type env struct {
	cfg config.AppConfig
	log logger.Logger
}

func getEnv(ctx *cli.Context) (*env, error) {
	cfg, err := config.LoadAppConfig(ctx.String(ConfigFlag.Name))
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, errors.Wrap(err, "logger")
	}
	return &env{cfg: cfg, log: log}, nil
}

func (e *env) sync() {
	if s, ok := e.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

// builder collects the built-in records, the parameter files and, when
// fromStore is set and MongoDB is configured, the stored records.
func (e *env) builder(ctx *cli.Context, fromStore bool) (*catalog.Builder, error) {
	b := catalog.NewBuilder()
	if e.cfg.Catalog.Builtin {
		b = catalog.Builtin()
	}
	if dir := e.cfg.Catalog.Dir; dir != "" {
		n, err := catalog.LoadDir(b, dir, e.cfg.Catalog.Pattern)
		if err != nil {
			return nil, err
		}
		e.log.Info("catalog_files_loaded", logger.String("dir", dir), logger.Int("files", n))
	}
	if fromStore && e.cfg.Mongo.URI != "" {
		s, err := store.NewMongoStore(ctx.Context, e.cfg.Mongo)
		if err != nil {
			return nil, err
		}
		defer func() { _ = s.Close(ctx.Context) }()
		n, err := store.LoadInto(ctx.Context, s, b)
		if err != nil {
			return nil, err
		}
		e.log.Info("catalog_store_loaded", logger.String("database", e.cfg.Mongo.Database), logger.Int("records", n))
	}
	return b, nil
}

func (e *env) catalog(ctx *cli.Context) (*catalog.Catalog, error) {
	b, err := e.builder(ctx, true)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func pairArgs(ctx *cli.Context) (string, types.Timeframe, error) {
	if ctx.NArg() != 2 {
		return "", 0, fmt.Errorf("want SYMBOL TIMEFRAME, got %d arguments", ctx.NArg())
	}
	tf, err := types.ParseTimeframe(ctx.Args().Get(1))
	if err != nil {
		return "", 0, err
	}
	return ctx.Args().Get(0), tf, nil
}

func schemaFlag(ctx *cli.Context) (catalog.Schema, error) {
	s := ctx.String(SchemaFlag.Name)
	if s == "" {
		return "", nil
	}
	return catalog.ParseSchema(s)
}

func list(ctx *cli.Context) error {
	e, err := getEnv(ctx)
	if err != nil {
		return err
	}
	defer e.sync()
	c, err := e.catalog(ctx)
	if err != nil {
		return err
	}
	schema, err := schemaFlag(ctx)
	if err != nil {
		return err
	}
	symbol := ctx.String(SymbolFlag.Name)
	for _, k := range c.Keys() {
		if symbol != "" && k.Symbol != symbol {
			continue
		}
		if schema != "" && k.Schema != schema {
			continue
		}
		entry, _ := c.Lookup(k)
		fmt.Printf("%-24s %s\n", k, entry.Source)
	}
	return nil
}

func show(ctx *cli.Context) error {
	symbol, tf, err := pairArgs(ctx)
	if err != nil {
		return err
	}
	schema, err := schemaFlag(ctx)
	if err != nil {
		return err
	}
	e, err := getEnv(ctx)
	if err != nil {
		return err
	}
	defer e.sync()
	c, err := e.catalog(ctx)
	if err != nil {
		return err
	}
	if schema != "" {
		entry, ok := c.Lookup(catalog.Key{Symbol: symbol, Timeframe: tf, Schema: schema})
		if !ok {
			return fmt.Errorf("%w for %s %s %s", catalog.ErrNotFound, symbol, tf, schema)
		}
		return printJSON(entry)
	}
	entry, err := c.Resolve(symbol, tf)
	if err != nil {
		return errors.Wrap(err, "pass --schema to pick one")
	}
	return printJSON(entry)
}

func validate(ctx *cli.Context) error {
	e, err := getEnv(ctx)
	if err != nil {
		return err
	}
	defer e.sync()
	c, err := e.catalog(ctx)
	if err != nil {
		return err
	}
	counts := c.Count()
	fmt.Printf("%d records: %d config, %d sets\n", c.Len(), counts[catalog.SchemaConfig], counts[catalog.SchemaSets])
	for _, entry := range c.Entries() {
		if entry.Indicator != nil && !entry.Indicator.Ordered() {
			fmt.Printf("note: %s periods are not jaw > teeth > lips\n", entry.Key)
		}
	}
	if n := len(c.Collisions()); n > 0 {
		fmt.Printf("%d symbol/timeframe pairs exist under both schemas, see drift\n", n)
	}
	return nil
}

func drift(ctx *cli.Context) error {
	e, err := getEnv(ctx)
	if err != nil {
		return err
	}
	defer e.sync()
	c, err := e.catalog(ctx)
	if err != nil {
		return err
	}
	for _, col := range c.Collisions() {
		fmt.Printf("%s %s: %d fields differ\n", col.Symbol, col.Timeframe, len(col.Diffs))
		for _, d := range col.Diffs {
			fmt.Printf("  %s\n", d)
		}
	}
	return nil
}

func serve(ctx *cli.Context) error {
	e, err := getEnv(ctx)
	if err != nil {
		return err
	}
	defer e.sync()
	c, err := e.catalog(ctx)
	if err != nil {
		return err
	}
	addr := e.cfg.HTTP.Addr
	if a := ctx.String(AddrFlag.Name); a != "" {
		addr = a
	}
	return api.Serve(ctx.Context, addr, api.NewRouter(c, e.log), e.log)
}

func push(ctx *cli.Context) error {
	e, err := getEnv(ctx)
	if err != nil {
		return err
	}
	defer e.sync()
	b, err := e.builder(ctx, false)
	if err != nil {
		return err
	}
	c, err := b.Build()
	if err != nil {
		return err
	}
	s, err := store.NewMongoStore(ctx.Context, e.cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close(ctx.Context) }()
	entries := store.Pushable(c.Entries())
	if err := s.Save(ctx.Context, entries); err != nil {
		return err
	}
	e.log.Info("catalog_pushed", logger.String("collection", e.cfg.Mongo.Collection), logger.Int("records", len(entries)))
	return nil
}

func runBacktest(ctx *cli.Context) error {
	symbol, tf, err := pairArgs(ctx)
	if err != nil {
		return err
	}
	e, err := getEnv(ctx)
	if err != nil {
		return err
	}
	defer e.sync()
	c, err := e.catalog(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(ctx.String(CsvFlag.Name))
	if err != nil {
		return err
	}
	defer f.Close()

	rec := backtest.NewRecorder(executor.NewPaperExecutor(ctx.Float64(EquityFlag.Name), e.log))
	g, err := strategy.FromCatalog(c, symbol, tf, e.cfg.Trade, rec, e.log)
	if err != nil {
		return err
	}

	var rep backtest.Report
	if ctx.Bool(TicksFlag.Name) {
		ticks, err := backtest.ReadTicksCSV(f)
		if err != nil {
			return err
		}
		rep, err = backtest.RunTicks(ctx.Context, g, rec, symbol, ticks)
		if err != nil {
			return err
		}
	} else {
		bars, err := backtest.ReadBarsCSV(f)
		if err != nil {
			return err
		}
		rep, err = backtest.Run(ctx.Context, g, rec, symbol, bars)
		if err != nil {
			return err
		}
	}
	fmt.Println(rep)
	return nil
}
