package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"vmolist/internal"
	"vmolist/internal/catalog"
	"vmolist/internal/config"
	"vmolist/internal/connectors"
	"vmolist/internal/pipeline"
	"vmolist/internal/storage"
	"vmolist/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg)
	must(err)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	switch cmd {
	case "catalog:convert":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file (.xlsx|.xls|.csv|.html|.pdf|.eml)")
		inType := fs.String("type", "", "xlsx|csv|html|pdf|eml (default: from extension)")
		sheet := fs.String("sheet", cfg.SheetName, "sheet name (default: first sheet)")
		out := fs.String("out", cfg.CatalogPath, "output catalog json path")
		store := fs.Bool("store", cfg.StoreCatalog, "also store the catalog in the sqlite db")
		exportSkipped := fs.Bool("export-skipped", cfg.ExportSkipped, "write skipped rows to an xlsx report")
		_ = fs.Parse(os.Args[2:])
		must(cfg.Require("--input", *input))
		cfg.CatalogPath = *out
		cfg.ExportSkipped = *exportSkipped

		reader, err := connectors.NewFileReader(*input, *inType, *sheet)
		must(err)
		rules, err := config.LoadRules(cfg.RulesPath)
		must(err)

		var db *storage.DB
		if *store {
			db, err = storage.Open(cfg.DBPath)
			must(err)
			defer db.Close()
		}

		svc := pipeline.NewConversionService(db, cfg, rules, logger)
		res, err := svc.Run(ctx, reader, *input, reader.Type)
		must(err)
		fmt.Printf("converted %d items to %s (makes=%d models=%d skipped=%d run=%s)\n",
			res.Stats.Entries, res.CatalogPath, res.Stats.MakesKept, res.Stats.Models, len(res.Skipped), res.RunID)
		if res.SkippedReport != "" {
			fmt.Printf("skipped rows report: %s\n", res.SkippedReport)
		}
	case "catalog:audit":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file")
		inType := fs.String("type", "", "xlsx|csv|html|pdf|eml")
		sheet := fs.String("sheet", cfg.SheetName, "sheet name")
		out := fs.String("out", "", "optional xlsx report path")
		_ = fs.Parse(os.Args[2:])
		must(cfg.Require("--input", *input))

		rows := readRows(ctx, *input, *inType, *sheet)
		rules, err := config.LoadRules(cfg.RulesPath)
		must(err)
		report := pipeline.AuditMakes(rows, pipeline.NewRuleset(rules))

		fmt.Printf("KEPT MAKES (%d):\n", len(report.Kept))
		for _, n := range report.Kept {
			fmt.Printf("%s -> %s\n", n.Raw, n.Normalized)
		}
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("DROPPED MAKES (%d):\n", len(report.Dropped))
		for _, n := range report.Dropped {
			fmt.Println(n.Raw)
		}
		if *out != "" {
			must(pipeline.ExportAuditToXLSX(report, *out))
			fmt.Printf("audit written to %s\n", *out)
		}
	case "catalog:shared-codes":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		path := fs.String("catalog", cfg.CatalogPath, "catalog json path")
		limit := fs.Int("limit", cfg.SharedCodesLimit, "max codes to print")
		_ = fs.Parse(os.Args[2:])

		entries, err := catalog.ReadJSON(*path)
		must(err)
		shared := catalog.BuildIndex(entries).SharedCodes()
		if len(shared) == 0 {
			fmt.Println("no model codes repeat across different makes")
			return
		}
		fmt.Printf("found %d codes that repeat across different makes:\n", len(shared))
		for i, s := range shared {
			if i >= *limit {
				fmt.Printf("...and %d more\n", len(shared)-*limit)
				break
			}
			fmt.Printf("code %q appears in: %s\n", s.Code, strings.Join(s.MakeNames, ", "))
		}
	case "catalog:validate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		path := fs.String("catalog", cfg.CatalogPath, "catalog json path")
		_ = fs.Parse(os.Args[2:])

		blob, err := os.ReadFile(*path)
		must(err)
		problems, err := catalog.ValidateJSON(blob)
		must(err)
		if len(problems) == 0 {
			fmt.Println("all items valid")
			return
		}
		for _, p := range problems {
			logger.Warn("invalid catalog item", zap.Int("index", p.Index), zap.String("id", p.ID), zap.String("problem", p.Message))
		}
		must(fmt.Errorf("%w: %d problems", internal.ErrInvalidCatalog, len(problems)))
	case "sheet:find":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file")
		inType := fs.String("type", "", "xlsx|csv|html|pdf|eml")
		sheet := fs.String("sheet", cfg.SheetName, "sheet name")
		term := fs.String("term", "", "text to search for, case-insensitive")
		_ = fs.Parse(os.Args[2:])
		must(cfg.Require("--input", *input))
		must(cfg.Require("--term", *term))

		found := connectors.FindRows(readRows(ctx, *input, *inType, *sheet), *term)
		if len(found) == 0 {
			fmt.Printf("%q not found\n", *term)
			return
		}
		printRows(found)
	case "sheet:rows":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file")
		inType := fs.String("type", "", "xlsx|csv|html|pdf|eml")
		sheet := fs.String("sheet", cfg.SheetName, "sheet name")
		from := fs.Int("from", 1, "first row number")
		to := fs.Int("to", 51, "row number to stop before")
		_ = fs.Parse(os.Args[2:])
		must(cfg.Require("--input", *input))

		printRows(connectors.RowWindow(readRows(ctx, *input, *inType, *sheet), *from, *to))
	default:
		usage()
		os.Exit(1)
	}
}

func readRows(ctx context.Context, input, inType, sheet string) []internal.RawRow {
	reader, err := connectors.NewFileReader(input, inType, sheet)
	must(err)
	rows, err := reader.ReadRows(ctx)
	must(err)
	return rows
}

func printRows(rows []internal.RawRow) {
	for _, row := range rows {
		fmt.Printf("%6d  %-40s  %s\n", row.RowNumber, util.Truncate(row.Col0, 40), util.Truncate(row.Col1, 60))
	}
}

func usage() {
	fmt.Println("usage: vmolist <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:convert --input=VMO.xlsx [--type=xlsx] [--sheet=...] [--out=src/data/vmos.json] [--store] [--export-skipped]")
	fmt.Println("  catalog:audit --input=VMO.xlsx [--out=./out/audit.xlsx]")
	fmt.Println("  catalog:shared-codes [--catalog=src/data/vmos.json] [--limit=20]")
	fmt.Println("  catalog:validate [--catalog=src/data/vmos.json]")
	fmt.Println("  sheet:find --input=VMO.xlsx --term=ECONOLINE")
	fmt.Println("  sheet:rows --input=VMO.xlsx --from=1200 --to=1250")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
