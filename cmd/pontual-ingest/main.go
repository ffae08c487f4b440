// Command pontual-ingest extracts attendance documents from files and directories
// and appends the resulting period records to the record store
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"

	"pontual/internal/adapters/extract"
	"pontual/internal/core/heuristics"
	"pontual/internal/modkit"
	"pontual/internal/modkit/repokit"
	"pontual/internal/platform/config"
	"pontual/internal/platform/logger"
	"pontual/internal/platform/store"

	"pontual/internal/services/ingest/domain"
	ingestmod "pontual/internal/services/ingest/module"
	recordsmod "pontual/internal/services/records/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	var (
		workers = flag.Int("workers", 0, "documents processed concurrently (default CORE_INGEST_WORKERS)")
		dryRun  = flag.Bool("dry-run", false, "extract and validate without writing to the database")
		asJSON  = flag.Bool("json", false, "print the batch result as JSON")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: pontual-ingest [flags] <file|dir>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	l := logger.Get()

	if *workers > 0 {
		mustSetEnv("CORE_INGEST_WORKERS", strconv.Itoa(*workers))
	}

	files, err := collect(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatalf("no supported documents (%v) under %v", extract.Exts, flag.Args())
	}

	st := &store.Store{}
	if !*dryRun {
		if st, err = store.Open(ctx, store.FromEnv(root, "pontual-ingest"), store.WithLogger(*l)); err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
		if p, ok := st.PG.(store.Pinger); ok {
			repokit.MustPing(ctx, "pg", p)
		} else {
			l.Warn().Msg("SERVICE_PGSQL_DBURL not set; records are kept in memory only")
		}
	}

	pack, err := heuristics.FromConfig(root.Prefix("CORE_AUDIT_"))
	if err != nil {
		l.Fatal().Err(err).Msg("heuristics")
	}

	deps := modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH, Log: *l}

	rm := recordsmod.New(deps)
	if err := rm.Init(ctx); err != nil {
		l.Fatal().Err(err).Msg("records init")
	}
	im := ingestmod.New(deps, modkit.WithPorts(ingestmod.Needs{
		Writer:   modkit.MustPortsOf[recordsmod.Ports](rm).Writer,
		Calendar: pack.Calendar(),
	}))

	res := modkit.MustPortsOf[ingestmod.Ports](im).Ingest.IngestFiles(ctx, files)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatal(err)
		}
	} else {
		printText(os.Stdout, res)
	}
	if !res.OK() {
		os.Exit(1)
	}
}

// collect expands args into supported documents; directories are walked recursively
func collect(args []string) ([]domain.File, error) {
	var paths []string
	for _, a := range args {
		fi, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			paths = append(paths, a)
			continue
		}
		err = filepath.WalkDir(a, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && extract.Supported(p) {
				paths = append(paths, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(paths)

	out := make([]domain.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.File{Name: filepath.Base(p), Data: data})
	}
	return out, nil
}

func printText(w io.Writer, res domain.BatchResult) {
	for _, o := range res.Outcomes {
		switch o.Status {
		case domain.StatusOK:
			fmt.Fprintf(w, "ok      %s  %s %s  record=%s\n", o.SourceFile, o.EmployeeName, o.Period, o.RecordID)
		default:
			fmt.Fprintf(w, "failed  %s\n", o.SourceFile)
			for _, e := range o.Errors {
				if e.Field != "" {
					fmt.Fprintf(w, "        %s: %s\n", e.Field, e.Message)
				} else {
					fmt.Fprintf(w, "        %s\n", e.Message)
				}
			}
		}
		for _, wr := range o.Warnings {
			fmt.Fprintf(w, "        warning: %s\n", wr)
		}
		if c := o.Calendar; c != nil && !c.Aligned() {
			fmt.Fprintf(w, "        calendar: %d expected, %d observed, %d missing, %d extra\n",
				c.ExpectedWorkingDays(), c.ObservedDays(), len(c.Missing), len(c.Extra))
		}
	}
	fmt.Fprintf(w, "batch %s: %d ingested, %d failed\n", res.BatchID, res.Ingested, res.Failed)
}
