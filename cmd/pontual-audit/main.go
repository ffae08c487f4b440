// Command pontual-audit runs the reconciliation audit over stored records and prints the report
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"pontual/internal/core/heuristics"
	"pontual/internal/modkit"
	"pontual/internal/modkit/repokit"
	"pontual/internal/platform/config"
	"pontual/internal/platform/logger"
	"pontual/internal/platform/store"

	"pontual/internal/services/audit/domain"
	"pontual/internal/services/audit/export"
	auditmod "pontual/internal/services/audit/module"
	recordsmod "pontual/internal/services/records/module"
)

func main() {
	var (
		periodFlag = flag.String("period", "", "restrict to one period, MM/YYYY")
		employee   = flag.String("employee", "", "restrict to one employee name (exact)")
		asJSON     = flag.Bool("json", false, "print the report as JSON")
		xlsxOut    = flag.String("xlsx", "", "also write the report workbook to this path")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	l := logger.Get()

	filter, err := domain.ReportInput{Period: *periodFlag, Employee: *employee}.Filter()
	if err != nil {
		log.Fatalf("bad -period: %v", err)
	}

	st, err := store.Open(ctx, store.FromEnv(root, "pontual-audit"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)
	if st.PG == nil {
		l.Warn().Msg("SERVICE_PGSQL_DBURL not set; auditing an empty store")
	}

	pack, err := heuristics.FromConfig(root.Prefix("CORE_AUDIT_"))
	if err != nil {
		l.Fatal().Err(err).Msg("heuristics")
	}

	deps := modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH, Log: *l}

	rm := recordsmod.New(deps)
	am := auditmod.New(deps, modkit.WithPorts(auditmod.Needs{
		Reader:     modkit.MustPortsOf[recordsmod.Ports](rm).Reader,
		Heuristics: pack,
	}))
	if err := am.Init(ctx); err != nil {
		l.Fatal().Err(err).Msg("audit init")
	}

	rep, err := modkit.MustPortsOf[auditmod.Ports](am).Audit.Run(ctx, filter)
	if err != nil {
		l.Fatal().Err(err).Msg("audit failed")
	}

	if *xlsxOut != "" {
		b, err := export.Bytes(rep)
		if err != nil {
			l.Fatal().Err(err).Msg("xlsx export")
		}
		if err := os.WriteFile(*xlsxOut, b, 0o644); err != nil {
			l.Fatal().Err(err).Str("path", *xlsxOut).Msg("write xlsx")
		}
		l.Info().Str("path", *xlsxOut).Int("bytes", len(b)).Msg("workbook written")
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatal(err)
		}
		return
	}
	printText(os.Stdout, rep)
}

func printText(out io.Writer, rep domain.Report) {
	g := rep.Stats.Global
	fmt.Fprintf(out, "audit %s  heuristics v%d  %s\n", rep.RunID, rep.HeuristicsVersion, rep.GeneratedAt.Format("2006-01-02 15:04:05Z07:00"))
	if rep.Period != "" || rep.Employee != "" {
		fmt.Fprintf(out, "filter: period=%q employee=%q\n", rep.Period, rep.Employee)
	}
	fmt.Fprintf(out, "records %d  employees %d  periods %d  balance %s\n", g.Records, g.Employees, g.Periods, g.Balance)
	fmt.Fprintf(out, "duplicate groups %d (%d stale)  suspicious names %d\n\n", g.DuplicateGroups, g.StaleRecords, g.SuspiciousNames)

	if len(rep.Stats.Employees) > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EMPLOYEE\tPERIODS\tPREDICTED\tREALIZED\tBALANCE\tHOURS")
		for _, e := range rep.Stats.Employees {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
				e.EmployeeName, e.Periods, e.PredictedMinutes, e.RealizedMinutes, e.Balance, e.BalanceHours.StringFixed(2))
		}
		_ = w.Flush()
		fmt.Fprintln(out)
	}

	for _, grp := range rep.Duplicates.Groups {
		fmt.Fprintf(out, "duplicate %s %s\n", grp.Key.EmployeeName, grp.Key.Period)
		for _, m := range grp.Members {
			fmt.Fprintf(out, "  %-7s %s  %s  ingested %s\n",
				m.Status, m.Record.ID, m.Record.SourceFile, m.Record.IngestedAt.Format("2006-01-02 15:04"))
		}
	}

	for _, v := range rep.SuspiciousNames {
		reasons := make([]string, 0, len(v.Reasons))
		for _, r := range v.Reasons {
			reasons = append(reasons, string(r))
		}
		fmt.Fprintf(out, "suspicious %q  %s\n", v.Name, strings.Join(reasons, ","))
	}

	for _, n := range rep.Stats.Notes {
		fmt.Fprintf(out, "note %s %s: %s\n", n.Key.EmployeeName, n.Key.Period, n.Message)
	}
}
