// Command radsched drives a schedule build or a standalone validation run
// against a persisted schedule. Dispatch follows the run(args, stdin,
// stdout, stderr) int pattern: main only wires os.Args/os.Std* and converts
// the exit code, everything else is testable without touching the process.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"radsched/config"
	"radsched/domain"
	"radsched/external"
	"radsched/internal/obslog"
	"radsched/nf"
	"radsched/pipeline"
	"radsched/track"
	"radsched/validate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Exit codes: 0 ok, 1 validation findings at error severity, 2
// infeasibility, 3 I/O failure.
const (
	exitOK              = 0
	exitValidationError = 1
	exitInfeasible      = 2
	exitIOFailure       = 3
)

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitIOFailure
	}
	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "build":
		return runBuild(args[1:], stdout, stderr)
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return exitIOFailure
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: radsched <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build INPUT PREFS [--dry-run] [-o OUT] [-y YEAR] [-source json|postgres]  build a schedule")
	fmt.Fprintln(w, "  validate INPUT [-source json|postgres]                                    validate INPUT against an empty schedule")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "With -source postgres, the roster and staffing envelope are read from the")
	fmt.Fprintln(w, "roster mirror database instead of INPUT's bundle sections (INPUT still")
	fmt.Fprintln(w, "supplies the rotation catalog); -pg-host/-pg-port/-pg-user/-pg-password/")
	fmt.Fprintln(w, "-pg-dbname/-pg-sslmode configure the connection.")
}

// postgresFlags registers the roster-mirror connection flags shared by
// build and validate. Only consulted when -source=postgres.
func postgresFlags(fs *flag.FlagSet) *external.PostgresConfig {
	cfg := &external.PostgresConfig{}
	fs.StringVar(&cfg.Host, "pg-host", "localhost", "roster mirror host (postgres source only)")
	fs.IntVar(&cfg.Port, "pg-port", 5432, "roster mirror port (postgres source only)")
	fs.StringVar(&cfg.User, "pg-user", "", "roster mirror user (postgres source only)")
	fs.StringVar(&cfg.Password, "pg-password", "", "roster mirror password (postgres source only)")
	fs.StringVar(&cfg.DBName, "pg-dbname", "", "roster mirror database name (postgres source only)")
	fs.StringVar(&cfg.SSLMode, "pg-sslmode", "disable", "roster mirror sslmode (postgres source only)")
	return cfg
}

// loadRosterAndEnvelope resolves the roster and staffing envelope either
// from the already-decoded JSON bundle or, when source is "postgres", from
// the roster mirror database — overriding the bundle's Roster/Envelope
// sections with the mirror's data while keeping its rotation catalog, since
// PostgresRosterSource/PostgresEnvelopeSource have no catalog equivalent.
func loadRosterAndEnvelope(ctx context.Context, source string, pgCfg external.PostgresConfig, bundle external.Bundle, weeks int) ([]domain.Resident, *domain.Envelope, error) {
	switch source {
	case "", "json":
		return bundle.Roster, bundle.Envelope, nil
	case "postgres":
		db, err := external.OpenPostgres(pgCfg)
		if err != nil {
			return nil, nil, err
		}
		defer db.Close()
		residents, err := (external.PostgresRosterSource{DB: db}).LoadRoster(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load postgres roster: %w", err)
		}
		env, err := (external.PostgresEnvelopeSource{DB: db}).LoadEnvelope(ctx, weeks)
		if err != nil {
			return nil, nil, fmt.Errorf("load postgres envelope: %w", err)
		}
		return residents, env, nil
	default:
		return nil, nil, fmt.Errorf("unknown -source %q (want json or postgres)", source)
	}
}

func runBuild(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dryRun := fs.Bool("dry-run", false, "run the pipeline but do not write output")
	out := fs.String("o", "", "output file path (defaults to stdout)")
	year := fs.Int("y", 0, "target academic year (overrides the default config)")
	source := fs.String("source", "json", "roster/envelope source: json or postgres")
	pgCfg := postgresFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitIOFailure
	}
	if fs.NArg() < 2 {
		fmt.Fprintln(stderr, "build requires INPUT and PREFS file arguments")
		return exitIOFailure
	}
	inputPath, prefsPath := fs.Arg(0), fs.Arg(1)
	ctx := context.Background()

	inputFile, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return exitIOFailure
	}
	defer inputFile.Close()
	prefsFile, err := os.Open(prefsPath)
	if err != nil {
		fmt.Fprintf(stderr, "open preferences: %v\n", err)
		return exitIOFailure
	}
	defer prefsFile.Close()

	cfg := config.DefaultConfig
	cfg.TargetYear = *year
	cfg.COREBlock = 13

	bc, err := domain.DeriveBlockCalendar(cfg.TargetYear)
	if err != nil {
		fmt.Fprintf(stderr, "derive block calendar: %v\n", err)
		return exitIOFailure
	}

	bundle, err := external.LoadBundle(inputFile, bc.TotalWeeks())
	if err != nil {
		fmt.Fprintf(stderr, "load input bundle: %v\n", err)
		return exitIOFailure
	}
	roster, env, err := loadRosterAndEnvelope(ctx, *source, *pgCfg, bundle, bc.TotalWeeks())
	if err != nil {
		fmt.Fprintf(stderr, "load roster: %v\n", err)
		return exitIOFailure
	}
	bundle.Roster, bundle.Envelope = roster, env
	survey, err := (external.JSONSurveySource{R: prefsFile}).LoadSurvey(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "load preference survey: %v\n", err)
		return exitIOFailure
	}
	residents := external.ApplySurvey(bundle.Roster, survey)

	logger := obslog.NewWriterLogger(stderr, obslog.LevelInfo)
	in, err := buildPipelineInput(residents, bundle, bc, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "assemble pipeline input: %v\n", err)
		return exitIOFailure
	}

	result, err := pipeline.Run(in)
	if err != nil {
		fmt.Fprintf(stderr, "build: %v\n", err)
		return exitInfeasible
	}

	if !result.Report.OK() {
		reportFindings(stderr, result.Report)
		return exitValidationError
	}

	if *dryRun {
		fmt.Fprintln(stdout, "dry run: schedule is feasible, no output written")
		return exitOK
	}

	var sink external.ScheduleSink
	if *out == "" {
		sink = external.JSONScheduleSink{W: stdout}
	} else {
		outFile, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(stderr, "create output: %v\n", err)
			return exitIOFailure
		}
		defer outFile.Close()
		sink = external.JSONScheduleSink{W: outFile}
	}
	if err := sink.WriteSchedule(ctx, result.Grid, result.NF.Assignments); err != nil {
		fmt.Fprintf(stderr, "write schedule: %v\n", err)
		return exitIOFailure
	}

	return exitOK
}

// runValidate loads INPUT's roster, rotation catalog and staffing envelope
// (the same JSON fixture format build consumes, minus the preference survey)
// and runs the validator over an empty grid, an empty NF overlay and an
// empty requirement table. It does not read a built schedule's cells, so its
// findings are only those an empty schedule produces against the envelope
// and the NF rules.
func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	year := fs.Int("y", 0, "target academic year")
	source := fs.String("source", "json", "roster/envelope source: json or postgres")
	pgCfg := postgresFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitIOFailure
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "validate requires an INPUT file argument")
		return exitIOFailure
	}

	inputFile, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return exitIOFailure
	}
	defer inputFile.Close()

	bc, err := domain.DeriveBlockCalendar(*year)
	if err != nil {
		fmt.Fprintf(stderr, "derive block calendar: %v\n", err)
		return exitIOFailure
	}
	bundle, err := external.LoadBundle(inputFile, bc.TotalWeeks())
	if err != nil {
		fmt.Fprintf(stderr, "load input bundle: %v\n", err)
		return exitIOFailure
	}
	ctx := context.Background()
	roster, env, err := loadRosterAndEnvelope(ctx, *source, *pgCfg, bundle, bc.TotalWeeks())
	if err != nil {
		fmt.Fprintf(stderr, "load roster: %v\n", err)
		return exitIOFailure
	}
	bundle.Roster, bundle.Envelope = roster, env

	names := make([]string, 0, len(bundle.Roster))
	for _, r := range bundle.Roster {
		names = append(names, r.Name)
	}
	grid := domain.NewGrid(domain.SortedNames(names), bc.TotalWeeks())

	residents := make([]*domain.Resident, 0, len(bundle.Roster))
	for i := range bundle.Roster {
		residents = append(residents, &bundle.Roster[i])
	}

	reqs := domain.NewRequirementTable(nil)
	report := validate.Validate(residents, grid, bundle.Catalog, reqs, bundle.Envelope, bc, nfResultFor(residents), domain.DefaultNFRuleSet, obslog.Nop{})

	if !report.OK() {
		reportFindings(stderr, report)
		return exitValidationError
	}
	fmt.Fprintln(stdout, "ok")
	return exitOK
}

func nfResultFor(residents []*domain.Resident) nf.Result {
	assignments := make(map[string]map[int]domain.NightFloatKind, len(residents))
	for _, res := range residents {
		assignments[res.Name] = map[int]domain.NightFloatKind{}
	}
	return nf.Result{Assignments: assignments}
}

func reportFindings(w io.Writer, report validate.Report) {
	for _, f := range report.Findings {
		if f.Week >= 0 {
			fmt.Fprintf(w, "[%s] %s %s week %d: %s\n", f.Severity, f.Check, f.Resident, f.Week, f.Message)
		} else {
			fmt.Fprintf(w, "[%s] %s %s: %s\n", f.Severity, f.Check, f.Resident, f.Message)
		}
	}
}

// buildPipelineInput assembles a pipeline.Input from a loaded bundle. The
// R1/R2 track catalogs are single-base-sequence catalogs sized to the
// cohorts actually present in the roster; a program with more than one R1
// or R2 track variant wires its own track.Catalog instead of going through
// this driver.
func buildPipelineInput(residents []domain.Resident, bundle external.Bundle, bc *domain.BlockCalendar, cfg config.Config, logger obslog.Logger) (pipeline.Input, error) {
	ptrs := make([]*domain.Resident, 0, len(residents))
	var r1Count, r2Count int
	for i := range residents {
		ptrs = append(ptrs, &residents[i])
		switch residents[i].FuturePGY {
		case 1:
			r1Count++
		case 2:
			r2Count++
		}
	}
	if r1Count == 0 {
		r1Count = 1
	}
	if r2Count == 0 {
		r2Count = 1
	}

	r1Tracks, err := track.NewCatalog([]string{domain.CodeMsamp}, track.WithClassSize(r1Count))
	if err != nil {
		return pipeline.Input{}, err
	}
	r2Tracks, err := track.NewCatalog([]string{domain.CodeMnuc}, track.WithClassSize(r2Count))
	if err != nil {
		return pipeline.Input{}, err
	}

	return pipeline.Input{
		Residents: ptrs,
		Catalog:   bundle.Catalog,
		Reqs:      domain.NewRequirementTable(nil),
		Env:       bundle.Envelope,
		BC:        bc,
		R1Tracks:  r1Tracks,
		R2Tracks:  r2Tracks,
		NFRules:   domain.DefaultNFRuleSet,
		Cfg:       cfg,
		Logger:    logger,
	}, nil
}
