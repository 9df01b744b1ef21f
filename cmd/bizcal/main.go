package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"bizcal/internal/calendar"
	"bizcal/internal/config"
	"bizcal/internal/domain"
	"bizcal/internal/export"
	"bizcal/internal/httpapi"
	"bizcal/internal/hub"
	"bizcal/internal/render"
	"bizcal/internal/source"
	"bizcal/internal/util"
)

const version = "0.1.0"

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bizcal <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  check      Is a date a business day\n")
	fmt.Fprintf(os.Stderr, "  range      List business days or holidays in a range\n")
	fmt.Fprintf(os.Stderr, "  next       First business day after a date\n")
	fmt.Fprintf(os.Stderr, "  previous   First business day before a date\n")
	fmt.Fprintf(os.Stderr, "  offset     Move N business days from a date\n")
	fmt.Fprintf(os.Stderr, "  count      Count business days in a range\n")
	fmt.Fprintf(os.Stderr, "  show       Draw a calendar month grid\n")
	fmt.Fprintf(os.Stderr, "  export     Write a range to csv/json/parquet/sqlite\n")
	fmt.Fprintf(os.Stderr, "  calendars  List supported calendar codes\n")
	fmt.Fprintf(os.Stderr, "  serve      Run the HTTP API server\n")
	fmt.Fprintf(os.Stderr, "  version    Print the CLI version\n")
	fmt.Fprintf(os.Stderr, "\n")
}

func main() {
	flag.Usage = usage

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("bizcal %s\n", version)

	case "check":
		err = runCheck(os.Args[2:])
	case "range":
		err = runRange(os.Args[2:])
	case "next":
		err = runStep(os.Args[2:], calendar.NextBusinessDay)
	case "previous":
		err = runStep(os.Args[2:], calendar.PreviousBusinessDay)
	case "offset":
		err = runOffset(os.Args[2:])
	case "count":
		err = runCount(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "calendars":
		err = runCalendars()
	case "serve":
		err = runServe(os.Args[2:])

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "bizcal %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Shared flags
// ---------------------------------------------------------------------------

// calList collects repeated -cal kind:code flags.
type calList struct {
	keys []domain.Key
}

func (c *calList) String() string {
	parts := make([]string, len(c.keys))
	for i, k := range c.keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}

func (c *calList) Set(s string) error {
	kind, code, ok := strings.Cut(s, ":")
	if !ok || code == "" {
		return fmt.Errorf("want kind:code, got %q", s)
	}
	k, err := domain.ParseKind(kind)
	if err != nil {
		return err
	}
	c.keys = append(c.keys, domain.NewKey(k, code))
	return nil
}

// calFlags is the calendar selection shared by every query command.
type calFlags struct {
	cals   calList
	mode   string
	add    string
	remove string
}

func (cf *calFlags) register(fs *flag.FlagSet) {
	fs.Var(&cf.cals, "cal", "calendar as kind:code, repeatable (e.g. -cal country:US -cal exchange:XNYS)")
	fs.StringVar(&cf.mode, "mode", "intersection", "combination mode when several -cal are given: intersection or union")
	fs.StringVar(&cf.add, "add", "", "comma-separated dates to force closed")
	fs.StringVar(&cf.remove, "remove", "", "comma-separated holiday dates to force open")
}

// adapter resolves the selection through a fresh hub.
func (cf *calFlags) adapter() (calendar.Adapter, error) {
	if len(cf.cals.keys) == 0 {
		return nil, errors.New("at least one -cal is required")
	}

	h := hub.New()
	var (
		a   calendar.Adapter
		err error
	)
	if len(cf.cals.keys) == 1 {
		k := cf.cals.keys[0]
		a, err = h.Get(k.Kind, k.Code)
	} else {
		var mode calendar.Mode
		if mode, err = calendar.ParseMode(cf.mode); err != nil {
			return nil, err
		}
		a, err = h.Combine(cf.cals.keys, mode)
	}
	if err != nil {
		return nil, err
	}

	if cf.add == "" && cf.remove == "" {
		return a, nil
	}
	add, err := parseDateList(cf.add)
	if err != nil {
		return nil, fmt.Errorf("-add: %w", err)
	}
	remove, err := parseDateList(cf.remove)
	if err != nil {
		return nil, fmt.Errorf("-remove: %w", err)
	}
	return calendar.WithOverrides(a, add, remove), nil
}

func parseDateList(s string) ([]time.Time, error) {
	if s == "" {
		return nil, nil
	}
	var dates []time.Time
	for _, part := range strings.Split(s, ",") {
		d, err := domain.ParseDate(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func parseDateFlag(s, name string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("-%s is required (YYYY-MM-DD)", name)
	}
	return domain.ParseDate(s)
}

// ---------------------------------------------------------------------------
// Query commands
// ---------------------------------------------------------------------------

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var cf calFlags
	cf.register(fs)
	dateS := fs.String("date", "", "date to check (YYYY-MM-DD)")
	fs.Parse(args)

	a, err := cf.adapter()
	if err != nil {
		return err
	}
	d, err := parseDateFlag(*dateS, "date")
	if err != nil {
		return err
	}

	open, err := a.IsBusinessDay(d)
	if err != nil {
		return err
	}
	state := "closed"
	if open {
		state = "business day"
	}
	fmt.Printf("%s  %s (%s): %s\n", a.Name(), domain.FormatDate(d), d.Weekday(), state)
	return nil
}

func runRange(args []string) error {
	fs := flag.NewFlagSet("range", flag.ExitOnError)
	var cf calFlags
	cf.register(fs)
	startS := fs.String("start", "", "range start (YYYY-MM-DD)")
	endS := fs.String("end", "", "range end (YYYY-MM-DD)")
	holidays := fs.Bool("holidays", false, "list holidays instead of business days")
	fs.Parse(args)

	a, err := cf.adapter()
	if err != nil {
		return err
	}
	start, err := parseDateFlag(*startS, "start")
	if err != nil {
		return err
	}
	end, err := parseDateFlag(*endS, "end")
	if err != nil {
		return err
	}

	var days []time.Time
	if *holidays {
		days, err = a.Holidays(start, end)
	} else {
		days, err = a.BusinessDays(start, end)
	}
	if err != nil {
		return err
	}
	for _, d := range days {
		fmt.Printf("%s  %s\n", domain.FormatDate(d), d.Weekday())
	}
	return nil
}

func runStep(args []string, step func(calendar.Adapter, time.Time) (time.Time, error)) error {
	fs := flag.NewFlagSet("step", flag.ExitOnError)
	var cf calFlags
	cf.register(fs)
	dateS := fs.String("date", "", "starting date (YYYY-MM-DD)")
	fs.Parse(args)

	a, err := cf.adapter()
	if err != nil {
		return err
	}
	d, err := parseDateFlag(*dateS, "date")
	if err != nil {
		return err
	}

	res, err := step(a, d)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", domain.FormatDate(res), res.Weekday())
	return nil
}

func runOffset(args []string) error {
	fs := flag.NewFlagSet("offset", flag.ExitOnError)
	var cf calFlags
	cf.register(fs)
	dateS := fs.String("date", "", "starting date (YYYY-MM-DD)")
	n := fs.Int("n", 0, "business days to move, may be negative")
	fs.Parse(args)

	a, err := cf.adapter()
	if err != nil {
		return err
	}
	d, err := parseDateFlag(*dateS, "date")
	if err != nil {
		return err
	}

	res, err := calendar.OffsetBusinessDays(a, d, *n)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", domain.FormatDate(res), res.Weekday())
	return nil
}

func runCount(args []string) error {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	var cf calFlags
	cf.register(fs)
	startS := fs.String("start", "", "range start (YYYY-MM-DD)")
	endS := fs.String("end", "", "range end (YYYY-MM-DD)")
	fs.Parse(args)

	a, err := cf.adapter()
	if err != nil {
		return err
	}
	start, err := parseDateFlag(*startS, "start")
	if err != nil {
		return err
	}
	end, err := parseDateFlag(*endS, "end")
	if err != nil {
		return err
	}

	summary, err := render.Summary(a, start, end)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	var cf calFlags
	cf.register(fs)
	monthS := fs.String("month", "", "month to draw (YYYY-MM), default current")
	startS := fs.String("start", "", "range start (YYYY-MM-DD), overrides -month")
	endS := fs.String("end", "", "range end (YYYY-MM-DD)")
	fs.Parse(args)

	a, err := cf.adapter()
	if err != nil {
		return err
	}

	if *startS != "" || *endS != "" {
		start, err := parseDateFlag(*startS, "start")
		if err != nil {
			return err
		}
		end, err := parseDateFlag(*endS, "end")
		if err != nil {
			return err
		}
		out, err := render.RenderRange(a, start, end)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if *monthS != "" {
		t, err := time.ParseInLocation("2006-01", *monthS, time.UTC)
		if err != nil {
			return fmt.Errorf("-month: want YYYY-MM, got %q", *monthS)
		}
		year, month = t.Year(), t.Month()
	}
	out, err := render.RenderMonth(a, year, month)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var cf calFlags
	cf.register(fs)
	startS := fs.String("start", "", "range start (YYYY-MM-DD)")
	endS := fs.String("end", "", "range end (YYYY-MM-DD)")
	out := fs.String("out", "", "destination file (.csv, .json, .parquet, .db, .sqlite)")
	fs.Parse(args)

	a, err := cf.adapter()
	if err != nil {
		return err
	}
	start, err := parseDateFlag(*startS, "start")
	if err != nil {
		return err
	}
	end, err := parseDateFlag(*endS, "end")
	if err != nil {
		return err
	}
	if *out == "" {
		return errors.New("-out is required")
	}

	if err := export.Write(a, start, end, *out); err != nil {
		return err
	}
	fmt.Printf("wrote %s..%s of %s to %s\n",
		domain.FormatDate(start), domain.FormatDate(end), a.Name(), *out)
	return nil
}

func runCalendars() error {
	fmt.Println("exchanges:", strings.Join(source.SupportedExchanges(), " "))
	fmt.Println("countries:", strings.Join(source.SupportedCountries(), " "))
	fmt.Println("rfrs:     ", strings.Join(source.SupportedRFRs(), " "))
	return nil
}

// ---------------------------------------------------------------------------
// Server
// ---------------------------------------------------------------------------

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to YAML config (default: BIZCAL_CONFIG or built-in defaults)")
	fs.Parse(args)

	path := *cfgPath
	if path == "" {
		path = os.Getenv("BIZCAL_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	var opts []hub.Option
	if cfg.Alpaca.APIKey != "" {
		start, end, err := remoteWindow(cfg)
		if err != nil {
			return err
		}
		opts = append(opts, hub.WithAlpaca(hub.AlpacaCredentials{
			APIKey:    cfg.Alpaca.APIKey,
			APISecret: cfg.Alpaca.APISecret,
			BaseURL:   cfg.Alpaca.BaseURL,
		}, start, end))
		logger.Info("remote exchange source enabled",
			"start", domain.FormatDate(start), "end", domain.FormatDate(end))
	}

	srv := httpapi.NewServer(hub.New(opts...), logger)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("bizcal server listening", "addr", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

// remoteWindow reads the Alpaca session window from the config, defaulting
// to two years around today.
func remoteWindow(cfg *config.Config) (start, end time.Time, err error) {
	now := domain.DayOf(time.Now().UTC())
	start, end = now.AddDate(-1, 0, 0), now.AddDate(1, 0, 0)
	if cfg.Defaults.RemoteStart != "" {
		if start, err = domain.ParseDate(cfg.Defaults.RemoteStart); err != nil {
			return start, end, fmt.Errorf("defaults.remote_start: %w", err)
		}
	}
	if cfg.Defaults.RemoteEnd != "" {
		if end, err = domain.ParseDate(cfg.Defaults.RemoteEnd); err != nil {
			return start, end, fmt.Errorf("defaults.remote_end: %w", err)
		}
	}
	return start, end, nil
}
