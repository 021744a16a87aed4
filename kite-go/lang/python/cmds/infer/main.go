package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	arg "github.com/alexflint/go-arg"
	humanize "github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonanalyzer"
	"github.com/kiteco/pyeval/kite-go/lang/python/pythonenv"
	"github.com/kiteco/pyeval/kite-golib/kitectx"
	"github.com/kiteco/pyeval/kite-golib/kitelog"
	"github.com/kiteco/pyeval/kite-golib/status"
	"go.uber.org/zap/zapcore"
)

func fail(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

type args struct {
	Files   []string      `arg:"positional,required" help:"python files to analyze"`
	SysPath []string      `arg:"--syspath" help:"import roots, searched in order"`
	Config  string        `help:"YAML configuration file"`
	Watch   bool          `help:"analyze again whenever a python file next to the inputs changes"`
	Stats   bool          `help:"print evaluator statistics after each analysis"`
	Timeout time.Duration `help:"abandon a file whose analysis takes longer than this"`
	Verbose bool          `arg:"-v" help:"log at debug level"`
}

func (args) Description() string {
	return "infer prints the values of the top level names of python files"
}

func main() {
	var a args
	arg.MustParse(&a)

	logger := kitelog.Basic
	if a.Verbose {
		logger = kitelog.New(os.Stderr, zapcore.DebugLevel)
	}
	defer logger.Sync()

	cfg := pythonanalyzer.DefaultConfig()
	if a.Config != "" {
		var err error
		cfg, err = pythonanalyzer.LoadConfigFile(a.Config)
		fail(err)
	}
	cfg, err := cfg.WithEnv()
	fail(err)

	var files []string
	for _, f := range a.Files {
		abs, err := filepath.Abs(f)
		fail(err)
		files = append(files, filepath.ToSlash(abs))
	}
	if len(a.SysPath) > 0 {
		cfg.SysPath = a.SysPath
	}
	if len(cfg.SysPath) == 0 {
		cfg.SysPath = dirs(files)
	}

	opts := runOptions{timeout: a.Timeout}
	if a.Stats {
		opts.aborts = kitectx.InitializeMetrics()
	}
	analyze(os.Stdout, cfg, files, logger, opts)
	if a.Watch {
		fail(watch(dirs(files), func() {
			analyze(os.Stdout, cfg, files, logger, opts)
		}, logger))
	}
}

type runOptions struct {
	// timeout bounds the analysis of each file, zero for no bound
	timeout time.Duration
	// aborts enables the statistics report when set
	aborts *kitectx.Metrics
}

func (o runOptions) run(f func(kitectx.Context) error) error {
	if o.timeout <= 0 {
		return f(kitectx.Background())
	}
	return kitectx.Background().WithTimeout(o.timeout, f)
}

// analyze runs a fresh session over the files. Sessions are not reused since modules
// are never invalidated.
func analyze(w io.Writer, cfg pythonanalyzer.Config, files []string, logger *kitelog.Logger, opts runOptions) {
	logger = logger.WithDurations()

	session, err := pythonanalyzer.NewSession(cfg, pythonenv.OSFileSystem{}, logger)
	if err != nil {
		logger.Warnf("error creating session: %v", err)
		return
	}
	for _, f := range files {
		stop := logger.Durations.Time(filepath.Base(f))
		err := opts.run(func(ctx kitectx.Context) error {
			mod, err := session.Load(ctx, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s (%s)\n", mod.Name(), f)
			for _, b := range session.TopLevel(ctx, mod) {
				fmt.Fprintf(w, "  %s: %s\n", b.Name, pythonanalyzer.SetString(b.Values))
			}
			return nil
		})
		stop()
		if err != nil {
			logger.Warnf("%s: %v", f, err)
		}
	}
	logger.Durations.Flush(logger)

	if opts.aborts != nil {
		if err := status.Write(w); err != nil {
			logger.Warnf("error writing stats: %v", err)
		}
		if err := writeAborts(w, opts.aborts.Read()); err != nil {
			logger.Warnf("error writing stats: %v", err)
		}
	}
}

// writeAborts renders the abort counts in the layout of the status report
func writeAborts(w io.Writer, m kitectx.MetricsSnapshot) error {
	tw := tabwriter.NewWriter(w, 4, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "[aborts]\n")
	for _, row := range []struct {
		name  string
		count uint64
	}{
		{"call limit", m.CallLimit},
		{"canceled", m.Canceled},
		{"deadline exceeded", m.DeadlineExceeded},
		{"other", m.Other},
	} {
		fmt.Fprintf(tw, "  %s\t%s\n", row.name, humanize.Comma(int64(row.count)))
	}
	return tw.Flush()
}

// watch calls run after every change to a python file in dirs. It returns only if the
// watcher fails.
func watch(dirs []string, run func(), logger *kitelog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".py") || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Printf("%s changed", ev.Name)
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// dirs lists the distinct directories of files, in order
func dirs(files []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range files {
		d := filepath.ToSlash(filepath.Dir(f))
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
