package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/encodeous/routesim/core"
	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
	"github.com/spf13/cobra"
)

var (
	runEngines []string
	runTrace   bool
	runLogPath string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Computes and prints the routing table of every node",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if ok, _ := cmd.Flags().GetBool("verbose"); ok {
			level = slog.LevelDebug
		}
		logPath := runLogPath
		if logPath == "" {
			logPath = cfg.LogPath
		}
		logger, closer, err := core.NewLogger(os.Stderr, level, logPath, "")
		if err != nil {
			return err
		}
		defer closer.Close()

		var obs core.Observer = core.SlogObserver{Logger: logger}
		var stopTrace func()
		if runTrace {
			var tr *core.Tracer
			tr, stopTrace = startTrace(obs, cmd.ErrOrStderr())
			obs = tr
		}

		res, err := core.Simulate(*cfg, core.SimOptions{
			Engines:  runEngines,
			Observer: obs,
		})
		if stopTrace != nil {
			stopTrace()
		}
		if err != nil {
			return err
		}
		res.Write(cmd.OutOrStdout())

		logger.Debug("metrics", perf.Snapshot()...)
		return nil
	},
	GroupID: "sim",
}

type traceFlush struct{}

// startTrace prints every router event to w. The returned function waits until the events
// submitted so far have been printed, then stops the tracer.
func startTrace(next core.Observer, w io.Writer) (*core.Tracer, func()) {
	tr := core.NewTracer(next)
	ch := make(chan any, state.TraceBufferSize)
	tr.Register(ch)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for v := range ch {
			ev, ok := v.(core.TraceEvent)
			if !ok {
				return
			}
			sb := strings.Builder{}
			sb.WriteString(fmt.Sprintf("[trace] %s %s", ev.Event, ev.Desc))
			for i := 0; i+1 < len(ev.Args); i += 2 {
				sb.WriteString(fmt.Sprintf(" %v=%v", ev.Args[i], ev.Args[i+1]))
			}
			fmt.Fprintln(w, sb.String())
		}
	}()
	return tr, func() {
		// events are delivered in order, so the marker arrives last
		tr.Submit(traceFlush{})
		<-done
		tr.Unregister(ch)
		tr.Close()
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	runCmd.Flags().StringSliceVarP(&runEngines, "engines", "e", core.AllEngines, "Engines to run: ls, dv, pv")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "Print every router event")
	runCmd.Flags().StringVar(&runLogPath, "log-path", "", "Also write logs to this file, overrides log_path in the config")
}
