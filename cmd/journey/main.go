// Command journey plays the descent soundscape in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pion/logging"
	"golang.org/x/sync/errgroup"

	"github.com/simukka/journey-soundscape/audio"
	"github.com/simukka/journey-soundscape/audio/native"
	"github.com/simukka/journey-soundscape/journey"
	"github.com/simukka/journey-soundscape/ui"
)

var (
	scheduleFlag = flag.String("schedule", audio.DefaultScheduleName, "schedule preset name or path to a schedule JSON file")
	listFlag     = flag.Bool("list", false, "list schedule presets and exit")
	durationFlag = flag.Duration("duration", journey.TotalDuration, "journey length")
	latencyFlag  = flag.Duration("latency", 100*time.Millisecond, "output buffer length")
	logFlag      = flag.String("log", "", "write engine logs to this file")
	debugFlag    = flag.Bool("debug", false, "log at debug level")
)

func loadSchedule(arg string) (*audio.Schedule, error) {
	if _, ok := audio.SchedulePresets[arg]; ok {
		return audio.GetSchedule(arg), nil
	}
	if !strings.HasSuffix(arg, ".json") {
		return nil, fmt.Errorf("unknown schedule %q (have %s)", arg, strings.Join(audio.ScheduleNames(), ", "))
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return audio.LoadSchedule(f)
}

// loggerFactory keeps engine logs off the terminal the UI draws on.
func loggerFactory(path string, debug bool) (logging.LoggerFactory, io.Closer, error) {
	level := logging.LogLevelWarn
	if debug {
		level = logging.LogLevelDebug
	}
	var w io.Writer = io.Discard
	var closer io.Closer = io.NopCloser(nil)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	}
	return &logging.DefaultLoggerFactory{
		Writer:          w,
		DefaultLogLevel: level,
		ScopeLevels:     map[string]logging.LogLevel{},
	}, closer, nil
}

func store() audio.Store {
	path, err := native.DefaultStorePath()
	if err != nil {
		log.Printf("volume will not persist: %v", err)
		return audio.NewMemoryStore()
	}
	return native.NewFileStore(path)
}

func run() error {
	flag.Parse()
	if *listFlag {
		for _, name := range audio.ScheduleNames() {
			fmt.Println(name)
		}
		return nil
	}

	schedule, err := loadSchedule(*scheduleFlag)
	if err != nil {
		return err
	}
	factory, logCloser, err := loggerFactory(*logFlag, *debugFlag)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logCloser.Close()

	sr := native.DefaultSampleRate
	tap := native.NewTap(8192)
	open := native.Factory(sr, *latencyFlag, tap)
	var output *native.Context
	audio.Configure(audio.Options{
		NewContext: func() (audio.Context, error) {
			c, err := open()
			if err != nil {
				return nil, err
			}
			output = c.(*native.Context)
			return c, nil
		},
		Store:         store(),
		LoggerFactory: factory,
		Schedule:      schedule,
	})
	engine := audio.Shared()
	defer func() {
		if output != nil {
			engine.SetPlaying(false)
			native.Shutdown(output)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	prog := tea.NewProgram(ui.NewModel(engine, journey.NewPlayhead(*durationFlag), tap, float64(sr)), tea.WithAltScreen())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case sig := <-signalCh:
			log.Printf("caught %s, shutting down", sig)
			prog.Quit()
		case <-ctx.Done():
		}
		return nil
	})
	return g.Wait()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
