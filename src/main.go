package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"liftsim/lib/driver-go/elevio"
	"liftsim/lib/network-go/network/bcast"
	"liftsim/src/config"
	"liftsim/src/console"
	"liftsim/src/elev"
	"liftsim/src/network"
	"liftsim/src/panel"
	"liftsim/src/sim"
	"liftsim/src/timer"
	"liftsim/src/types"
)

type options struct {
	configPath  string
	envPath     string
	floors      int
	lifts       int
	logLevel    string
	logFile     string
	panelAddr   string
	callPort    int
	eventAddr   string
	interactive bool
	send        string
	sendAddr    string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&opts.envPath, "env", "", "env file with LIFTSIM_* overrides")
	flag.IntVar(&opts.floors, "floors", 0, "number of floors")
	flag.IntVar(&opts.lifts, "lifts", 0, "number of lifts")
	flag.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	flag.StringVar(&opts.logFile, "log-file", "", "also write the log to this file")
	flag.StringVar(&opts.panelAddr, "panel", "", "address of the elevator server providing hall buttons")
	flag.IntVar(&opts.callPort, "call-port", 0, "UDP port to accept hall calls on")
	flag.StringVar(&opts.eventAddr, "event-addr", "", "UDP address to publish events to")
	flag.BoolVar(&opts.interactive, "interactive", false, "read hall calls from the keyboard")
	flag.StringVar(&opts.send, "send", "", "send one call such as 3:up to -send-addr and exit")
	flag.StringVar(&opts.sendAddr, "send-addr", "localhost:20017", "UDP address of a running simulation")
	flag.Parse()

	if err := run(opts); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Exiting", "err", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath, opts.envPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, opts)

	closeLog, err := elev.InitLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.send != "" {
		return sendCall(ctx, cfg, opts.sendAddr, opts.send)
	}

	clock := timer.NewReal()
	defer clock.Stop()
	s, err := sim.New(cfg, clock)
	if err != nil {
		return err
	}
	s.Subscribe(sim.LogNotifier{})

	if cfg.EventAddr != "" {
		conn, err := bcast.Dial(cfg.EventAddr)
		if err != nil {
			return err
		}
		defer conn.Close()
		s.Subscribe(network.NewPublisher(ctx, conn, "sim-"+uuid.NewString(), cfg.MsgRepetitions, cfg.MsgInterval))
	}

	if cfg.PanelAddr != "" {
		driver, err := elevio.Dial(cfg.PanelAddr)
		if err != nil {
			return err
		}
		defer driver.Close()
		if err := panel.ClearLamps(driver, cfg.NumFloors); err != nil {
			return err
		}
		s.Subscribe(panel.NewLights(driver))

		presses := make(chan elevio.ButtonEvent)
		go func() {
			if err := driver.PollButtons(ctx, cfg.NumFloors, cfg.SensorPollRate, presses); err != nil && ctx.Err() == nil {
				slog.Error("Hall panel lost", "err", err)
			}
		}()
		go panel.Forward(ctx, presses, s)
	}

	if cfg.CallPort != 0 {
		conn, err := bcast.Listen(cfg.CallPort)
		if err != nil {
			return err
		}
		defer conn.Close()
		go network.ServeCalls(ctx, conn, s)
	}

	if opts.interactive {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			defer cancel()
			if err := console.Run(ctx, s, os.Stdout); err != nil {
				slog.Error("Console stopped", "err", err)
			}
		}()
	}
	return s.Run(ctx, clock.C())
}

// applyFlags lets flags that were set on the command line win over the file
// and environment.
func applyFlags(cfg *config.Config, opts options) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "floors":
			cfg.NumFloors = opts.floors
		case "lifts":
			cfg.NumCars = opts.lifts
		case "log-level":
			cfg.LogLevel = opts.logLevel
		case "log-file":
			cfg.LogFile = opts.logFile
		case "panel":
			cfg.PanelAddr = opts.panelAddr
		case "call-port":
			cfg.CallPort = opts.callPort
		case "event-addr":
			cfg.EventAddr = opts.eventAddr
		}
	})
}

func sendCall(ctx context.Context, cfg config.Config, addr, arg string) error {
	call, err := parseCall(arg)
	if err != nil {
		return err
	}
	conn, err := bcast.Dial(addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	sender := network.NewCallSender(ctx, conn, "cli-"+uuid.NewString(), cfg.MsgRepetitions, cfg.MsgInterval)
	if err := sender.Send(ctx, call); err != nil {
		return err
	}
	sender.Close()
	slog.Info("Call sent", "call", elev.FormatCall(call), "to", addr)
	return nil
}

// parseCall reads "floor:direction", for example "3:up" or "1:d".
func parseCall(s string) (types.HallCall, error) {
	floorStr, dirStr, ok := strings.Cut(s, ":")
	if !ok {
		return types.HallCall{}, fmt.Errorf("call %q is not floor:direction", s)
	}
	floor, err := strconv.Atoi(strings.TrimSpace(floorStr))
	if err != nil {
		return types.HallCall{}, fmt.Errorf("call %q: %w", s, err)
	}
	dir, err := types.ParseDirection(dirStr)
	if err != nil {
		return types.HallCall{}, fmt.Errorf("call %q: %w", s, err)
	}
	if dir == types.DirNone {
		return types.HallCall{}, fmt.Errorf("call %q has no direction", s)
	}
	return types.HallCall{Floor: floor, Dir: dir}, nil
}
