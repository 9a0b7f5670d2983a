// Command headless runs the speg scene without a window: the world is stepped,
// frames are built and the draw calls go to a logging sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akmonengine/speg"
	"github.com/akmonengine/speg/config"
	"github.com/akmonengine/speg/input"
	"github.com/akmonengine/speg/internal/logging"
	"github.com/akmonengine/speg/render"
	"github.com/akmonengine/speg/vehicle"
	"github.com/akmonengine/speg/vm"
)

type options struct {
	configPath  string
	frames      int
	dt          float64
	reportEvery int
	throttle    bool
	brake       bool
	steer       float64
	simulate    bool
}

type report struct {
	frame     int
	stats     speg.Stats
	telemetry *vehicle.Telemetry
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML scene config; defaults when empty")
	flag.IntVar(&opts.frames, "frames", 600, "number of frames to run")
	flag.Float64Var(&opts.dt, "dt", 1.0/60.0, "seconds per frame")
	flag.IntVar(&opts.reportEvery, "report", 60, "log telemetry every N frames")
	flag.BoolVar(&opts.throttle, "throttle", false, "hold the throttle key")
	flag.BoolVar(&opts.brake, "brake", false, "hold the brake key")
	flag.Float64Var(&opts.steer, "steer", 0, "steering direction: negative left, positive right")
	flag.BoolVar(&opts.simulate, "simulate", false, "hold the camera-simulate key")
	flag.Parse()

	if !(opts.dt > 0) {
		fmt.Fprintf(os.Stderr, "-dt must be positive, got %v\n", opts.dt)
		os.Exit(2)
	}
	if opts.frames < 0 {
		fmt.Fprintf(os.Stderr, "-frames must not be negative, got %d\n", opts.frames)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configPath); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger = logger.With(zap.Stringer("run", uuid.New()))

	world := speg.NewWorld(cfg.Physics, logger.Named("world"))
	var car *vehicle.Car
	if cfg.Vehicle.Enabled {
		car, err = vehicle.NewCar(cfg.Vehicle.Spawn, vm.QuatIdent(), cfg.Vehicle.Params())
		if err != nil {
			return err
		}
		world.AddCar(car)
	}
	world.Events.Subscribe(speg.WHEEL_CONTACT_ENTER, func(e speg.Event) {
		logger.Debug("wheel touched down", zap.Stringer("wheel", e.(speg.WheelContactEnterEvent).Wheel))
	})

	scene, err := speg.NewScene(cfg, logger.Named("scene"))
	if err != nil {
		return err
	}

	sink := render.PlatformFunc(func(call *render.DrawCall, _ mgl32.Mat4) error {
		if ce := logger.Check(zap.DebugLevel, "draw"); ce != nil {
			ce.Write(zap.String("call", call.Name), zap.Int("instances", call.Count), zap.Bool("changed", call.Changed))
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reports := make(chan report, 4)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(reports)

		dt := float32(opts.dt)
		for frame := 1; frame <= opts.frames; frame++ {
			if err := ctx.Err(); err != nil {
				return nil
			}

			in := frameInput(opts)
			if car != nil {
				car.SetControls(vehicle.ControlsFromInput(in))
			}
			world.Step(dt)

			stats, err := scene.Frame(in, dt, world, sink)
			if err != nil {
				return fmt.Errorf("frame %d: %w", frame, err)
			}

			if opts.reportEvery > 0 && frame%opts.reportEvery == 0 {
				r := report{frame: frame, stats: stats}
				if car != nil {
					t := car.Telemetry()
					r.telemetry = &t
				}
				select {
				case reports <- r:
				case <-ctx.Done():
					return nil
				}
			}
		}
		return nil
	})

	g.Go(func() error {
		for r := range reports {
			fields := []zap.Field{
				zap.Int("frame", r.frame),
				zap.Int("rendered", r.stats.Rendered),
				zap.Int("culled", r.stats.Culled),
			}
			if r.telemetry != nil {
				fields = append(fields, zap.Object("car", r.telemetry))
			}
			logger.Info("report", fields...)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("done", zap.Int("frames", opts.frames))
	return nil
}

// frameInput maps the command-line flags onto held keys.
func frameInput(opts options) *input.State {
	in := input.NewState()
	if opts.throttle {
		in.Press(input.KeyThrottle)
	}
	if opts.brake {
		in.Press(input.KeyBrake)
	}
	switch {
	case opts.steer > 0:
		in.Press(input.KeySteerRight)
	case opts.steer < 0:
		in.Press(input.KeySteerLeft)
	}
	if opts.simulate {
		in.Press(input.KeyCameraSimulate)
	}
	return in
}
