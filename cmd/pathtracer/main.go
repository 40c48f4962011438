// Command pathtracer is the renderer's command-line entry point:
// resolve configuration, load a scene, start the worker pool, and run
// until interrupted. Grounded in the teacher's main.go (flag parsing,
// a Config struct, os.Exit(1) on setup failure), adapted to this
// repo's continuous-sampling scheduler instead of the teacher's fixed
// number of progressive passes.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avandyke/spectrace/pkg/color"
	"github.com/avandyke/spectrace/pkg/config"
	"github.com/avandyke/spectrace/pkg/logging"
	"github.com/avandyke/spectrace/pkg/pathtracer"
	"github.com/avandyke/spectrace/pkg/scene"
	"github.com/avandyke/spectrace/pkg/scheduler"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 on clean shutdown, 1 on scene
// load failure (spec.md section 6, "Exit codes"); a configuration error
// or a failure to write the output image also returns 1.
func run() int {
	logger := logging.Default()

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		logger.Printf("config: %v", err)
		return 1
	}

	sc, err := scene.LoadWithLogger(cfg.ScenePath, logger)
	if err != nil {
		logger.Printf("scene load failed: %v", err)
		return 1
	}

	tracer := pathtracer.New(sc, sc.Spectrum, color.NewCIE1931())
	img := scheduler.NewImage(cfg.Width, cfg.Height)
	task := &scheduler.Task{
		Camera: sc.Camera,
		Tracer: tracer,
		Image:  img,
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	logger.Printf("rendering %dx%d with %d worker(s) from %s", cfg.Width, cfg.Height, cfg.Workers, cfg.ScenePath)
	pool := scheduler.NewPool(cfg.Workers, task, sc.Spectrum.Count, time.Now().UnixNano())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Printf("stopping: waiting for in-flight samples to commit")
	pool.Stop()

	if err := writePPM(cfg, img); err != nil {
		logger.Printf("writing output: %v", err)
		return 1
	}

	return 0
}

// writePPM writes the image's current accumulated mean as a binary PPM
// (the simplest display format that needs no external codec), leaving
// tone-mapping and colorspace conversion to a presenter (spec.md section
// 6, "Image -> presenter").
func writePPM(cfg config.Config, img *scheduler.Image) error {
	f, err := os.Create("render.ppm")
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "P6\n%d %d\n255\n", cfg.Width, cfg.Height); err != nil {
		return err
	}

	row := make([]byte, cfg.Width*3)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			mean := img.Mean(y, x)
			row[x*3+0] = toByte(mean.X)
			row[x*3+1] = toByte(mean.Y)
			row[x*3+2] = toByte(mean.Z)
		}
		if _, err := f.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func toByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v * 255)
}
