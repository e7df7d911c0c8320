package core

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	cfg "github.com/ledworks/go-leddat/pkg/config"
	p "github.com/ledworks/go-leddat/pkg/core/progress"
	"github.com/ledworks/go-leddat/pkg/dat"
	"github.com/ledworks/go-leddat/pkg/job"
	"github.com/ledworks/go-leddat/pkg/logger"
	"github.com/ledworks/go-leddat/pkg/scene"
	"github.com/ledworks/go-leddat/pkg/video"
	"github.com/ledworks/go-leddat/pkg/workers"
)

var log = logger.Log

// Convert runs the full pipeline: scene -> frames -> per-LED samples ->
// .dat file plus .txt summary.
func Convert(scenePath string) error {
	s, err := scene.Load(scenePath)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	frames, cleanup, err := collectFrames(s)
	if err != nil {
		return err
	}
	defer cleanup()

	if frames.Count() == 0 {
		return fmt.Errorf("no frames extracted from %s", s.Input)
	}
	log.Debugf("Frames: %d\n", frames.Count())

	d := dat.New()
	if s.TemplateHeader != "" {
		hdr, err := dat.ReadTemplateHeader(s.TemplateHeader)
		if err != nil {
			return err
		}
		if err := d.LoadTemplateHeader(hdr); err != nil {
			return err
		}
		log.Debugf("Template header loaded from %s\n", s.TemplateHeader)
	}
	for i, port := range s.Ports {
		if _, err := d.AddUniverse(port.LedCount); err != nil {
			return fmt.Errorf("port %d: %w", i, err)
		}
	}
	if err := d.SetNumFrames(frames.Count()); err != nil {
		return err
	}

	// ===== START WORKERS

	p.ProgressReset(frames.Count(), "Sampling... ")
	jobs := make(chan job.Frame)
	numCpu := runtime.NumCPU()

	w := workers.NewWorker(context.Background(), frames, s.SamplerPorts(), d)
	wg := sync.WaitGroup{}
	for i := 0; i <= numCpu; i++ {
		wg.Add(1)
		i := i
		go func() {
			w.WorkerSample(i, jobs)
			wg.Done()
		}()
	}

	for idx := 0; idx < frames.Count(); idx++ {
		// this will block untill available worker pick it up
		jobs <- job.New(idx)
		p.Add(1)
	}
	close(jobs)
	wg.Wait()
	p.Finish()
	log.Debug("All workers done")

	n, err := d.WriteFile(s.Output)
	if err != nil {
		return err
	}
	log.Infof("Wrote %s: %d bytes, %d universes, %d controllers, %d frames",
		s.Output, n, d.NumUniverses(), d.ControllerCount(), d.NumFrames())
	return nil
}

// Info prints the universe layout a scene would produce, without
// sampling anything.
func Info(scenePath string) error {
	s, err := scene.Load(scenePath)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}
	d := dat.New()
	for i, port := range s.Ports {
		if _, err := d.AddUniverse(port.LedCount); err != nil {
			return fmt.Errorf("port %d: %w", i, err)
		}
	}
	fmt.Print(d.Summary())
	fmt.Printf("Controllers: %d\n", d.ControllerCount())
	return nil
}

// ExtractHeader copies the 512-byte header of an existing .dat file so
// it can be referenced as template_header in a scene.
func ExtractHeader(datPath, outPath string) error {
	hdr, err := dat.ReadTemplateHeader(datPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, hdr, 0644); err != nil {
		return err
	}
	log.Infof("Header saved to %s", outPath)
	return nil
}

// collectFrames turns the scene input into a FrameSet. Videos are dumped
// to a tmp dir via ffmpeg and cleaned up by the returned func; stills
// are replayed in place.
func collectFrames(s *scene.Scene) (*video.FrameSet, func(), error) {
	if video.IsStill(s.Input) {
		return video.Still(s.Input, s.Frames), func() {}, nil
	}

	// setup progress bar async, otherwise it wont animate
	p.ProgressSpinner("Extracting frames... ")
	done := make(chan bool)
	go func(done <-chan bool) {
		ticker := time.NewTicker(time.Millisecond * 300)
		for {
			select {
			case <-ticker.C:
				p.Add(1) // spin
			case <-done:
				ticker.Stop()
				return
			}
		}
	}(done)

	err := video.ExtractFrames(s.Input, cfg.PathFramesDir, s.FPS)
	done <- true
	if err != nil {
		return nil, func() {}, fmt.Errorf("extracting frames: %w", err)
	}

	frames, err := video.Collect(cfg.PathFramesDir)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() {
		if err := os.RemoveAll(cfg.PathFramesDir); err != nil {
			log.Warnf("Error removing %s: %v", cfg.PathFramesDir, err)
		}
	}
	return frames, cleanup, nil
}
