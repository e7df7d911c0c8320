package workers

import (
	"context"
	"fmt"
	"image"

	"github.com/ledworks/go-leddat/pkg/dat"
	"github.com/ledworks/go-leddat/pkg/job"
	"github.com/ledworks/go-leddat/pkg/logger"
	"github.com/ledworks/go-leddat/pkg/sampler"
	"github.com/ledworks/go-leddat/pkg/video"
)

var log = logger.Log

// Worker samples video frames into the DAT builder. Universe u of the
// output corresponds to ports[u]. Workers for distinct frames write into
// disjoint buffer ranges, so a pool may run them in parallel; the caller
// must not resize the builder while the pool is running.
type Worker struct {
	ctx    context.Context
	frames *video.FrameSet
	ports  []sampler.Port
	out    *dat.File
}

func NewWorker(ctx context.Context, frames *video.FrameSet, ports []sampler.Port, out *dat.File) *Worker {
	return &Worker{
		ctx:    ctx,
		frames: frames,
		ports:  ports,
		out:    out,
	}
}

func (w *Worker) WorkerSample(i int, jobs <-chan job.Frame) {
	name := fmt.Sprintf("WorkerSample #%d", i)
	log.Debugf("%s started\n", name)
	defer log.Debugf("%s finished\n", name)

	for {
		select {
		case <-w.ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			log.Debugf("%s got job %s\n", name, j.Print())
			img, err := w.frames.Load(j.Idx)
			if err != nil {
				log.Fatalf("\n%s Error loading frame %d: %v\n", name, j.Idx, err)
			}
			if err := w.sampleFrame(img, j.Idx); err != nil {
				log.Fatalf("\n%s Error sampling frame %d: %v\n", name, j.Idx, err)
			}
			log.Debugf("%s frame %d done\n", name, j.Idx)
		}
	}
}

func (w *Worker) sampleFrame(img image.Image, frame int) error {
	bounds := img.Bounds()
	for u, port := range w.ports {
		colors := sampler.SamplePort(img, port, bounds.Dx(), bounds.Dy())
		for led, c := range colors {
			if err := w.out.SetPixel(u, frame, led, c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}
	return nil
}
