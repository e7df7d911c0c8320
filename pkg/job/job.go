package job

import "fmt"

// job for the sampling worker: one video frame
type Frame struct {
	Idx int
}

func New(idx int) Frame {
	return Frame{Idx: idx}
}

func (j Frame) Print() string {
	return fmt.Sprintf("Job: Frame: %d", j.Idx)
}
