// Package scheduler implements the tile scheduler: a fixed-size worker
// pool that continuously traces samples into a shared Image until
// stopped. Grounded in the teacher's pkg/renderer/worker_pool.go
// (channel-based WorkerPool/Worker lifecycle), with the fixed-tile-pass
// task model replaced by original_source/.../TraceTask.cpp's continuous
// self-requeuing task: each run traces one sample per pixel, commits,
// and enqueues its own replacement.
package scheduler

import (
	"sync"

	"github.com/avandyke/spectrace/pkg/core"
)

// Image accumulates per-pixel XYZ samples contributed by many workers.
// AddSamples is its only mutation point (spec.md section 4.3, "Commit")
// and is serialized by mu; accumulation is additive and commutative, so
// concurrent commits interleave in some order but never corrupt a pixel.
type Image struct {
	Width, Height int

	mu          sync.Mutex
	xyzSum      []core.Vec3
	sampleCount []int
}

// NewImage allocates a zeroed accumulator for a width x height image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:       width,
		Height:      height,
		xyzSum:      make([]core.Vec3, width*height),
		sampleCount: make([]int, width*height),
	}
}

// AddSamples commits one sample per pixel from color, a row-major
// width*height buffer. Every pixel's sample count increases by one,
// matching the contract that a task traces exactly one sample per
// pixel per run.
func (img *Image) AddSamples(color []core.Vec3) {
	img.mu.Lock()
	defer img.mu.Unlock()
	for i, c := range color {
		img.xyzSum[i] = img.xyzSum[i].Add(c)
		img.sampleCount[i]++
	}
}

// Mean returns the presenter-facing value of pixel (row, col): the
// accumulated XYZ divided by its sample count (spec.md section 6,
// "Image -> presenter"). A never-sampled pixel reports zero.
func (img *Image) Mean(row, col int) core.Vec3 {
	img.mu.Lock()
	defer img.mu.Unlock()
	i := row*img.Width + col
	n := img.sampleCount[i]
	if n == 0 {
		return core.Vec3{}
	}
	return img.xyzSum[i].Multiply(1 / float32(n))
}

// SampleCount returns the number of samples committed to pixel (row, col).
func (img *Image) SampleCount(row, col int) int {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.sampleCount[row*img.Width+col]
}

// TotalSamples returns the sum of every pixel's sample count. Since
// every commit increments every pixel by exactly one, this also equals
// Width*Height times the number of commits, which tests use to check
// that commits are linearizable (spec.md section 8).
func (img *Image) TotalSamples() int {
	img.mu.Lock()
	defer img.mu.Unlock()
	total := 0
	for _, n := range img.sampleCount {
		total += n
	}
	return total
}
