package scheduler

import (
	"math/rand"

	"github.com/avandyke/spectrace/pkg/core"
	"github.com/avandyke/spectrace/pkg/pathtracer"
	"github.com/avandyke/spectrace/pkg/scene"
)

// Task renders one full image's worth of samples - one sample per
// pixel - and commits into a shared Image, per spec.md section 4.3's
// task lifecycle. A Task itself carries only immutable, shared
// references; the scratch buffers it traces into belong to whichever
// Worker runs it, matching the "thread-local scratch, reused across
// tasks" design note (spec.md section 9) without tying a buffer's
// lifetime to one task instance, the way the original's thread_local
// statics outlive any single TraceTask object.
type Task struct {
	Camera *scene.Camera
	Tracer *pathtracer.Tracer
	Image  *Image
	Width  int
	Height int
}

// Run traces one sample per pixel into color (zeroed first; must be
// sized Width*Height and owned by the calling worker), then commits the
// result into the shared Image.
func (t *Task) Run(scratch *pathtracer.Scratch, color []core.Vec3, rng *rand.Rand) {
	for i := range color {
		color[i] = core.Vec3{}
	}

	for row := 0; row < t.Height; row++ {
		for col := 0; col < t.Width; col++ {
			xi1, xi2 := rng.Float32(), rng.Float32()
			ray := t.Camera.Ray(row, col, t.Width, t.Height, xi1, xi2)
			color[row*t.Width+col] = t.Tracer.Trace(ray, scratch, rng)
		}
	}

	t.Image.AddSamples(color)
}
