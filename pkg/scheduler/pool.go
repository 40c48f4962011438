package scheduler

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/avandyke/spectrace/pkg/core"
	"github.com/avandyke/spectrace/pkg/pathtracer"
)

// Pool is the process-wide worker pool of spec.md section 4.3: a
// fixed number of workers pull Tasks from a shared queue; each run
// commits into the shared Image and enqueues its own replacement so
// sampling continues until Stop is called. Grounded in the teacher's
// pkg/renderer/worker_pool.go (channel-based WorkerPool/Worker with a
// sync.WaitGroup and a taskQueue channel, Start/Stop lifecycle).
type Pool struct {
	tasks   chan *Task
	stopCh  chan struct{}
	wg      sync.WaitGroup
	stopped atomic.Bool
}

// NewPool starts numWorkers workers (runtime.NumCPU() if numWorkers <=
// 0, per spec.md section 6's "worker_count default = hardware
// concurrency") continuously running task, with numWorkers copies of
// task seeded into the queue so every worker starts busy and the
// consume-one/produce-one requeue loop keeps numWorkers tasks in
// circulation. bins is the scene spectrum's bin count, used to size each
// worker's scratch buffers. masterSeed seeds every worker's independent
// PRNG stream as masterSeed + worker index, per spec.md section 5's
// "one instance per worker... never shared" requirement.
func NewPool(numWorkers int, task *Task, bins int, masterSeed int64) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	p := &Pool{
		tasks:  make(chan *Task, numWorkers),
		stopCh: make(chan struct{}),
	}
	// Seed one task per worker so every worker starts busy: Task carries
	// no per-run state (that lives in the worker's own scratch/color/rng
	// below), so the same *Task can be enqueued numWorkers times without
	// workers stepping on each other. A single seed task would leave the
	// other numWorkers-1 workers permanently blocked on <-p.tasks, since
	// the consume-one/produce-one requeue loop conserves the task count.
	for i := 0; i < numWorkers; i++ {
		p.tasks <- task
	}

	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.runWorker(int64(i), bins, masterSeed, task.Width*task.Height)
	}
	return p
}

// runWorker is a single worker's loop: pull a task, trace it into this
// worker's own scratch and color buffers, commit, and - unless stopped
// - resubmit the same task as its own replacement.
func (p *Pool) runWorker(index int64, bins int, masterSeed int64, pixels int) {
	defer p.wg.Done()

	rng := rand.New(rand.NewSource(masterSeed + index))
	scratch := pathtracer.NewScratch(bins)
	color := make([]core.Vec3, pixels)

	for {
		select {
		case task := <-p.tasks:
			task.Run(scratch, color, rng)
			if p.stopped.Load() {
				continue
			}
			select {
			case p.tasks <- task:
			case <-p.stopCh:
			}
		case <-p.stopCh:
			return
		}
	}
}

// Stop requests cooperative shutdown (spec.md section 4.3,
// "Termination"): in-flight tasks run to completion and commit once,
// but no task is resubmitted after the flag is observed. Stop blocks
// until every worker has exited.
func (p *Pool) Stop() {
	p.stopped.Store(true)
	close(p.stopCh)
	p.wg.Wait()
}
