package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"
)

// PositionSource is polled once per report for the camera eye position.
type PositionSource interface {
	Position() (x, y, z float32)
}

// Report is one debug overlay sample covering the frames since the previous report.
type Report struct {
	// FPS is the frame rate over Elapsed.
	FPS float64

	// Frames is the number of ticks counted in this window.
	Frames int

	// Elapsed is the wall time covered by this report.
	Elapsed time.Duration

	// Position is the camera eye position polled at the frame boundary that produced the report.
	Position [3]float32

	// HeapMB is the live heap size in megabytes.
	HeapMB float64

	// GCCount is the cumulative number of completed GC cycles.
	GCCount uint32
}

// Profiler tracks frame rate and reports it together with the camera position.
// Outputs reports to the logger, and to an optional handler, at a configurable interval.
type Profiler interface {
	// Tick should be called once per frame boundary.
	// When the update interval has elapsed a Report is built and dispatched off the calling thread.
	//
	// Returns:
	//   - Report: the report produced this tick, if any
	//   - bool: true if a report was produced this tick
	Tick() (Report, bool)

	// Flush blocks until every dispatched report has been handled.
	Flush()
}

type profilerImpl struct {
	mu *sync.Mutex

	source         PositionSource
	logger         *zap.Logger
	clock          func() time.Time
	updateInterval time.Duration
	handler        func(Report)
	readMemStats   bool
	metrics        *Metrics

	workers int
	pool    worker.DynamicWorkerPool
	pending sync.WaitGroup
	taskID  int

	frameCount int
	lastTime   time.Time
	lastFrame  time.Time
	memStats   runtime.MemStats
}

var _ Profiler = &profilerImpl{}

// NewProfiler creates a new Profiler polling source for the camera position.
// Update interval defaults to 1 second.
//
// Parameters:
//   - source: the camera whose position is reported (may be nil)
//   - options: functional options to configure the profiler
//
// Returns:
//   - Profiler: the newly created profiler instance
func NewProfiler(source PositionSource, options ...ProfilerBuilderOption) Profiler {
	p := &profilerImpl{
		mu:             &sync.Mutex{},
		source:         source,
		logger:         zap.NewNop(),
		clock:          time.Now,
		updateInterval: time.Second,
		readMemStats:   true,
		workers:        1,
	}
	for _, opt := range options {
		opt(p)
	}

	// One worker keeps reports ordered; the idle timeout lets it exit between reports.
	p.pool = worker.NewDynamicWorkerPool(p.workers, 16, 2*p.updateInterval)
	p.lastTime = p.clock()
	p.lastFrame = p.lastTime
	return p
}

func (p *profilerImpl) Tick() (Report, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	now := p.clock()
	if p.metrics != nil {
		p.metrics.observeFrame(now.Sub(p.lastFrame))
	}
	p.lastFrame = now
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return Report{}, false
	}

	r := Report{
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		Frames:  p.frameCount,
		Elapsed: elapsed,
	}
	if p.source != nil {
		r.Position[0], r.Position[1], r.Position[2] = p.source.Position()
	}
	if p.readMemStats {
		runtime.ReadMemStats(&p.memStats)
		r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
		r.GCCount = p.memStats.NumGC
	}

	p.frameCount = 0
	p.lastTime = now
	if p.metrics != nil {
		p.metrics.observeReport(r)
	}
	p.dispatch(r)
	return r, true
}

func (p *profilerImpl) Flush() {
	p.pending.Wait()
}

// dispatch hands a report to the worker pool. Caller must hold mu.
func (p *profilerImpl) dispatch(r Report) {
	p.pending.Add(1)
	id := p.taskID
	p.taskID++
	p.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer p.pending.Done()
			p.logger.Info("frame stats",
				zap.Float64("fps", r.FPS),
				zap.Int("frames", r.Frames),
				zap.Float32("x", r.Position[0]),
				zap.Float32("y", r.Position[1]),
				zap.Float32("z", r.Position[2]),
				zap.Float64("heap_mb", r.HeapMB),
				zap.Uint32("gc", r.GCCount),
			)
			if p.handler != nil {
				p.handler(r)
			}
			return nil, nil
		},
	})
}
