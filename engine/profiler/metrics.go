package profiler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes frame statistics as Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	frames         prometheus.Counter
	frameSeconds   prometheus.Histogram
	fps            prometheus.Gauge
	depthAllocated prometheus.Gauge
	depthReleased  prometheus.Gauge
	cameraPosition *prometheus.GaugeVec
}

// NewMetrics creates and registers the viewer collectors.
//
// Returns:
//   - *Metrics: the metrics set
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "viewer_frames_total",
			Help: "Frames ticked by the profiler",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "viewer_frame_seconds",
			Help:    "Time between consecutive frame boundaries",
			Buckets: []float64{1.0 / 240, 1.0 / 144, 1.0 / 120, 1.0 / 60, 1.0 / 30, 1.0 / 15, 0.25, 1},
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viewer_fps",
			Help: "Frame rate over the last report interval",
		}),
		depthAllocated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viewer_depth_targets_allocated",
			Help: "Per-frame depth targets allocated since start",
		}),
		depthReleased: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viewer_depth_targets_released",
			Help: "Per-frame depth targets released since start",
		}),
		cameraPosition: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viewer_camera_position",
			Help: "Camera eye position at the last report",
		}, []string{"axis"}),
	}
	m.registry.MustRegister(m.frames, m.frameSeconds, m.fps, m.depthAllocated, m.depthReleased, m.cameraPosition)
	return m
}

// Registry returns the registry holding the viewer collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveDepthTargets publishes the renderer's depth target accounting.
func (m *Metrics) ObserveDepthTargets(allocated, released uint64) {
	m.depthAllocated.Set(float64(allocated))
	m.depthReleased.Set(float64(released))
}

func (m *Metrics) observeFrame(frameTime time.Duration) {
	m.frames.Inc()
	if frameTime > 0 {
		m.frameSeconds.Observe(frameTime.Seconds())
	}
}

func (m *Metrics) observeReport(r Report) {
	m.fps.Set(r.FPS)
	m.cameraPosition.WithLabelValues("x").Set(float64(r.Position[0]))
	m.cameraPosition.WithLabelValues("y").Set(float64(r.Position[1]))
	m.cameraPosition.WithLabelValues("z").Set(float64(r.Position[2]))
}

// NewMetricsServer returns an HTTP server exposing m at /metrics. The caller starts and closes it.
//
// Parameters:
//   - addr: listen address, e.g. ":9090"
//   - m: the metrics to expose
//
// Returns:
//   - *http.Server: the unstarted server
func NewMetricsServer(addr string, m *Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
}
