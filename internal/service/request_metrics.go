package service

import (
	"bytes"
	"strings"
	"sync"
	"time"

	promdto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/noah-isme/teaching-scheduler-api/pkg/host"
)

// Exposition metric names served by /api/metrics.
const (
	MetricUptime         = "app_uptime_seconds"
	MetricMemoryRSS      = "app_memory_rss_bytes"
	MetricHeapTotal      = "app_memory_heap_total_bytes"
	MetricHeapUsed       = "app_memory_heap_used_bytes"
	MetricRequestsTotal  = "app_http_requests_total"
	MetricRequestsByPath = "app_http_requests_by_path_total"
)

// ProcessReader exposes the live process readings the recorder needs.
type ProcessReader interface {
	Uptime() time.Duration
	Memory() host.MemoryUsage
}

// PathCount is the number of requests seen for one normalized path.
type PathCount struct {
	Path  string
	Count uint64
}

// MetricsSnapshot is a point-in-time copy of process readings and request counters.
type MetricsSnapshot struct {
	UptimeSeconds       float64
	ResidentMemoryBytes uint64
	HeapTotalBytes      uint64
	HeapUsedBytes       uint64
	RequestsTotal       uint64
	Paths               []PathCount
}

// MaxTrackedPaths bounds the number of distinct per-path series. Requests to
// further new paths are counted under OverflowPath.
const MaxTrackedPaths = 200

// OverflowPath collects requests to paths seen after MaxTrackedPaths was reached.
const OverflowPath = "other"

// RequestMetrics counts inbound requests per normalized path. Paths keep the
// order in which they were first seen. Each process keeps its own counters.
type RequestMetrics struct {
	process  ProcessReader
	maxPaths int

	mu    sync.Mutex
	total uint64
	order []string
	paths map[string]uint64
}

// NewRequestMetrics constructs an empty counter store reading process values from reader.
func NewRequestMetrics(reader ProcessReader) *RequestMetrics {
	return &RequestMetrics{process: reader, maxPaths: MaxTrackedPaths, paths: make(map[string]uint64)}
}

// RecordRequest counts one request. Any query string is stripped from path.
func (m *RequestMetrics) RecordRequest(path string) {
	path = NormalizePath(path)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	if _, seen := m.paths[path]; !seen {
		if len(m.order) >= m.maxPaths {
			path = OverflowPath
		}
		if _, seen := m.paths[path]; !seen {
			m.order = append(m.order, path)
		}
	}
	m.paths[path]++
}

// Reset zeroes every counter.
func (m *RequestMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total = 0
	m.order = nil
	m.paths = make(map[string]uint64)
}

// Snapshot reads process values fresh and copies the counters.
func (m *RequestMetrics) Snapshot() MetricsSnapshot {
	var snap MetricsSnapshot
	if m.process != nil {
		snap.UptimeSeconds = m.process.Uptime().Seconds()
		mem := m.process.Memory()
		snap.ResidentMemoryBytes = mem.RSS
		snap.HeapTotalBytes = mem.HeapTotal
		snap.HeapUsedBytes = mem.HeapUsed
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	snap.RequestsTotal = m.total
	snap.Paths = make([]PathCount, 0, len(m.order))
	for _, p := range m.order {
		snap.Paths = append(snap.Paths, PathCount{Path: p, Count: m.paths[p]})
	}
	return snap
}

// Render writes snap in the Prometheus text exposition format. The output
// depends only on snap. The per-path family is omitted until a path is seen.
func (m *RequestMetrics) Render(snap MetricsSnapshot) string {
	return RenderMetrics(snap)
}

// RenderMetrics is the stateless form of Render.
func RenderMetrics(snap MetricsSnapshot) string {
	families := []*promdto.MetricFamily{
		gaugeFamily(MetricUptime, "Process uptime in seconds", snap.UptimeSeconds),
		gaugeFamily(MetricMemoryRSS, "Resident set size in bytes", float64(snap.ResidentMemoryBytes)),
		gaugeFamily(MetricHeapTotal, "Heap memory obtained from the system in bytes", float64(snap.HeapTotalBytes)),
		gaugeFamily(MetricHeapUsed, "Heap memory in use in bytes", float64(snap.HeapUsedBytes)),
		counterFamily(MetricRequestsTotal, "Total number of HTTP requests", float64(snap.RequestsTotal)),
	}
	if len(snap.Paths) > 0 {
		byPath := &promdto.MetricFamily{
			Name: proto.String(MetricRequestsByPath),
			Help: proto.String("Total number of HTTP requests by path"),
			Type: promdto.MetricType_COUNTER.Enum(),
		}
		for _, pc := range snap.Paths {
			byPath.Metric = append(byPath.Metric, &promdto.Metric{
				Label:   []*promdto.LabelPair{{Name: proto.String("path"), Value: proto.String(pc.Path)}},
				Counter: &promdto.Counter{Value: proto.Float64(float64(pc.Count))},
			})
		}
		families = append(families, byPath)
	}

	var buf bytes.Buffer
	for _, mf := range families {
		// writes to a bytes.Buffer cannot fail and every family is well formed
		_, _ = expfmt.MetricFamilyToText(&buf, mf)
	}
	return buf.String()
}

// NormalizePath strips the query string and fragment from a request path.
func NormalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	return path
}

func gaugeFamily(name, help string, value float64) *promdto.MetricFamily {
	return &promdto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   promdto.MetricType_GAUGE.Enum(),
		Metric: []*promdto.Metric{{Gauge: &promdto.Gauge{Value: proto.Float64(value)}}},
	}
}

func counterFamily(name, help string, value float64) *promdto.MetricFamily {
	return &promdto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   promdto.MetricType_COUNTER.Enum(),
		Metric: []*promdto.Metric{{Counter: &promdto.Counter{Value: proto.Float64(value)}}},
	}
}
