package dto

// Health status values.
const (
	HealthStatusOK    = "ok"
	HealthStatusError = "error"
)

// Ping outcomes reported in the database block.
const (
	PingSuccess = "success"
	PingFailure = "failure"
	PingError   = "error"
)

// HealthResponse is the snapshot served by /api/health.
type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Version     string         `json:"version"`
	Uptime      float64        `json:"uptime"`
	Environment string         `json:"environment"`
	Database    DatabaseHealth `json:"database"`
	System      *SystemHealth  `json:"system,omitempty"`
	Process     *ProcessHealth `json:"process,omitempty"`
}

// DatabaseHealth reports the cached connection state and an optional live probe.
type DatabaseHealth struct {
	Status     string `json:"status"`
	Offline    bool   `json:"offline"`
	LastError  string `json:"lastError,omitempty"`
	PingResult string `json:"pingResult,omitempty"`
	PingError  string `json:"pingError,omitempty"`
	URL        string `json:"url,omitempty"`
}

// SystemHealth describes the host.
type SystemHealth struct {
	Platform           string     `json:"platform"`
	Arch               string     `json:"arch"`
	GoVersion          string     `json:"goVersion"`
	Hostname           string     `json:"hostname"`
	CPUs               int        `json:"cpus"`
	TotalMemory        uint64     `json:"totalMemory"`
	FreeMemory         uint64     `json:"freeMemory"`
	MemoryUsagePercent float64    `json:"memoryUsagePercent"`
	LoadAverage        [3]float64 `json:"loadAverage"`
}

// ProcessHealth describes the running process.
type ProcessHealth struct {
	PID    int           `json:"pid"`
	Memory ProcessMemory `json:"memory"`
}

// ProcessMemory is the process memory breakdown in bytes.
type ProcessMemory struct {
	RSS       uint64 `json:"rss"`
	HeapTotal uint64 `json:"heapTotal"`
	HeapUsed  uint64 `json:"heapUsed"`
	Sys       uint64 `json:"sys"`
}

// HealthErrorResponse is returned with HTTP 500 when the snapshot cannot be built.
type HealthErrorResponse struct {
	Status    string `json:"status"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}
