// Package host reads process and operating system facts for health and
// metrics reporting. Every read degrades to zero values instead of failing.
package host

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// MemoryUsage is the process memory breakdown in bytes.
type MemoryUsage struct {
	RSS       uint64
	HeapTotal uint64
	HeapUsed  uint64
	Sys       uint64
}

// Info describes the host the process runs on.
type Info struct {
	Platform    string
	Arch        string
	GoVersion   string
	Hostname    string
	CPUs        int
	TotalMemory uint64
	FreeMemory  uint64
	LoadAverage [3]float64
}

// Probe reads live values from the running process and host.
type Probe struct {
	pid       int
	startedAt time.Time
	proc      *process.Process
	now       func() time.Time
}

// NewProbe captures the process handle and its start time.
func NewProbe() *Probe {
	p := &Probe{pid: os.Getpid(), startedAt: time.Now(), now: time.Now}
	if proc, err := process.NewProcess(int32(p.pid)); err == nil {
		p.proc = proc
		if created, err := proc.CreateTime(); err == nil && created > 0 {
			p.startedAt = time.UnixMilli(created)
		}
	}
	return p
}

// PID returns the current process id.
func (p *Probe) PID() int {
	return p.pid
}

// Uptime returns how long the process has been running.
func (p *Probe) Uptime() time.Duration {
	d := p.now().Sub(p.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Memory reads the process memory breakdown. Heap figures come from the Go
// runtime, RSS from the operating system.
func (p *Probe) Memory() MemoryUsage {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	usage := MemoryUsage{
		HeapTotal: ms.HeapSys,
		HeapUsed:  ms.HeapAlloc,
		Sys:       ms.Sys,
	}
	if p.proc != nil {
		if info, err := p.proc.MemoryInfo(); err == nil && info != nil {
			usage.RSS = info.RSS
		}
	}
	return usage
}

// Info reads host facts.
func (p *Probe) Info() Info {
	info := Info{
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		CPUs:      runtime.NumCPU(),
	}

	if stat, err := host.Info(); err == nil && stat != nil && stat.Hostname != "" {
		info.Hostname = stat.Hostname
	} else if name, err := os.Hostname(); err == nil {
		info.Hostname = name
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		info.TotalMemory = vm.Total
		info.FreeMemory = vm.Available
	}

	if avg, err := load.Avg(); err == nil && avg != nil {
		info.LoadAverage = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}

	return info
}

// MemoryUsagePercent returns the used share of total memory rounded to two decimals.
func (i Info) MemoryUsagePercent() float64 {
	if i.TotalMemory == 0 || i.FreeMemory > i.TotalMemory {
		return 0
	}
	used := float64(i.TotalMemory-i.FreeMemory) / float64(i.TotalMemory) * 100
	return float64(int64(used*100+0.5)) / 100
}
