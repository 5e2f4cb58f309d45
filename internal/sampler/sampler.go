// Package sampler reads the OS process table and host-wide counters via
// gopsutil. One inaccessible process never fails a whole sample pass;
// fields the OS denies are simply left zero.
package sampler

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"ptop/internal/model"
)

// Provider yields one snapshot per call. The UI never touches the OS
// directly; tests substitute a fake.
type Provider interface {
	Sample(ctx context.Context) (model.Snapshot, error)
}

// Sampler implements Provider on top of gopsutil. It keeps the previous
// CPU times so host CPU usage can be computed as a delta between calls.
type Sampler struct {
	prevTotal float64
	prevIdle  float64
}

func New() *Sampler { return &Sampler{} }

func (s *Sampler) Sample(ctx context.Context) (model.Snapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}

	records := make([]model.ProcessRecord, 0, len(procs))
	for _, p := range procs {
		name, _ := p.NameWithContext(ctx)
		if name == "" {
			// Kernel threads and already-gone PIDs.
			continue
		}
		records = append(records, s.record(ctx, p, name))
	}

	return model.Snapshot{
		Taken:     time.Now(),
		Processes: records,
		Summary:   s.summary(ctx),
	}, nil
}

// record reads every field best-effort. Permission errors leave the field
// at its zero value rather than dropping the process.
func (s *Sampler) record(ctx context.Context, p *process.Process, name string) model.ProcessRecord {
	rec := model.ProcessRecord{PID: p.Pid, Name: name}
	rec.Executable, _ = p.ExeWithContext(ctx)
	rec.Cmdline, _ = p.CmdlineWithContext(ctx)
	rec.Cwd, _ = p.CwdWithContext(ctx)
	rec.User, _ = p.UsernameWithContext(ctx)
	rec.CPUPercent, _ = p.CPUPercentWithContext(ctx)

	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		rec.MemoryRSS = mi.RSS
	}
	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		rec.DiskRead = io.ReadBytes
		rec.DiskWrite = io.WriteBytes
	}
	if createMs, err := p.CreateTimeWithContext(ctx); err == nil && createMs > 0 {
		rec.StartTime = time.UnixMilli(createMs)
	}
	return rec
}

func (s *Sampler) summary(ctx context.Context) model.SystemSummary {
	var sum model.SystemSummary

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		sum.MemUsed, sum.MemTotal = vm.Used, vm.Total
	}
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		sum.SwapUsed, sum.SwapTotal = sw.Used, sw.Total
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		sum.Load1, sum.Load5, sum.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		sum.Uptime = time.Duration(up) * time.Second
	}
	sum.CPUTotal = s.cpuPercent(ctx)
	return sum
}

// cpuPercent derives host CPU usage from the times delta since the last
// call. The first call has no baseline and reports zero.
func (s *Sampler) cpuPercent(ctx context.Context) float64 {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil || len(times) == 0 {
		return 0
	}
	cur := times[0]
	curTotal := cur.Total()
	curIdle := cur.Idle + cur.Iowait

	var pct float64
	if s.prevTotal > 0 {
		dt := curTotal - s.prevTotal
		di := curIdle - s.prevIdle
		if dt > 0 {
			pct = 100 * (1 - di/dt)
		}
	}
	s.prevTotal, s.prevIdle = curTotal, curIdle
	return pct
}
