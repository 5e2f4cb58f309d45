package model

import "time"

// ProcessRecord is one live process as observed by a single sample pass.
// String fields may be empty when the OS denies access to them; numeric
// fields are left zero in that case. Records are never mutated after the
// sampler builds them.
type ProcessRecord struct {
	PID        int32
	Name       string
	Executable string
	Cmdline    string
	Cwd        string
	User       string
	CPUPercent float64 // normalized 0-100
	MemoryRSS  uint64  // bytes
	DiskRead   uint64  // cumulative bytes
	DiskWrite  uint64  // cumulative bytes
	StartTime  time.Time
}

// SystemSummary aggregates host-wide numbers rendered above the table.
type SystemSummary struct {
	CPUTotal  float64 // percent 0-100
	MemUsed   uint64
	MemTotal  uint64
	SwapUsed  uint64
	SwapTotal uint64
	Load1     float64
	Load5     float64
	Load15    float64
	Uptime    time.Duration
}

// Snapshot is an immutable collection of process records from one sample
// pass plus the wall-clock time of sampling.
type Snapshot struct {
	Taken     time.Time
	Processes []ProcessRecord
	Summary   SystemSummary
}

// Find returns the record with the given PID, or nil.
func (s *Snapshot) Find(pid int32) *ProcessRecord {
	for i := range s.Processes {
		if s.Processes[i].PID == pid {
			return &s.Processes[i]
		}
	}
	return nil
}
