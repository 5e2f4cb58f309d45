// Package view derives the visible, ordered process list from a snapshot
// and re-resolves the operator's selection against it. Both entry points
// are pure functions: identical inputs always produce identical output.
package view

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"ptop/internal/model"
)

// SortKey selects the table ordering.
type SortKey int

const (
	// SortCPUDesc orders by CPU usage descending, PID ascending on ties.
	SortCPUDesc SortKey = iota
)

// DefaultCPUTolerance is the half-width of the CPU% band a numeric search
// term matches against. Search for "12.5" matches cpu in [12.0, 13.0].
const DefaultCPUTolerance = 0.5

// Derive returns the subset of snap's processes matching term, ordered by
// key. An empty term includes everything. A term matches a record when any
// of the following holds:
//   - case-insensitive substring of the process name
//   - the term parses as a non-negative integer equal to the PID
//   - the term parses as a float within tolerance of the CPU%
func Derive(snap *model.Snapshot, term string, key SortKey, tolerance float64) []model.ProcessRecord {
	out := make([]model.ProcessRecord, 0, len(snap.Processes))
	for _, p := range snap.Processes {
		if term == "" || matches(&p, term, tolerance) {
			out = append(out, p)
		}
	}

	switch key {
	case SortCPUDesc:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].CPUPercent != out[j].CPUPercent {
				return out[i].CPUPercent > out[j].CPUPercent
			}
			return out[i].PID < out[j].PID
		})
	}
	return out
}

// Resolve finds the row index of pid in list. The second return is false
// when the process exited or was filtered out; the caller must then clear
// its selection rather than keep a stale identity.
func Resolve(pid int32, list []model.ProcessRecord) (int, bool) {
	for i := range list {
		if list[i].PID == pid {
			return i, true
		}
	}
	return 0, false
}

func matches(p *model.ProcessRecord, term string, tolerance float64) bool {
	if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
		return true
	}
	if pid, err := strconv.ParseInt(term, 10, 32); err == nil && pid >= 0 {
		if int32(pid) == p.PID {
			return true
		}
	}
	if cpu, err := strconv.ParseFloat(term, 64); err == nil {
		if math.Abs(cpu-p.CPUPercent) <= tolerance {
			return true
		}
	}
	return false
}
