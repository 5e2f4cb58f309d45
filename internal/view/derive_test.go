package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptop/internal/model"
)

func snapOf(procs ...model.ProcessRecord) *model.Snapshot {
	return &model.Snapshot{Processes: procs}
}

func pids(list []model.ProcessRecord) []int32 {
	out := make([]int32, len(list))
	for i, p := range list {
		out[i] = p.PID
	}
	return out
}

func TestDeriveEmptyTermSortsCPUDesc(t *testing.T) {
	snap := snapOf(
		model.ProcessRecord{PID: 1, Name: "a", CPUPercent: 10.0},
		model.ProcessRecord{PID: 2, Name: "b", CPUPercent: 90.0},
	)

	got := Derive(snap, "", SortCPUDesc, DefaultCPUTolerance)
	assert.Equal(t, []int32{2, 1}, pids(got))
}

func TestDeriveMatching(t *testing.T) {
	snap := snapOf(
		model.ProcessRecord{PID: 1, Name: "a", CPUPercent: 10.0},
		model.ProcessRecord{PID: 2, Name: "b", CPUPercent: 90.0},
		model.ProcessRecord{PID: 30, Name: "Browser", CPUPercent: 2.5},
	)

	tests := []struct {
		name string
		term string
		want []int32
	}{
		{"numeric term matches pid only", "1", []int32{1}},
		{"name substring case-insensitive", "brow", []int32{30}},
		{"substring hits both b names", "b", []int32{2, 30}},
		{"cpu within tolerance", "2.4", []int32{30}},
		{"cpu outside tolerance", "3.1", nil},
		{"no match", "zsh", nil},
		{"pid match beats filter-out", "30", []int32{30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(snap, tt.term, SortCPUDesc, DefaultCPUTolerance)
			assert.Equal(t, tt.want, func() []int32 {
				if len(got) == 0 {
					return nil
				}
				return pids(got)
			}())
		})
	}
}

func TestDeriveIdempotent(t *testing.T) {
	snap := snapOf(
		model.ProcessRecord{PID: 4, Name: "go", CPUPercent: 1.0},
		model.ProcessRecord{PID: 3, Name: "gopls", CPUPercent: 1.0},
		model.ProcessRecord{PID: 8, Name: "golint", CPUPercent: 7.0},
	)

	first := Derive(snap, "go", SortCPUDesc, DefaultCPUTolerance)
	second := Derive(snap, "go", SortCPUDesc, DefaultCPUTolerance)
	assert.Equal(t, first, second)
}

func TestDeriveTieBreakByPID(t *testing.T) {
	snap := snapOf(
		model.ProcessRecord{PID: 9, CPUPercent: 5.0, Name: "x"},
		model.ProcessRecord{PID: 2, CPUPercent: 5.0, Name: "y"},
		model.ProcessRecord{PID: 5, CPUPercent: 5.0, Name: "z"},
	)

	got := Derive(snap, "", SortCPUDesc, DefaultCPUTolerance)
	assert.Equal(t, []int32{2, 5, 9}, pids(got))
}

func TestResolve(t *testing.T) {
	list := []model.ProcessRecord{{PID: 10}, {PID: 42}, {PID: 7}}

	idx, ok := Resolve(42, list)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = Resolve(999, list)
	assert.False(t, ok)
}

func TestResolveEmptyList(t *testing.T) {
	_, ok := Resolve(1, nil)
	assert.False(t, ok)
}
