package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ptop/internal/model"
)

func TestRenderTableListsProcesses(t *testing.T) {
	out := renderTable([]model.ProcessRecord{
		{PID: 123, Name: "node", User: "dev", CPUPercent: 12.5, MemoryRSS: 2048},
		{PID: 456, Name: "nginx", User: "www", CPUPercent: 0.1},
	})

	assert.Contains(t, out, "123")
	assert.Contains(t, out, "node")
	assert.Contains(t, out, "nginx")
	assert.Contains(t, out, "12.5")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "multi line", truncate("multi\nline", 20))

	long := truncate("a very long command line that keeps going", 12)
	assert.Len(t, long, 12)
	assert.Contains(t, long, "...")
}
