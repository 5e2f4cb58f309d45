package dispatch

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSignaller records calls and returns a scripted error.
type fakeSignaller struct {
	calls []call
	err   error
	block chan struct{} // when set, Signal blocks until closed
}

type call struct {
	pid  int32
	kind SignalKind
}

func (f *fakeSignaller) Signal(pid int32, kind SignalKind) error {
	if f.block != nil {
		<-f.block
	}
	f.calls = append(f.calls, call{pid, kind})
	return f.err
}

func TestKillSuccess(t *testing.T) {
	sig := &fakeSignaller{}
	d := New(sig, nil, time.Second)

	out := d.Kill(context.Background(), 42, "worker", SignalTerm)
	assert.Equal(t, ClassOK, out.Class)
	assert.False(t, out.Failed())
	require.Len(t, sig.calls, 1)
	assert.Equal(t, call{42, SignalTerm}, sig.calls[0])
}

func TestKillAlreadyGoneIsInformational(t *testing.T) {
	sig := &fakeSignaller{err: syscall.ESRCH}
	d := New(sig, nil, time.Second)

	out := d.Kill(context.Background(), 42, "", SignalKill)
	assert.Equal(t, ClassAlreadyGone, out.Class)
	assert.False(t, out.Failed(), "a vanished target is success for UI purposes")
	assert.Contains(t, out.Message(), "already gone")
}

func TestKillPermissionDenied(t *testing.T) {
	sig := &fakeSignaller{err: syscall.EPERM}
	d := New(sig, nil, time.Second)

	out := d.Kill(context.Background(), 1, "", SignalTerm)
	assert.Equal(t, ClassPermission, out.Class)
	assert.True(t, out.Failed())
}

func TestKillProtectedNeverSignals(t *testing.T) {
	sig := &fakeSignaller{}
	d := New(sig, []string{"systemd", "init"}, time.Second)

	out := d.Kill(context.Background(), 1, "Systemd", SignalKill)
	assert.Equal(t, ClassProtected, out.Class)
	assert.Empty(t, sig.calls)
}

func TestKillInvalidPID(t *testing.T) {
	sig := &fakeSignaller{}
	d := New(sig, nil, time.Second)

	out := d.Kill(context.Background(), 0, "", SignalTerm)
	assert.Equal(t, ClassInvalid, out.Class)
	assert.Empty(t, sig.calls)
}

func TestKillTimeout(t *testing.T) {
	sig := &fakeSignaller{block: make(chan struct{})}
	defer close(sig.block)
	d := New(sig, nil, 20*time.Millisecond)

	out := d.Kill(context.Background(), 42, "", SignalKill)
	assert.Equal(t, ClassTimeout, out.Class)
	assert.True(t, out.Failed())
}

func TestParsePID(t *testing.T) {
	tests := []struct {
		input   string
		want    int32
		wantErr bool
	}{
		{"1234", 1234, false},
		{" 7 ", 7, false},
		{"abc", 0, true},
		{"", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
		{"12.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignalKindString(t *testing.T) {
	assert.Equal(t, "SIGTERM", SignalTerm.String())
	assert.Equal(t, "SIGKILL", SignalKill.String())
}
