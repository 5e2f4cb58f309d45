// Package dispatch is the only place allowed to perform a destructive
// action against another process. It sends termination signals and maps
// OS failures onto a small outcome taxonomy the UI can surface as status
// text without crashing the session.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// SignalKind is the operator-facing choice between a graceful terminate
// request and an immediate kill.
type SignalKind int

const (
	SignalTerm SignalKind = iota
	SignalKill
)

func (k SignalKind) String() string {
	if k == SignalKill {
		return "SIGKILL"
	}
	return "SIGTERM"
}

func (k SignalKind) unix() syscall.Signal {
	if k == SignalKill {
		return syscall.SIGKILL
	}
	return syscall.SIGTERM
}

// Signaller sends one signal to one PID. Tests substitute a fake.
type Signaller interface {
	Signal(pid int32, kind SignalKind) error
}

// OSSignaller signals through the kernel.
type OSSignaller struct{}

func (OSSignaller) Signal(pid int32, kind SignalKind) error {
	return syscall.Kill(int(pid), kind.unix())
}

// Class partitions every dispatch result. Nothing here is fatal to the
// session; each class maps to a status message.
type Class int

const (
	ClassOK          Class = iota
	ClassAlreadyGone       // target exited before the signal landed
	ClassPermission        // kernel refused the signal
	ClassProtected         // name is on the config protected list
	ClassTimeout           // dispatch exceeded its bound
	ClassInvalid           // manual entry did not parse as a positive PID
	ClassError             // anything else, kept non-fatal
)

// Outcome reports one dispatch attempt.
type Outcome struct {
	PID    int32
	Signal SignalKind
	Class  Class
	Err    error
}

// Message renders the operator-facing status line for this outcome.
func (o Outcome) Message() string {
	switch o.Class {
	case ClassOK:
		return fmt.Sprintf("sent %s to process %d", o.Signal, o.PID)
	case ClassAlreadyGone:
		return fmt.Sprintf("process %d already gone", o.PID)
	case ClassPermission:
		return fmt.Sprintf("permission denied signalling process %d", o.PID)
	case ClassProtected:
		return fmt.Sprintf("process %d is protected by config", o.PID)
	case ClassTimeout:
		return fmt.Sprintf("timed out signalling process %d", o.PID)
	case ClassInvalid:
		return fmt.Sprintf("not a valid PID: %v", o.Err)
	default:
		return fmt.Sprintf("failed to signal process %d: %v", o.PID, o.Err)
	}
}

// Failed reports whether the outcome should be styled as an error.
// AlreadyGone is informational: the operator got what they wanted.
func (o Outcome) Failed() bool {
	return o.Class != ClassOK && o.Class != ClassAlreadyGone
}

// Dispatcher executes kill requests. It never mutates snapshot state;
// the next refresh cycle reflects the process's absence naturally.
type Dispatcher struct {
	sig       Signaller
	protected map[string]bool
	timeout   time.Duration
}

func New(sig Signaller, protected []string, timeout time.Duration) *Dispatcher {
	prot := make(map[string]bool, len(protected))
	for _, name := range protected {
		prot[strings.ToLower(name)] = true
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Dispatcher{sig: sig, protected: prot, timeout: timeout}
}

// Kill sends kind to pid. name may be empty (manual-entry path); when set
// it is checked against the protected list before anything is dispatched.
func (d *Dispatcher) Kill(ctx context.Context, pid int32, name string, kind SignalKind) Outcome {
	out := Outcome{PID: pid, Signal: kind}
	if pid <= 0 {
		out.Class = ClassInvalid
		out.Err = fmt.Errorf("pid must be positive, got %d", pid)
		return out
	}
	if name != "" && d.protected[strings.ToLower(name)] {
		out.Class = ClassProtected
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.sig.Signal(pid, kind) }()

	select {
	case <-ctx.Done():
		out.Class = ClassTimeout
		out.Err = ctx.Err()
	case err := <-done:
		out.Class, out.Err = classify(err)
	}
	return out
}

func classify(err error) (Class, error) {
	switch {
	case err == nil:
		return ClassOK, nil
	case errors.Is(err, syscall.ESRCH):
		return ClassAlreadyGone, err
	case errors.Is(err, syscall.EPERM):
		return ClassPermission, err
	default:
		return ClassError, err
	}
}

// ParsePID validates manual identity entry: the whole string must parse
// as a positive integer.
func ParsePID(input string) (int32, error) {
	input = strings.TrimSpace(input)
	pid, err := strconv.ParseInt(input, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", input)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("%d is not a positive PID", pid)
	}
	return int32(pid), nil
}
