package model

import "time"

// Store holds the current snapshot and exactly one previous snapshot.
// Updates are atomic: a snapshot is either fully replaced or untouched.
// The generation counter is monotonic and lets callers detect that the
// data under a selection has been swapped out.
type Store struct {
	current  Snapshot
	previous Snapshot
	gen      uint64
}

func NewStore() *Store {
	return &Store{current: Snapshot{Taken: time.Now()}}
}

// Update replaces the current snapshot, demoting it to previous.
func (s *Store) Update(taken time.Time, procs []ProcessRecord, sum SystemSummary) {
	s.previous = s.current
	s.current = Snapshot{Taken: taken, Processes: procs, Summary: sum}
	s.gen++
}

// Current returns the latest snapshot. Never blocks.
func (s *Store) Current() *Snapshot { return &s.current }

// Previous returns the snapshot one cycle back.
func (s *Store) Previous() *Snapshot { return &s.previous }

// Generation returns the number of updates applied so far.
func (s *Store) Generation() uint64 { return s.gen }

// Vanished reports PIDs present in the previous snapshot but absent from
// the current one, i.e. processes that exited between the two samples.
func (s *Store) Vanished() []int32 {
	alive := make(map[int32]bool, len(s.current.Processes))
	for _, p := range s.current.Processes {
		alive[p.PID] = true
	}
	var gone []int32
	for _, p := range s.previous.Processes {
		if !alive[p.PID] {
			gone = append(gone, p.PID)
		}
	}
	return gone
}
