// Package quest implements the quest tracker: an ordered list of completion
// flags where index 0 is the aggregate and 1..n are sub-parts.
package quest

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for a part index the quest doesn't have.
var ErrIndexOutOfRange = errors.New("quest part index out of range")

// Quest is a dumb flag container. Completing sub-parts never completes the
// aggregate; the engine decides when that happens.
type Quest struct {
	Name  string
	parts []bool
}

// New creates a quest with the aggregate flag and n sub-parts.
func New(name string, n int) *Quest {
	q := &Quest{Name: name}
	for i := 0; i <= n; i++ {
		q.AddPart()
	}
	return q
}

// AddPart appends an incomplete part.
func (q *Quest) AddPart() {
	q.parts = append(q.parts, false)
}

// Parts returns the number of flags, aggregate included.
func (q *Quest) Parts() int {
	return len(q.parts)
}

// Part reports whether part i is complete.
func (q *Quest) Part(i int) (bool, error) {
	if i < 0 || i >= len(q.parts) {
		return false, fmt.Errorf("%s part %d: %w", q.Name, i, ErrIndexOutOfRange)
	}
	return q.parts[i], nil
}

// Done is Part without the error; out-of-range parts are never done.
func (q *Quest) Done(i int) bool {
	done, _ := q.Part(i)
	return done
}

// CompletePart marks part i complete. Completing a complete part is a no-op.
func (q *Quest) CompletePart(i int) error {
	if i < 0 || i >= len(q.parts) {
		return fmt.Errorf("%s part %d: %w", q.Name, i, ErrIndexOutOfRange)
	}
	q.parts[i] = true
	return nil
}

// SubpartsComplete reports whether every part from 1 up is complete.
func (q *Quest) SubpartsComplete() bool {
	for _, done := range q.parts[1:] {
		if !done {
			return false
		}
	}
	return true
}
