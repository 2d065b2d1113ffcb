package id

import "sync/atomic"

// Sequence hands out 1, 2, 3, ... and never repeats a value.
type Sequence struct {
	last atomic.Int64
}

func NewSequence() *Sequence { return &Sequence{} }

func (s *Sequence) Next() int64 { return s.last.Add(1) }

// Current returns the last value handed out, 0 before the first Next.
func (s *Sequence) Current() int64 { return s.last.Load() }
