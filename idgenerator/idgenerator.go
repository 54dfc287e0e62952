package idgenerator

import "sync/atomic"

// IDGenerator hands out ids for one collection.
type IDGenerator interface {
	Next() int64
	// Current returns the last id handed out, 0 if none.
	Current() int64
}

// New returns a sequence starting at 1. Ids are never handed out twice, even
// after the records holding them are deleted.
func New() IDGenerator {
	return &sequence{}
}

type sequence struct {
	last int64
}

func (s *sequence) Next() int64 {
	return atomic.AddInt64(&s.last, 1)
}

func (s *sequence) Current() int64 {
	return atomic.LoadInt64(&s.last)
}
