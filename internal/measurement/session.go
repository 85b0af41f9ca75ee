package measurement

import "github.com/philipparndt/armeasure/pkg/geometry"

// Outcome is what a Session reports for each resolved point: either
// Started or Completed.
type Outcome interface {
	outcome()
}

// Started means the point became the pending start of a new measurement
type Started struct {
	Point geometry.Vector3
}

// Completed carries the finished measurement; the session is empty again
type Completed struct {
	Result Result
}

func (Started) outcome()   {}
func (Completed) outcome() {}

// Session turns a stream of resolved world points into measurements.
// It holds at most one pending start point.
//
// A Session is not safe for concurrent use; taps arrive on the UI thread and
// the caller serializes them. The zero value is an empty session.
type Session struct {
	pending    geometry.Vector3
	hasPending bool
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{}
}

// Resolve feeds the next world point into the session. The point must be
// finite; callers drop taps without a hit before they get here.
func (s *Session) Resolve(point geometry.Vector3) Outcome {
	if !s.hasPending {
		s.pending = point
		s.hasPending = true
		return Started{Point: point}
	}

	start := s.pending
	*s = Session{}
	return Completed{Result: NewResult(start, point)}
}

// Pending returns the pending start point, if any
func (s *Session) Pending() (geometry.Vector3, bool) {
	return s.pending, s.hasPending
}
