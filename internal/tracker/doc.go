// Package tracker records the progress of a set of steps through the
// pending, in-progress and done states and answers which steps may begin.
//
// A step is doable when it is still pending and every step required to
// finish before it is done. The tracker enforces no scheduling policy:
// Begin and Finish are plain state transitions, and callers decide which
// doable step to start and when to finish it.
//
// The universe of steps is fixed at construction from every identifier
// named by the precedence set. Steps outside the universe are ignored by
// Begin and Finish.
//
// Usage:
//
//	tr := tracker.New(set)
//	for _, s := range tr.Doable() {
//	    tr.Begin(s)
//	    // ... work ...
//	    unblocked := tr.Finish(s)
//	}
//
// A Tracker is not safe for concurrent use.
package tracker
