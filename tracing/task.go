// Package tracing records packet journeys as tasks: one task per packet
// transit from injection to delivery, one step per hop decision along the
// way.
package tracing

import "github.com/sarchlab/noctlm/sim"

// A TaskStep is a milestone in the processing of a task, such as one
// routing decision.
type TaskStep struct {
	Time sim.VTime `json:"time"`
	What string    `json:"what"`
}

// A Task is one traced unit of work, typically the transit of one packet
// through the network.
type Task struct {
	ID        string     `json:"id"`
	ParentID  string     `json:"parent_id"`
	Kind      string     `json:"kind"`
	What      string     `json:"what"`
	Location  string     `json:"location"`
	StartTime sim.VTime  `json:"start_time"`
	EndTime   sim.VTime  `json:"end_time"`
	Steps     []TaskStep `json:"steps"`
	Detail    any        `json:"-"`
}

// TaskFilter is a function that can filter interesting tasks. If this
// function returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// AnyTask is a TaskFilter that accepts every task.
func AnyTask(_ Task) bool {
	return true
}

// TaskKindIs returns a TaskFilter that accepts tasks of one kind.
func TaskKindIs(kind string) TaskFilter {
	return func(t Task) bool {
		return t.Kind == kind
	}
}
