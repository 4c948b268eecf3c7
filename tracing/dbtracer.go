package tracing

import (
	"sync"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/noctlm/datarecording"
	"github.com/sarchlab/noctlm/sim"
)

type taskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
}

type taskStepTableEntry struct {
	TaskID string
	Time   float64
	What   string
	Where  string
}

// A DBTracer stores finished tasks and their steps through a data
// recorder, one row per task and one row per step.
type DBTracer struct {
	mu         sync.Mutex
	timeTeller sim.TimeTeller
	backend    datarecording.DataRecorder

	tracingTasks map[string]Task
}

// NewDBTracer creates a DBTracer writing through the given recorder.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	backend datarecording.DataRecorder,
) *DBTracer {
	backend.CreateTable("trace_tasks", taskTableEntry{})
	backend.CreateTable("trace_steps", taskStepTableEntry{})

	t := &DBTracer{
		timeTeller:   timeTeller,
		backend:      backend,
		tracingTasks: make(map[string]Task),
	}

	atexit.Register(t.Terminate)

	return t
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startingTaskMustBeValid(task)

	task.StartTime = t.timeTeller.CurrentTime()
	t.tracingTasks[task.ID] = task
}

func (t *DBTracer) startingTaskMustBeValid(task Task) {
	if task.ID == "" {
		panic("task ID must be set")
	}

	if task.Kind == "" {
		panic("task kind must be set")
	}

	if task.What == "" {
		panic("task what must be set")
	}

	if task.Location == "" {
		panic("task location must be set")
	}
}

// StepTask records one milestone of an in-flight task.
func (t *DBTracer) StepTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, inflight := t.tracingTasks[task.ID]; !inflight {
		return
	}

	for _, step := range task.Steps {
		t.backend.InsertData("trace_steps", taskStepTableEntry{
			TaskID: task.ID,
			Time:   float64(t.timeTeller.CurrentTime()),
			What:   step.What,
			Where:  task.Location,
		})
	}
}

// EndTask marks the end of a task and writes it out.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	original, inflight := t.tracingTasks[task.ID]
	if !inflight {
		return
	}
	delete(t.tracingTasks, task.ID)

	original.EndTime = t.timeTeller.CurrentTime()
	t.backend.InsertData("trace_tasks", taskTableEntry{
		ID:        original.ID,
		ParentID:  original.ParentID,
		Kind:      original.Kind,
		What:      original.What,
		Location:  original.Location,
		StartTime: float64(original.StartTime),
		EndTime:   float64(original.EndTime),
	})
}

// Terminate drops in-flight tasks and flushes the backend.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tracingTasks = make(map[string]Task)
	t.backend.Flush()
}
