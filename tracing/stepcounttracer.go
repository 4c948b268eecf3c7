package tracing

import "sync"

// StepCountTracer counts how often each step name occurs. Counting the
// "route" steps of a packet-transit task gives the number of hops the
// packet traversed.
type StepCountTracer struct {
	filter            TaskFilter
	lock              sync.Mutex
	inflightTasks     map[string]Task
	stepNames         []string
	stepCount         map[string]uint64
	taskWithStepCount map[string]uint64
}

// NewStepCountTracer creates a new StepCountTracer.
func NewStepCountTracer(filter TaskFilter) *StepCountTracer {
	return &StepCountTracer{
		filter:            filter,
		inflightTasks:     make(map[string]Task),
		stepCount:         make(map[string]uint64),
		taskWithStepCount: make(map[string]uint64),
	}
}

// StepNames returns all the step names collected.
func (t *StepCountTracer) StepNames() []string {
	return t.stepNames
}

// StepCount returns the number of recorded steps with a certain name.
func (t *StepCountTracer) StepCount(stepName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.stepCount[stepName]
}

// TaskCount returns the number of tasks recorded to have at least one step
// with the given name.
func (t *StepCountTracer) TaskCount(stepName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.taskWithStepCount[stepName]
}

// StartTask starts tracking a task.
func (t *StepCountTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// StepTask counts the steps of in-flight tasks.
func (t *StepCountTracer) StepTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	original, inflight := t.inflightTasks[task.ID]
	if !inflight {
		return
	}

	for _, step := range task.Steps {
		if _, seen := t.stepCount[step.What]; !seen {
			t.stepNames = append(t.stepNames, step.What)
		}

		t.stepCount[step.What]++

		alreadyHas := false
		for _, s := range original.Steps {
			if s.What == step.What {
				alreadyHas = true
				break
			}
		}
		if !alreadyHas {
			t.taskWithStepCount[step.What]++
		}

		original.Steps = append(original.Steps, step)
	}

	t.inflightTasks[task.ID] = original
}

// EndTask stops tracking a task.
func (t *StepCountTracer) EndTask(task Task) {
	t.lock.Lock()
	delete(t.inflightTasks, task.ID)
	t.lock.Unlock()
}
