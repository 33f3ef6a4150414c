/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package concurrent

import (
	"runtime/debug"
	"sync"
	"time"
)

//===----------------------------------------------------------------------------------------====//
// serialTask
//===----------------------------------------------------------------------------------------====//

type serialTaskState int

// Enumeration of serialTaskState
const (
	serialTaskPending serialTaskState = iota
	serialTaskRunning
	serialTaskCompleted
	serialTaskCancelled
)

// serialTask implements TaskHandle for Task executed in a SerialExecutor.
type serialTask struct {
	Task

	// Lock that guards state, result and err.
	mutex sync.Mutex
	state serialTaskState

	// Return values from calling the Run method in Task
	result interface{}
	err    error

	// Closed when the task is completed or cancelled
	done chan struct{}
}

var _ TaskHandle = (*serialTask)(nil)

func newSerialTask(task Task) *serialTask {
	return &serialTask{
		Task: task,
		done: make(chan struct{}),
	}
}

// start transitions the task to running. It returns false if the task was cancelled.
func (task *serialTask) start() bool {
	task.mutex.Lock()
	defer task.mutex.Unlock()
	if task.state != serialTaskPending {
		return false
	}
	task.state = serialTaskRunning
	return true
}

func (task *serialTask) run() {
	if !task.start() {
		return
	}

	var (
		result interface{}
		err    error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				result, err = nil, &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		result, err = task.Run()
	}()

	task.mutex.Lock()
	task.state = serialTaskCompleted
	task.result, task.err = result, err
	task.mutex.Unlock()
	close(task.done)
}

// Cancel implements TaskHandle.
func (task *serialTask) Cancel() error {
	task.mutex.Lock()
	defer task.mutex.Unlock()
	switch task.state {
	case serialTaskCancelled:
		return nil
	case serialTaskPending:
		task.state = serialTaskCancelled
		task.err = ErrTaskCancelled
		close(task.done)
		return nil
	}
	return ErrTaskNotCancellable
}

// AwaitResult implements TaskHandle.
func (task *serialTask) AwaitResult(timeout time.Duration) (interface{}, error) {
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-task.done:
		case <-timer.C:
			return nil, ErrAwaitTaskResultTimeout
		}
	} else {
		<-task.done
	}

	task.mutex.Lock()
	defer task.mutex.Unlock()
	return task.result, task.err
}

//===----------------------------------------------------------------------------------------====//
// SerialExecutor
//===----------------------------------------------------------------------------------------====//

// SerialExecutor runs tasks one at a time on a single goroutine in the order of submission. A task
// never observes the effects of a task submitted after it, and never runs concurrently with any
// other task of the same executor.
type SerialExecutor struct {
	// Lock that guards queue and shutdown.
	mutex sync.Mutex
	cond  *sync.Cond

	// Tasks waiting for execution in FIFO order
	queue []*serialTask

	shutdown   bool
	terminated chan bool
}

var _ Executor = (*SerialExecutor)(nil)

// NewSerialExecutor creates a SerialExecutor and starts its worker.
func NewSerialExecutor() *SerialExecutor {
	executor := &SerialExecutor{
		terminated: make(chan bool, 1),
	}
	executor.cond = sync.NewCond(&executor.mutex)
	go executor.work()
	return executor
}

// Submit implements Executor.
func (executor *SerialExecutor) Submit(task Task) (TaskHandle, error) {
	t := newSerialTask(task)

	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	if executor.shutdown {
		return nil, ErrExecutorShutdown
	}
	executor.queue = append(executor.queue, t)
	executor.cond.Signal()

	return t, nil
}

// Shutdown implements Executor.
func (executor *SerialExecutor) Shutdown() (<-chan bool, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	if !executor.shutdown {
		executor.shutdown = true
		executor.cond.Signal()
	}
	return executor.terminated, nil
}

// poll removes the first task from the queue. It blocks until there's a task or the executor is
// shut down with an empty queue in which case nil is returned.
func (executor *SerialExecutor) poll() *serialTask {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	for len(executor.queue) == 0 {
		if executor.shutdown {
			return nil
		}
		executor.cond.Wait()
	}

	task := executor.queue[0]
	executor.queue[0] = nil
	executor.queue = executor.queue[1:]
	return task
}

func (executor *SerialExecutor) work() {
	for {
		task := executor.poll()
		if task == nil {
			executor.terminated <- true
			close(executor.terminated)
			return
		}
		task.run()
	}
}
