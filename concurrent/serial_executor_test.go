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

package concurrent_test

import (
	"errors"
	"sync"
	"time"

	"github.com/botobag/pokedex/concurrent"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func shutdownExecutor(executor concurrent.Executor) error {
	terminated, err := executor.Shutdown()
	if err != nil {
		return err
	}
	<-terminated
	return nil
}

var _ = Describe("SerialExecutor", func() {
	var executor *concurrent.SerialExecutor

	BeforeEach(func() {
		executor = concurrent.NewSerialExecutor()
	})

	It("executes a task", func() {
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return "task result", nil
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(handle.AwaitResult(0)).Should(Equal("task result"))

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("returns the error from the task", func() {
		taskErr := errors.New("task error")
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return nil, taskErr
		}))
		Expect(err).ShouldNot(HaveOccurred())

		_, err = handle.AwaitResult(0)
		Expect(err).Should(Equal(taskErr))

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("runs tasks in submission order without overlapping", func() {
		const TIMES = 100

		var (
			mutex   sync.Mutex
			order   []int
			running int
			overlap bool
		)

		handles := make([]concurrent.TaskHandle, TIMES)
		for i := 0; i < TIMES; i++ {
			i := i
			handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
				mutex.Lock()
				running++
				if running > 1 {
					overlap = true
				}
				order = append(order, i)
				mutex.Unlock()

				time.Sleep(time.Microsecond)

				mutex.Lock()
				running--
				mutex.Unlock()
				return i, nil
			}))
			Expect(err).ShouldNot(HaveOccurred())
			handles[i] = handle
		}

		Expect(shutdownExecutor(executor)).Should(Succeed())

		expected := make([]int, TIMES)
		for i := range expected {
			expected[i] = i
			Expect(handles[i].AwaitResult(0)).Should(Equal(i))
		}
		Expect(order).Should(Equal(expected))
		Expect(overlap).Should(BeFalse())
	})

	It("can cancel a queued task", func() {
		stopFirstTask := make(chan bool, 1)
		enterFirstTask := make(chan bool, 1)

		firstTaskHandle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			enterFirstTask <- true
			<-stopFirstTask
			return "first task result", nil
		}))
		Expect(err).ShouldNot(HaveOccurred())

		secondTaskRan := false
		secondTaskHandle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			secondTaskRan = true
			return "second task result", nil
		}))
		Expect(err).ShouldNot(HaveOccurred())

		// Wait until the first task is executed.
		<-enterFirstTask

		// The first task is running and cannot be cancelled.
		Expect(firstTaskHandle.Cancel()).Should(Equal(concurrent.ErrTaskNotCancellable))
		// The second task is still in the queue.
		Expect(secondTaskHandle.Cancel()).Should(Succeed())
		// Cancel again is a no-op.
		Expect(secondTaskHandle.Cancel()).Should(Succeed())

		stopFirstTask <- true
		Expect(firstTaskHandle.AwaitResult(0)).Should(Equal("first task result"))

		_, err = secondTaskHandle.AwaitResult(0)
		Expect(err).Should(Equal(concurrent.ErrTaskCancelled))

		Expect(shutdownExecutor(executor)).Should(Succeed())
		Expect(secondTaskRan).Should(BeFalse())
	})

	It("times out while awaiting a result", func() {
		stop := make(chan bool)
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			<-stop
			return nil, nil
		}))
		Expect(err).ShouldNot(HaveOccurred())

		_, err = handle.AwaitResult(time.Millisecond)
		Expect(err).Should(Equal(concurrent.ErrAwaitTaskResultTimeout))

		close(stop)
		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("recovers from panicking tasks", func() {
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			panic("boom")
		}))
		Expect(err).ShouldNot(HaveOccurred())

		result, err := handle.AwaitResult(0)
		Expect(result).Should(BeNil())

		var panicErr *concurrent.PanicError
		Expect(errors.As(err, &panicErr)).Should(BeTrue())
		Expect(panicErr.Value).Should(Equal("boom"))
		Expect(panicErr.Stack).ShouldNot(BeEmpty())

		// The executor keeps working.
		handle, err = executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return "after panic", nil
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(handle.AwaitResult(0)).Should(Equal("after panic"))

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("rejects tasks after shutdown", func() {
		Expect(shutdownExecutor(executor)).Should(Succeed())

		_, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return nil, nil
		}))
		Expect(err).Should(Equal(concurrent.ErrExecutorShutdown))

		// Shutdown again is a no-op.
		_, err = executor.Shutdown()
		Expect(err).ShouldNot(HaveOccurred())
	})
})
