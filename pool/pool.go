/*
 * Copyright 2023 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Pool is a worker group that runs a number of tasks at a
// configured concurrency.
type Pool struct {
	Tasks []*Task

	concurrency int
	tasksChan   chan *Task
	wg          sync.WaitGroup
}

// NewPool initializes a new pool with the given tasks and
// at the given concurrency.
func NewPool(tasks []*Task, concurrency int) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{
		Tasks:       tasks,
		concurrency: concurrency,
		tasksChan:   make(chan *Task),
	}
}

// Run runs all work within the pool and blocks until it's
// finished. Tasks not yet started when ctx is done are not run
// and carry ctx.Err().
func (p *Pool) Run(ctx context.Context) {
	for i := 0; i < p.concurrency; i++ {
		go p.work(ctx)
	}

	p.wg.Add(len(p.Tasks))
	for _, task := range p.Tasks {
		select {
		case p.tasksChan <- task:
		case <-ctx.Done():
			task.Err = ctx.Err()
			p.wg.Done()
		}
	}

	// all workers return
	close(p.tasksChan)

	p.wg.Wait()
}

func (p *Pool) AddTask(task *Task) {
	p.Tasks = append(p.Tasks, task)
}

// Err joins the errors of every task, each prefixed with the task name.
// Only meaningful after Run.
func (p *Pool) Err() error {
	var errs []error
	for _, t := range p.Tasks {
		switch {
		case t.Err == nil:
		case t.Name == "":
			errs = append(errs, t.Err)
		default:
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, t.Err))
		}
	}
	return errors.Join(errs...)
}

// The work loop for any single goroutine.
func (p *Pool) work(ctx context.Context) {
	for task := range p.tasksChan {
		task.Run(ctx, &p.wg)
	}
}
