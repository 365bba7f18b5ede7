// Package worker 提供固定大小的 goroutine pool，供批次產生帳單使用。
package worker

import (
	"fmt"
	"sync"
)

// Task 是交給 pool 執行的工作
type Task func()

// Pool 在 Stop 之後不可再 Submit
type Pool interface {
	Submit(Task)
	Stop()
}

// PanicHandler 在 task panic 時被呼叫；預設忽略
type PanicHandler func(recovered any)

// NewPool 建立 n 個 worker；n<=0 時為 1。
// 單一 task panic 時交給 onPanic，不會中斷其他 task
func NewPool(n int, onPanic PanicHandler) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n), onPanic: onPanic}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	jobs    chan Task
	wg      sync.WaitGroup
	once    sync.Once
	onPanic PanicHandler
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(job)
	}
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && p.onPanic != nil {
			p.onPanic(r)
		}
	}()
	job()
}

func (p *pool) Submit(t Task) {
	p.jobs <- t
}

// Stop 等所有已送出的 task 完成；重複呼叫無作用
func (p *pool) Stop() {
	p.once.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}

// PanicError 把 recover 的值轉成 error
func PanicError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("task panic: %w", err)
	}
	return fmt.Errorf("task panic: %v", recovered)
}
