package server

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// job はワーカープールに渡す1つの仕事
// run は実行時、drop は実行されずに破棄される時に呼ばれる
type job struct {
	run  func()
	drop func()
}

// workerPool は同時に実行するジョブ数を制限する
// 空きが無い場合、ジョブは待ち行列に積まれ、投入順に1つずつ取り出される
// 待ち行列に上限は無い
type workerPool struct {
	size    int64
	sem     *semaphore.Weighted
	busy    atomic.Int64
	waiting atomic.Int64

	mu      sync.Mutex
	queue   []job
	stopped bool
	notify  chan struct{}
}

// newWorkerPool は指定サイズのワーカープールを作成する
func newWorkerPool(size int) *workerPool {
	return &workerPool{
		size:   int64(size),
		sem:    semaphore.NewWeighted(int64(size)),
		notify: make(chan struct{}, 1),
	}
}

// Submit はジョブを待ち行列の末尾に積む。ブロックしない
// Dispatch が既に終了している場合は drop をその場で呼ぶ
func (p *workerPool) Submit(run, drop func()) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		drop()
		return
	}
	p.queue = append(p.queue, job{run: run, drop: drop})
	p.waiting.Add(1)
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Dispatch は待ち行列の先頭から順に、ワーカーの空きを待ってジョブを実行する
// ctx がキャンセルされるまで戻らない。戻る時、未実行のジョブはすべて drop される
func (p *workerPool) Dispatch(ctx context.Context) {
	defer p.stop()

	for {
		j, ok := p.next()
		if !ok {
			select {
			case <-p.notify:
				continue
			case <-ctx.Done():
				return
			}
		}

		// 空きを待つ間も後続のジョブは追い越さない
		err := p.sem.Acquire(ctx, 1)
		p.waiting.Add(-1)
		if err != nil {
			j.drop()
			return
		}

		p.busy.Add(1)
		go func() {
			defer func() {
				p.busy.Add(-1)
				p.sem.Release(1)
			}()
			j.run()
		}()
	}
}

// next は待ち行列の先頭を取り出す
func (p *workerPool) next() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return job{}, false
	}
	j := p.queue[0]
	p.queue[0] = job{}
	p.queue = p.queue[1:]
	return j, true
}

// stop は以降の投入を拒否し、残っているジョブを破棄する
func (p *workerPool) stop() {
	p.mu.Lock()
	p.stopped = true
	rest := p.queue
	p.queue = nil
	p.mu.Unlock()

	for _, j := range rest {
		p.waiting.Add(-1)
		j.drop()
	}
}

// Size はワーカー数を返す
func (p *workerPool) Size() int64 {
	return p.size
}

// Busy は実行中のジョブ数を返す
func (p *workerPool) Busy() int64 {
	return p.busy.Load()
}

// Waiting は空きを待っているジョブ数を返す
func (p *workerPool) Waiting() int64 {
	return p.waiting.Load()
}
