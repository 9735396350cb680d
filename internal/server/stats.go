package server

import (
	"strconv"
	"sync"
	"sync/atomic"

	"yatai/internal/generated"
)

// Stats はリクエスト処理の統計
type Stats struct {
	active atomic.Int64
	total  atomic.Int64

	mu       sync.Mutex
	byStatus map[int]int64
}

func newStats() *Stats {
	return &Stats{byStatus: make(map[int]int64)}
}

// record は応答したステータスを記録する
func (s *Stats) record(status int) {
	s.total.Add(1)
	s.mu.Lock()
	s.byStatus[status]++
	s.mu.Unlock()
}

// Snapshot は現在の統計のコピーを返す
func (s *Stats) Snapshot() generated.RequestStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := make(map[string]int64, len(s.byStatus))
	for status, count := range s.byStatus {
		byStatus[strconv.Itoa(status)] = count
	}
	return generated.RequestStats{
		Active:   s.active.Load(),
		Total:    s.total.Load(),
		ByStatus: byStatus,
	}
}
