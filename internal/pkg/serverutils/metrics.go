package serverutils

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"habit-tracker-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// RequestMetrics counts HTTP traffic for the system status endpoint.
type RequestMetrics struct {
	total       atomic.Int64
	active      atomic.Int64
	totalMicros atomic.Int64

	mu       sync.Mutex
	byMethod map[string]int64
	byStatus map[string]int64
}

func NewRequestMetrics() *RequestMetrics {
	return &RequestMetrics{
		byMethod: make(map[string]int64),
		byStatus: make(map[string]int64),
	}
}

// Middleware must wrap the error handler so the final status is recorded.
func (m *RequestMetrics) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		m.active.Add(1)
		defer m.active.Add(-1)

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.record(ctx.Method(), status, time.Since(start))
		return err
	}
}

func (m *RequestMetrics) record(method string, status int, elapsed time.Duration) {
	m.total.Add(1)
	m.totalMicros.Add(elapsed.Microseconds())

	m.mu.Lock()
	m.byMethod[method]++
	m.byStatus[fmt.Sprintf("%dxx", status/100)]++
	m.mu.Unlock()
}

func (m *RequestMetrics) Snapshot() dto.RequestStats {
	total := m.total.Load()
	stats := dto.RequestStats{
		Total:    total,
		Active:   m.active.Load(),
		ByMethod: make(map[string]int64),
		ByStatus: make(map[string]int64),
	}
	if total > 0 {
		avgMicros := float64(m.totalMicros.Load()) / float64(total)
		stats.AvgResponseTimeMs = float64(int64(avgMicros/100+0.5)) / 10
	}

	m.mu.Lock()
	for k, v := range m.byMethod {
		stats.ByMethod[k] = v
	}
	for k, v := range m.byStatus {
		stats.ByStatus[k] = v
	}
	m.mu.Unlock()
	return stats
}
