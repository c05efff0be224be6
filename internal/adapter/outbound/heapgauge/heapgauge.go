// Package heapgauge reports process heap pressure from runtime statistics.
package heapgauge

import (
	"runtime"

	"github.com/anthanhphan/go-object-store/internal/port"
)

// Gauge is a runtime.MemStats-backed port.MemoryGauge.
type Gauge struct{}

var _ port.MemoryGauge = (*Gauge)(nil)

// New returns a gauge reading live runtime statistics.
func New() *Gauge {
	return &Gauge{}
}

// HeapUsageRatio returns in-use heap bytes over heap bytes obtained from
// the OS. ReadMemStats is cheap enough to call between stream fragments.
func (g *Gauge) HeapUsageRatio() float64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	if stats.HeapSys == 0 {
		return 0
	}
	return float64(stats.HeapAlloc) / float64(stats.HeapSys)
}
