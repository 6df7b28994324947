// Package loadavg reads the kernel load average and normalizes it by CPU
// count. The facility is platform-dependent: where /proc/loadavg does not
// exist every sample is unknown and the admission gate degrades to a pure
// pass-through. That is an accepted limitation, not an error.
package loadavg

import (
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/ports"
)

const procLoadAvgPath = "/proc/loadavg"

// Sampler implements the LoadSampler port from procfs.
type Sampler struct {
	sourcePath string
	numCPU     func() int
}

// NewSampler reads from /proc/loadavg.
func NewSampler() *Sampler {
	return &Sampler{sourcePath: procLoadAvgPath, numCPU: runtime.NumCPU}
}

// Sample implements ports.LoadSampler. Any failure to read or parse the
// source yields an unknown sample; callers admit immediately on unknown.
func (s *Sampler) Sample() domain.LoadSample {
	data, err := os.ReadFile(s.sourcePath)
	if err != nil {
		return domain.LoadSample{}
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return domain.LoadSample{}
	}
	oneMinute, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(oneMinute) || math.IsInf(oneMinute, 0) {
		return domain.LoadSample{}
	}
	cpus := s.numCPU()
	if cpus <= 0 {
		return domain.LoadSample{}
	}
	return domain.LoadSample{
		Percent: oneMinute / float64(cpus) * 100,
		Known:   true,
	}
}

var _ ports.LoadSampler = (*Sampler)(nil)
