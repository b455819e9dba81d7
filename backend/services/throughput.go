// ABOUTME: Throughput sizer converting SSL/L7/L4 bandwidth into vCPUs
// ABOUTME: SSL and L7 share one per-vCPU pool; L4 runs on a separate faster path

package services

import (
	"math"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// ComputeThroughputVcpus returns the vCPUs needed to carry the input bandwidth.
// SSL and L7 throughput draw on the same capacity so their max is taken, not their sum.
// The WAF multiplier only applies when there is some throughput to carry.
func ComputeThroughputVcpus(in models.EnvironmentInput, wafEnabled bool, m models.CapacityModel) float64 {
	l7Vcpus := math.Max(in.SSLThroughputGbps, in.L7ThroughputGbps) / m.L7SSLGbpsPerVCPU
	l4Vcpus := in.L4ThroughputGbps / m.L4GbpsPerVCPU

	peak := math.Max(l7Vcpus, l4Vcpus)
	if wafEnabled && peak > 0 {
		peak *= float64(m.WAFMultiplier)
	}
	return peak
}
