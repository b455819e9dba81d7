// ABOUTME: Transaction sizer converting SSL TPS, L7 RPS and L4 CPS into vCPUs
// ABOUTME: Each transaction type is an independent bottleneck candidate

package services

import (
	"math"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// sslCapacity returns the SSL handshakes per vCPU for the cipher profile
func sslCapacity(profile models.CipherProfile, m models.CapacityModel) float64 {
	if profile == models.CipherECC {
		return m.SSLTPSPerVCPUECC
	}
	return m.SSLTPSPerVCPURSA2K
}

// ComputeTransactionVcpus returns the vCPUs needed for the busiest transaction type.
// The three rates are never summed: each limits the same processing unit on its own.
func ComputeTransactionVcpus(in models.EnvironmentInput, m models.CapacityModel) float64 {
	sslVcpus := in.SSLTPS / sslCapacity(in.SSLCipherProfile, m)
	l7Vcpus := in.L7RPS / m.L7RPSPerVCPU
	l4Vcpus := in.L4CPS / m.L4CPSPerVCPU

	return math.Max(sslVcpus, math.Max(l7Vcpus, l4Vcpus))
}
