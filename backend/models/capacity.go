// ABOUTME: Per-vCPU capacity constants for service engine sizing
// ABOUTME: Immutable ratios for throughput, transactions, WAF, GSLB and controller tiers

package models

import "fmt"

// CapacityModel holds the per-vCPU capacity figures the sizing engine divides by.
// It is passed and stored by value so no caller can mutate a shared instance.
type CapacityModel struct {
	// Throughput
	L7SSLGbpsPerVCPU float64 `json:"l7_ssl_gbps_per_vcpu"` // SSL and L7 share one pool
	L4GbpsPerVCPU    float64 `json:"l4_gbps_per_vcpu"`

	// Transactions
	SSLTPSPerVCPURSA2K float64 `json:"ssl_tps_per_vcpu_rsa2k"`
	SSLTPSPerVCPUECC   float64 `json:"ssl_tps_per_vcpu_ecc"`
	L7RPSPerVCPU       float64 `json:"l7_rps_per_vcpu"`
	L4CPSPerVCPU       float64 `json:"l4_cps_per_vcpu"`

	// Special
	WAFMultiplier  int `json:"waf_multiplier"`
	GSLBSEsPerSite int `json:"gslb_ses_per_site"`
	MaxVRFsPerSE   int `json:"max_vrfs_per_se"`

	// Controller tiers (inclusive upper bounds)
	ControllerSmallMaxApps  int `json:"controller_small_max_apps"`
	ControllerMediumMaxApps int `json:"controller_medium_max_apps"`
	ControllerLargeMaxApps  int `json:"controller_large_max_apps"`
}

// DefaultCapacityModel returns the published Avi service engine capacity figures.
func DefaultCapacityModel() CapacityModel {
	return CapacityModel{
		L7SSLGbpsPerVCPU: 1.0,
		L4GbpsPerVCPU:    2.0,

		SSLTPSPerVCPURSA2K: 2000,
		SSLTPSPerVCPUECC:   4000,
		L7RPSPerVCPU:       40000,
		L4CPSPerVCPU:       100000,

		WAFMultiplier:  6,
		GSLBSEsPerSite: 2,
		MaxVRFsPerSE:   9,

		ControllerSmallMaxApps:  200,
		ControllerMediumMaxApps: 1000,
		ControllerLargeMaxApps:  5000,
	}
}

// Validate checks that every ratio is strictly positive and controller tiers ascend.
func (m CapacityModel) Validate() error {
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"l7_ssl_gbps_per_vcpu", m.L7SSLGbpsPerVCPU},
		{"l4_gbps_per_vcpu", m.L4GbpsPerVCPU},
		{"ssl_tps_per_vcpu_rsa2k", m.SSLTPSPerVCPURSA2K},
		{"ssl_tps_per_vcpu_ecc", m.SSLTPSPerVCPUECC},
		{"l7_rps_per_vcpu", m.L7RPSPerVCPU},
		{"l4_cps_per_vcpu", m.L4CPSPerVCPU},
		{"waf_multiplier", float64(m.WAFMultiplier)},
		{"gslb_ses_per_site", float64(m.GSLBSEsPerSite)},
		{"max_vrfs_per_se", float64(m.MaxVRFsPerSE)},
		{"controller_small_max_apps", float64(m.ControllerSmallMaxApps)},
	} {
		if r.value <= 0 {
			return fmt.Errorf("capacity model: %s must be positive, got %v", r.name, r.value)
		}
	}

	if m.ControllerMediumMaxApps <= m.ControllerSmallMaxApps || m.ControllerLargeMaxApps <= m.ControllerMediumMaxApps {
		return fmt.Errorf("capacity model: controller tiers must ascend, got %d/%d/%d",
			m.ControllerSmallMaxApps, m.ControllerMediumMaxApps, m.ControllerLargeMaxApps)
	}

	return nil
}
