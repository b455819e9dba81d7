// ABOUTME: Environment sizer turning one environment-year of traffic into SEs and SUs
// ABOUTME: Applies bottleneck, buffer, HA redundancy, dedicated SEG and VRF density rules

package services

import (
	"math"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// EnvironmentSizer sizes a single environment for a single year
type EnvironmentSizer struct {
	model models.CapacityModel
}

// NewEnvironmentSizer creates a sizer bound to a capacity model
func NewEnvironmentSizer(model models.CapacityModel) *EnvironmentSizer {
	return &EnvironmentSizer{model: model}
}

// Size computes the SEs and SUs one environment-year needs. It never fails:
// empty or zero input is a legitimate zero requirement.
func (s *EnvironmentSizer) Size(in models.EnvironmentInput, wafEnabled bool, arch models.ArchitectureConfig) models.EnvironmentResult {
	// Nothing entered for this environment-year
	if in.IsEmpty() {
		return models.EnvironmentResult{}
	}

	var trace models.Trace

	throughputVcpus := ComputeThroughputVcpus(in, wafEnabled, s.model)
	trace.Add("throughput",
		"max(max(ssl_gbps, l7_gbps) / l7_ssl_gbps_per_vcpu, l4_gbps / l4_gbps_per_vcpu) * (waf ? waf_multiplier : 1)",
		map[string]float64{
			"ssl_gbps":       in.SSLThroughputGbps,
			"l7_gbps":        in.L7ThroughputGbps,
			"l4_gbps":        in.L4ThroughputGbps,
			"waf":            boolToFloat(wafEnabled),
			"waf_multiplier": float64(s.model.WAFMultiplier),
		},
		throughputVcpus)

	transactionVcpus := ComputeTransactionVcpus(in, s.model)
	trace.Add("transaction",
		"max(ssl_tps / ssl_tps_per_vcpu, l7_rps / l7_rps_per_vcpu, l4_cps / l4_cps_per_vcpu)",
		map[string]float64{
			"ssl_tps":          in.SSLTPS,
			"ssl_tps_per_vcpu": sslCapacity(in.SSLCipherProfile, s.model),
			"l7_rps":           in.L7RPS,
			"l4_cps":           in.L4CPS,
		},
		transactionVcpus)

	// Governing bottleneck
	requiredVcpus := math.Max(throughputVcpus, transactionVcpus)
	trace.Add("bottleneck", "max(throughput_vcpus, transaction_vcpus)",
		map[string]float64{"throughput_vcpus": throughputVcpus, "transaction_vcpus": transactionVcpus},
		requiredVcpus)

	if requiredVcpus == 0 {
		return models.EnvironmentResult{}
	}

	bufferedVcpus := requiredVcpus * (1 + arch.BufferPercent/100)
	trace.Add("buffer", "required_vcpus * (1 + buffer_percent / 100)",
		map[string]float64{"required_vcpus": requiredVcpus, "buffer_percent": arch.BufferPercent},
		bufferedVcpus)

	seVcpu := arch.SEVCPUSize

	// SEs are indivisible
	activeSEs := int(math.Ceil(bufferedVcpus / float64(seVcpu)))
	trace.Add("active_ses", "ceil(buffered_vcpus / se_vcpu_size)",
		map[string]float64{"buffered_vcpus": bufferedVcpus, "se_vcpu_size": float64(seVcpu)},
		float64(activeSEs))

	totalSEs := withRedundancy(activeSEs, arch.HAConfig)
	haFormula := "active_ses + 1"
	if arch.HAConfig == models.HALegacy {
		haFormula = "active_ses * 2"
	}
	trace.Add("ha_redundancy", haFormula, map[string]float64{"active_ses": float64(activeSEs)}, float64(totalSEs))

	sus := float64(totalSEs * seVcpu)
	trace.Add("service_units", "total_ses * se_vcpu_size",
		map[string]float64{"total_ses": float64(totalSEs), "se_vcpu_size": float64(seVcpu)},
		sus)

	// Each organization gets its own service engine group
	if arch.SEGModel == models.SEGDedicated {
		sus *= float64(arch.OrgCount)
		totalSEs *= arch.OrgCount
		trace.Add("dedicated_seg", "service_units * org_count",
			map[string]float64{"org_count": float64(arch.OrgCount), "total_ses": float64(totalSEs)},
			sus)
	}

	if extra := extraVRFGroups(arch.VPCCount, s.model.MaxVRFsPerSE); extra > 0 {
		sus += float64(extra * seVcpu)
		totalSEs += extra
		trace.Add("vrf_density", "service_units + (ceil(vpc_count / max_vrfs_per_se) - 1) * se_vcpu_size",
			map[string]float64{
				"vpc_count":       float64(arch.VPCCount),
				"max_vrfs_per_se": float64(s.model.MaxVRFsPerSE),
				"extra_ses":       float64(extra),
			},
			sus)
	}

	requiredSUs := int(math.Ceil(sus))
	trace.Add("round", "ceil(service_units)", map[string]float64{"service_units": sus}, float64(requiredSUs))

	return models.EnvironmentResult{
		RequiredSUs: requiredSUs,
		TotalSEs:    totalSEs,
		Details: &models.SizingDetails{
			ThroughputVCPUs:  throughputVcpus,
			TransactionVCPUs: transactionVcpus,
			RequiredVCPUs:    requiredVcpus,
			BufferedVCPUs:    bufferedVcpus,
			ActiveSEs:        activeSEs,
			WAFApplied:       wafEnabled,
		},
		Trace: trace,
	}
}

// withRedundancy expands active SEs by the HA policy.
// Legacy is active/standby doubling; elastic is N+1.
func withRedundancy(activeSEs int, ha models.HAConfig) int {
	if ha == models.HALegacy {
		return activeSEs * 2
	}
	return activeSEs + 1
}

// extraVRFGroups returns the SEs added because one SE hosts at most maxVRFs routing domains
func extraVRFGroups(vpcCount, maxVRFs int) int {
	if vpcCount <= maxVRFs {
		return 0
	}
	blocks := (vpcCount + maxVRFs - 1) / maxVRFs
	return blocks - 1
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
