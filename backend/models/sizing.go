// ABOUTME: Input records for load balancer sizing calculations
// ABOUTME: Environment traffic, architecture and GSLB parameters plus their defaults

package models

// EnvironmentKey identifies one of the four sized environments
type EnvironmentKey string

const (
	EnvDCProd    EnvironmentKey = "dc-prod"
	EnvDCNonprod EnvironmentKey = "dc-nonprod"
	EnvDRProd    EnvironmentKey = "dr-prod"
	EnvDRNonprod EnvironmentKey = "dr-nonprod"
)

// EnvironmentKeys lists the environments in report order.
var EnvironmentKeys = []EnvironmentKey{EnvDCProd, EnvDCNonprod, EnvDRProd, EnvDRNonprod}

// Valid reports whether k is one of the four known environments
func (k EnvironmentKey) Valid() bool {
	for _, known := range EnvironmentKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Year is a planning year, 1 through PlanningYears
type Year int

// PlanningYears is the length of the planning horizon
const PlanningYears = 3

// Years lists the planning years in order.
var Years = []Year{1, 2, 3}

// Valid reports whether y is inside the planning horizon
func (y Year) Valid() bool {
	return y >= 1 && y <= PlanningYears
}

// CipherProfile selects the SSL handshake capacity figure
type CipherProfile string

const (
	CipherRSA2K CipherProfile = "rsa2k"
	CipherECC   CipherProfile = "ecc"
)

// SEGModel selects how service engine groups are shared across organizations
type SEGModel string

const (
	SEGShared    SEGModel = "shared"
	SEGDedicated SEGModel = "dedicated"
)

// HAConfig selects the service engine redundancy policy
type HAConfig string

const (
	HAElastic HAConfig = "elastic" // N+1
	HALegacy  HAConfig = "legacy"  // active/standby
)

// Defaults applied by the input-collection layer before calling the engine.
const (
	DefaultBufferPercent = 20.0
	DefaultSEVCPUSize    = 2
	DefaultRegionCount   = 1
	DefaultOrgCount      = 1
	DefaultVPCCount      = 1
	DefaultGSLBVCPUSize  = 2
)

// EnvironmentInput is the traffic profile of one environment for one year.
// All values are non-negative; absent fields are zero. Upper bounds keep
// every derived SE and SU count well inside int range.
type EnvironmentInput struct {
	SSLThroughputGbps float64       `json:"ssl_throughput_gbps,omitempty" validate:"gte=0,lte=100000"`
	L7ThroughputGbps  float64       `json:"l7_throughput_gbps,omitempty" validate:"gte=0,lte=100000"`
	L4ThroughputGbps  float64       `json:"l4_throughput_gbps,omitempty" validate:"gte=0,lte=100000"`
	SSLTPS            float64       `json:"ssl_tps,omitempty" validate:"gte=0,lte=1000000000"`
	SSLCipherProfile  CipherProfile `json:"ssl_cipher_profile,omitempty" validate:"omitempty,cipher_profile"`
	L7RPS             float64       `json:"l7_rps,omitempty" validate:"gte=0,lte=1000000000"`
	L4CPS             float64       `json:"l4_cps,omitempty" validate:"gte=0,lte=1000000000"`
	AppCount          float64       `json:"app_count,omitempty" validate:"gte=0,lte=1000000"`
}

// IsEmpty reports whether no field of the record was set
func (in EnvironmentInput) IsEmpty() bool {
	return in == EnvironmentInput{}
}

// WithDefaults returns a copy with the cipher profile defaulted to RSA-2K
func (in EnvironmentInput) WithDefaults() EnvironmentInput {
	if in.SSLCipherProfile == "" && !in.IsEmpty() {
		in.SSLCipherProfile = CipherRSA2K
	}
	return in
}

// EnvironmentPlan carries one environment's yearly inputs and its WAF flag.
// WAF applies uniformly to every year of the environment.
type EnvironmentPlan struct {
	WAFEnabled bool                      `json:"waf_enabled"`
	Years      map[Year]EnvironmentInput `json:"years"`
}

// ArchitectureConfig holds the deployment parameters shared by every environment and year
type ArchitectureConfig struct {
	RegionCount   int      `json:"region_count" validate:"gte=1,lte=100"`
	OrgCount      int      `json:"org_count" validate:"gte=1,lte=10000"`
	VPCCount      int      `json:"vpc_count" validate:"gte=1,lte=100000"`
	SEVCPUSize    int      `json:"se_vcpu_size" validate:"gte=1,lte=64"`
	BufferPercent float64  `json:"buffer_percent" validate:"gte=0,lte=1000"`
	SEGModel      SEGModel `json:"seg_model" validate:"seg_model"`
	HAConfig      HAConfig `json:"ha_config" validate:"ha_config"`
}

// ArchitectureSpec is the wire form of ArchitectureConfig.
// Every field is optional; Resolve fills the documented defaults.
type ArchitectureSpec struct {
	RegionCount   int      `json:"region_count,omitempty"`
	OrgCount      int      `json:"org_count,omitempty"`
	VPCCount      int      `json:"vpc_count,omitempty"`
	SEVCPUSize    int      `json:"se_vcpu_size,omitempty"`
	BufferPercent *float64 `json:"buffer_percent,omitempty"`
	SEGModel      SEGModel `json:"seg_model,omitempty"`
	HAConfig      HAConfig `json:"ha_config,omitempty"`
}

// Resolve applies defaults to unset fields. An explicit buffer of 0 is kept.
func (s ArchitectureSpec) Resolve() ArchitectureConfig {
	cfg := ArchitectureConfig{
		RegionCount:   s.RegionCount,
		OrgCount:      s.OrgCount,
		VPCCount:      s.VPCCount,
		SEVCPUSize:    s.SEVCPUSize,
		BufferPercent: DefaultBufferPercent,
		SEGModel:      s.SEGModel,
		HAConfig:      s.HAConfig,
	}
	if cfg.RegionCount == 0 {
		cfg.RegionCount = DefaultRegionCount
	}
	if cfg.OrgCount == 0 {
		cfg.OrgCount = DefaultOrgCount
	}
	if cfg.VPCCount == 0 {
		cfg.VPCCount = DefaultVPCCount
	}
	if cfg.SEVCPUSize == 0 {
		cfg.SEVCPUSize = DefaultSEVCPUSize
	}
	if s.BufferPercent != nil {
		cfg.BufferPercent = *s.BufferPercent
	}
	if cfg.SEGModel == "" {
		cfg.SEGModel = SEGShared
	}
	if cfg.HAConfig == "" {
		cfg.HAConfig = HAElastic
	}
	return cfg
}

// GSLBInput describes the global server load balancing deployment.
// DNSRPSDC and DNSRPSDR are carried through but not used by the sizing formula.
type GSLBInput struct {
	SiteCount  int     `json:"site_count" validate:"gte=0,lte=1000"`
	DNSRPSDC   float64 `json:"dns_rps_dc,omitempty" validate:"gte=0,lte=1000000000"`
	DNSRPSDR   float64 `json:"dns_rps_dr,omitempty" validate:"gte=0,lte=1000000000"`
	SEVCPUSize int     `json:"se_vcpu_size,omitempty" validate:"gte=0,lte=64"`
}

// WithDefaults returns a copy with the SE vCPU size defaulted
func (g GSLBInput) WithDefaults() GSLBInput {
	if g.SEVCPUSize == 0 {
		g.SEVCPUSize = DefaultGSLBVCPUSize
	}
	return g
}

// QuickRequest is the input for the ratio-based quick estimate
type QuickRequest struct {
	VCFCores float64 `json:"vcf_cores"`
}

// AdvancedRequest is a complete sizing request as supplied by a client
type AdvancedRequest struct {
	Name         string                             `json:"name,omitempty"`
	Environments map[EnvironmentKey]EnvironmentPlan `json:"environments"`
	GSLB         GSLBInput                          `json:"gslb"`
	Architecture ArchitectureSpec                   `json:"architecture"`
	Explain      bool                               `json:"explain,omitempty"`
}

// Split returns the per-environment yearly inputs and WAF flags with defaults applied.
func (r AdvancedRequest) Split() (map[EnvironmentKey]map[Year]EnvironmentInput, map[EnvironmentKey]bool) {
	envs := make(map[EnvironmentKey]map[Year]EnvironmentInput, len(r.Environments))
	waf := make(map[EnvironmentKey]bool, len(r.Environments))
	for key, plan := range r.Environments {
		years := make(map[Year]EnvironmentInput, len(plan.Years))
		for year, in := range plan.Years {
			years[year] = in.WithDefaults()
		}
		envs[key] = years
		waf[key] = plan.WAFEnabled
	}
	return envs, waf
}
