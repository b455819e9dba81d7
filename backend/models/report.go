// ABOUTME: Result records produced by the sizing engine
// ABOUTME: Environment, GSLB and controller results, yearly totals and the aggregate report

package models

import "time"

// TraceStep records one step of a sizing calculation for traceability
type TraceStep struct {
	Step    string             `json:"step"`
	Formula string             `json:"formula"`
	Inputs  map[string]float64 `json:"inputs,omitempty"`
	Output  float64            `json:"output"`
}

// Trace is an ordered list of calculation steps
type Trace []TraceStep

// Add appends a step. A nil *Trace discards the step.
func (t *Trace) Add(step, formula string, inputs map[string]float64, output float64) {
	if t == nil {
		return
	}
	*t = append(*t, TraceStep{Step: step, Formula: formula, Inputs: inputs, Output: output})
}

// SizingDetails exposes the intermediate values behind an EnvironmentResult
type SizingDetails struct {
	ThroughputVCPUs  float64 `json:"throughput_vcpus"`
	TransactionVCPUs float64 `json:"transaction_vcpus"`
	RequiredVCPUs    float64 `json:"required_vcpus"`
	BufferedVCPUs    float64 `json:"buffered_vcpus"`
	ActiveSEs        int     `json:"active_ses"`
	WAFApplied       bool    `json:"waf_applied"`
}

// EnvironmentResult is the sizing outcome for one environment in one year
type EnvironmentResult struct {
	RequiredSUs int            `json:"required_sus"`
	TotalSEs    int            `json:"total_ses"`
	Details     *SizingDetails `json:"details,omitempty"` // nil when nothing was sized
	Trace       Trace          `json:"trace,omitempty"`
}

// GSLBResult is the SE and SU cost of the GSLB sites
type GSLBResult struct {
	SUs        int     `json:"sus"`
	SEs        int     `json:"ses"`
	Sites      int     `json:"sites"`
	SEVCPUSize int     `json:"se_vcpu_size"`
	DNSRPSDC   float64 `json:"dns_rps_dc,omitempty"`
	DNSRPSDR   float64 `json:"dns_rps_dr,omitempty"`
	Trace      Trace   `json:"trace,omitempty"`
}

// Controller size tiers
const (
	ControllerSmall      = "Small"
	ControllerMedium     = "Medium"
	ControllerLarge      = "Large"
	ControllerExtraLarge = "Extra Large"
)

// ControllerNodesPerRegion is the fixed HA cluster size of the controller
const ControllerNodesPerRegion = 3

// ControllerSizing is the controller recommendation
type ControllerSizing struct {
	TotalApps      int    `json:"total_apps"`
	SizeTier       string `json:"size_tier"`
	NodesPerRegion int    `json:"nodes_per_region"`
	Regions        int    `json:"regions"`
	TotalNodes     int    `json:"total_nodes"`
	Trace          Trace  `json:"trace,omitempty"`
}

// YearTotals rolls up one planning year across environments, sites and regions
type YearTotals struct {
	Year             Year `json:"year"`
	DCProd           int  `json:"dc_prod"`
	DCNonprod        int  `json:"dc_nonprod"`
	DRProd           int  `json:"dr_prod"`
	DRNonprod        int  `json:"dr_nonprod"`
	DCTotal          int  `json:"dc_total"`
	DRTotal          int  `json:"dr_total"`
	SiteTotal        int  `json:"site_total"`
	TotalWithRegions int  `json:"total_with_regions"`
	GSLB             int  `json:"gslb"`
	GrandTotal       int  `json:"grand_total"`

	SiteSEs        int `json:"site_ses"`
	SEsWithRegions int `json:"ses_with_regions"`
	GrandTotalSEs  int `json:"grand_total_ses"`
}

// AggregateReport is the complete result of an advanced sizing request
type AggregateReport struct {
	Architecture ArchitectureConfig                            `json:"architecture"`
	Environments map[Year]map[EnvironmentKey]EnvironmentResult `json:"environments"`
	Years        []YearTotals                                  `json:"years"`
	GSLB         GSLBResult                                    `json:"gslb"`
	Controllers  ControllerSizing                              `json:"controllers"`
}

// WithoutTrace returns a copy of the report with every trace removed
func (r AggregateReport) WithoutTrace() AggregateReport {
	envs := make(map[Year]map[EnvironmentKey]EnvironmentResult, len(r.Environments))
	for year, byEnv := range r.Environments {
		stripped := make(map[EnvironmentKey]EnvironmentResult, len(byEnv))
		for key, res := range byEnv {
			res.Trace = nil
			stripped[key] = res
		}
		envs[year] = stripped
	}
	r.Environments = envs
	r.GSLB.Trace = nil
	r.Controllers.Trace = nil
	return r
}

// YearTotal returns the totals for a year and whether the year is present
func (r AggregateReport) YearTotal(year Year) (YearTotals, bool) {
	for _, yt := range r.Years {
		if yt.Year == year {
			return yt, true
		}
	}
	return YearTotals{}, false
}

// PeakGrandTotal returns the largest grand total across the planning years
func (r AggregateReport) PeakGrandTotal() int {
	peak := 0
	for _, yt := range r.Years {
		if yt.GrandTotal > peak {
			peak = yt.GrandTotal
		}
	}
	return peak
}

// QuickEstimate is the result of the ratio-based quick estimate
type QuickEstimate struct {
	VCFCores     float64 `json:"vcf_cores"`
	EstimatedSUs int     `json:"estimated_sus"`
	CoresPerSU   int     `json:"cores_per_su"`
}

// ResponseMetadata describes how a sizing response was produced
type ResponseMetadata struct {
	CalculationID string    `json:"calculation_id"`
	Name          string    `json:"name,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Cached        bool      `json:"cached"`
}

// AdvancedResponse wraps an aggregate report for the HTTP API
type AdvancedResponse struct {
	Report   AggregateReport  `json:"report"`
	Metadata ResponseMetadata `json:"metadata"`
}
