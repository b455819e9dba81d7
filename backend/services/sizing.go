// ABOUTME: Sizing calculator composing the environment, GSLB and controller sizers
// ABOUTME: Produces the three-year aggregate report for an advanced sizing request

package services

import (
	"log/slog"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// SizingCalculator runs the full advanced sizing pipeline.
// It holds no mutable state and is safe for concurrent use.
type SizingCalculator struct {
	model models.CapacityModel
	envs  *EnvironmentSizer
}

// NewSizingCalculator creates a calculator bound to a capacity model
func NewSizingCalculator(model models.CapacityModel) *SizingCalculator {
	return &SizingCalculator{
		model: model,
		envs:  NewEnvironmentSizer(model),
	}
}

// Model returns the capacity model the calculator divides by
func (c *SizingCalculator) Model() models.CapacityModel {
	return c.model
}

// EstimateQuick returns the ratio-based estimate for a VCF core count
func (c *SizingCalculator) EstimateQuick(vcfCores float64) (models.QuickEstimate, error) {
	return EstimateQuick(vcfCores)
}

// EstimateAdvanced sizes every environment for every planning year and aggregates the result.
// Missing environments or years size to zero.
func (c *SizingCalculator) EstimateAdvanced(
	envs map[models.EnvironmentKey]map[models.Year]models.EnvironmentInput,
	waf map[models.EnvironmentKey]bool,
	gslb models.GSLBInput,
	arch models.ArchitectureConfig,
) models.AggregateReport {
	results := make(map[models.Year]map[models.EnvironmentKey]models.EnvironmentResult, len(models.Years))
	for _, year := range models.Years {
		byEnv := make(map[models.EnvironmentKey]models.EnvironmentResult, len(models.EnvironmentKeys))
		for _, key := range models.EnvironmentKeys {
			byEnv[key] = c.envs.Size(envs[key][year], waf[key], arch)
		}
		results[year] = byEnv
	}

	gslbResult := SizeGSLB(gslb.WithDefaults(), c.model)
	controllers := SizeControllers(envs, arch.RegionCount, c.model)
	totals := Aggregate(results, gslbResult, arch.RegionCount)

	report := models.AggregateReport{
		Architecture: arch,
		Environments: results,
		Years:        totals,
		GSLB:         gslbResult,
		Controllers:  controllers,
	}

	slog.Debug("Advanced sizing complete",
		"regions", arch.RegionCount,
		"ha_config", arch.HAConfig,
		"seg_model", arch.SEGModel,
		"peak_sus", report.PeakGrandTotal(),
		"controller_tier", controllers.SizeTier)

	return report
}

// Calculate resolves defaults on a wire request and runs EstimateAdvanced.
// The request is assumed to have passed RequestValidator.ValidateAdvanced.
func (c *SizingCalculator) Calculate(req models.AdvancedRequest) models.AggregateReport {
	envs, waf := req.Split()
	return c.EstimateAdvanced(envs, waf, req.GSLB, req.Architecture.Resolve())
}
