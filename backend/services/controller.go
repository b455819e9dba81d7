// ABOUTME: Controller sizer picking a size tier and node count from application totals
// ABOUTME: Applications are summed across every environment and every planning year

package services

import (
	"math"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// SizeControllers recommends a controller tier and node count.
//
// TotalApps is a cumulative sum over all environments and years 1..3, not a
// peak-year figure. This can overstate concurrent load when the same apps
// appear in several years; it is kept as-is pending product clarification.
func SizeControllers(envs map[models.EnvironmentKey]map[models.Year]models.EnvironmentInput, regionCount int, m models.CapacityModel) models.ControllerSizing {
	var apps float64
	for _, key := range models.EnvironmentKeys {
		for _, year := range models.Years {
			apps += envs[key][year].AppCount
		}
	}
	totalApps := int(math.Round(apps))

	tier := ControllerTier(totalApps, m)

	sizing := models.ControllerSizing{
		TotalApps:      totalApps,
		SizeTier:       tier,
		NodesPerRegion: models.ControllerNodesPerRegion,
		Regions:        regionCount,
		TotalNodes:     models.ControllerNodesPerRegion * regionCount,
	}

	sizing.Trace.Add("total_apps", "sum(app_count) over environments and years 1..3", nil, float64(totalApps))
	sizing.Trace.Add("total_nodes", "nodes_per_region * region_count",
		map[string]float64{"nodes_per_region": models.ControllerNodesPerRegion, "region_count": float64(regionCount)},
		float64(sizing.TotalNodes))

	return sizing
}

// ControllerTier maps an application count onto a size tier.
// Boundaries belong to the lower tier: exactly 1000 apps is Medium.
func ControllerTier(totalApps int, m models.CapacityModel) string {
	switch {
	case totalApps > m.ControllerLargeMaxApps:
		return models.ControllerExtraLarge
	case totalApps > m.ControllerMediumMaxApps:
		return models.ControllerLarge
	case totalApps > m.ControllerSmallMaxApps:
		return models.ControllerMedium
	default:
		return models.ControllerSmall
	}
}
