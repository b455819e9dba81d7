// ABOUTME: Aggregation of environment results into yearly and grand totals
// ABOUTME: Sums environments, multiplies by regions, then adds GSLB once

package services

import "github.com/markalston/avi-sizing-calculator/backend/models"

// Aggregate rolls environment results up to per-year totals.
// The order is fixed: sum environments, multiply by regions, add GSLB.
// GSLB sites already span every region so they are never multiplied.
func Aggregate(results map[models.Year]map[models.EnvironmentKey]models.EnvironmentResult, gslb models.GSLBResult, regionCount int) []models.YearTotals {
	totals := make([]models.YearTotals, 0, len(models.Years))

	for _, year := range models.Years {
		byEnv := results[year]

		yt := models.YearTotals{
			Year:      year,
			DCProd:    byEnv[models.EnvDCProd].RequiredSUs,
			DCNonprod: byEnv[models.EnvDCNonprod].RequiredSUs,
			DRProd:    byEnv[models.EnvDRProd].RequiredSUs,
			DRNonprod: byEnv[models.EnvDRNonprod].RequiredSUs,
			GSLB:      gslb.SUs,
		}
		yt.DCTotal = yt.DCProd + yt.DCNonprod
		yt.DRTotal = yt.DRProd + yt.DRNonprod
		yt.SiteTotal = yt.DCTotal + yt.DRTotal
		yt.TotalWithRegions = yt.SiteTotal * regionCount
		yt.GrandTotal = yt.TotalWithRegions + gslb.SUs

		for _, key := range models.EnvironmentKeys {
			yt.SiteSEs += byEnv[key].TotalSEs
		}
		yt.SEsWithRegions = yt.SiteSEs * regionCount
		yt.GrandTotalSEs = yt.SEsWithRegions + gslb.SEs

		totals = append(totals, yt)
	}

	return totals
}
