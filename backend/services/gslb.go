// ABOUTME: GSLB sizer computing the SE and SU cost of global load balancing sites
// ABOUTME: Independent of environment sizing and the architecture configuration

package services

import "github.com/markalston/avi-sizing-calculator/backend/models"

// SizeGSLB returns the SEs and SUs needed for the GSLB sites.
// DNS request rates are carried through to the result but do not affect sizing.
func SizeGSLB(in models.GSLBInput, m models.CapacityModel) models.GSLBResult {
	result := models.GSLBResult{
		Sites:      in.SiteCount,
		SEVCPUSize: in.SEVCPUSize,
		DNSRPSDC:   in.DNSRPSDC,
		DNSRPSDR:   in.DNSRPSDR,
	}
	if in.SiteCount <= 0 {
		return result
	}

	result.SEs = in.SiteCount * m.GSLBSEsPerSite
	result.SUs = result.SEs * in.SEVCPUSize

	result.Trace.Add("gslb_ses", "site_count * gslb_ses_per_site",
		map[string]float64{"site_count": float64(in.SiteCount), "gslb_ses_per_site": float64(m.GSLBSEsPerSite)},
		float64(result.SEs))
	result.Trace.Add("gslb_sus", "gslb_ses * se_vcpu_size",
		map[string]float64{"gslb_ses": float64(result.SEs), "se_vcpu_size": float64(in.SEVCPUSize)},
		float64(result.SUs))

	return result
}
