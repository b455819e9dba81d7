// ABOUTME: Quick estimator giving a ratio-based SU figure from VCF core count
// ABOUTME: Independent of the advanced sizing model

package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// CoresPerSU is the fixed ratio used by the quick estimate
const CoresPerSU = 100

// MaxVCFCores bounds the quick estimate input so the SU count fits an int
const MaxVCFCores = 1e9

// ErrInvalidInput is returned when an estimate cannot be computed from the input
var ErrInvalidInput = errors.New("invalid input")

// EstimateQuick returns ceil(cores / 100) service units.
func EstimateQuick(vcfCores float64) (models.QuickEstimate, error) {
	if vcfCores <= 0 || math.IsNaN(vcfCores) || math.IsInf(vcfCores, 0) {
		return models.QuickEstimate{}, fmt.Errorf("%w: VCF core count must be a positive number, got %v", ErrInvalidInput, vcfCores)
	}
	if vcfCores > MaxVCFCores {
		return models.QuickEstimate{}, fmt.Errorf("%w: VCF core count must be at most %v, got %v", ErrInvalidInput, MaxVCFCores, vcfCores)
	}

	return models.QuickEstimate{
		VCFCores:     vcfCores,
		EstimatedSUs: int(math.Ceil(vcfCores / CoresPerSU)),
		CoresPerSU:   CoresPerSU,
	}, nil
}
