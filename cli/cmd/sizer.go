// ABOUTME: Sizing backends for CLI commands
// ABOUTME: The HTTP client or an in-process calculator behind one interface

package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/backend/services"
	"github.com/markalston/avi-sizing-calculator/cli/internal/client"
	"github.com/markalston/avi-sizing-calculator/cli/internal/plan"
)

// sizer produces estimates either over HTTP or in-process
type sizer interface {
	EstimateQuick(ctx context.Context, cores float64) (*models.QuickEstimate, error)
	EstimateAdvanced(ctx context.Context, req models.AdvancedRequest) (*models.AdvancedResponse, error)
}

// newSizer returns the in-process calculator with --local, otherwise the API client
func newSizer() sizer {
	if IsLocal() {
		return newLocalSizer()
	}
	return client.New(GetAPIURL())
}

// localSizer runs the calculator without a backend
type localSizer struct {
	calc *services.SizingCalculator
}

func newLocalSizer() *localSizer {
	return &localSizer{calc: services.NewSizingCalculator(models.DefaultCapacityModel())}
}

func (l *localSizer) EstimateQuick(ctx context.Context, cores float64) (*models.QuickEstimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	est, err := l.calc.EstimateQuick(cores)
	if err != nil {
		return nil, err
	}
	return &est, nil
}

func (l *localSizer) EstimateAdvanced(ctx context.Context, req models.AdvancedRequest) (*models.AdvancedResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := plan.Validate(req); err != nil {
		return nil, err
	}

	report := l.calc.Calculate(req)
	if !req.Explain {
		report = report.WithoutTrace()
	}
	return &models.AdvancedResponse{
		Report: report,
		Metadata: models.ResponseMetadata{
			CalculationID: uuid.NewString(),
			Name:          req.Name,
			Timestamp:     time.Now().UTC(),
		},
	}, nil
}

// isInputError reports whether err was caused by the request rather than the environment
func isInputError(err error) bool {
	return errors.Is(err, services.ErrInvalidInput) || errors.Is(err, plan.ErrInvalidPlan) || client.IsBadRequest(err)
}
