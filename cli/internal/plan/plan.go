// ABOUTME: Loads and writes sizing plan files in YAML or JSON
// ABOUTME: A plan file is an advanced sizing request checked by the request validator

package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/backend/services"
)

// ErrInvalidPlan is returned when a plan parses but fails validation
var ErrInvalidPlan = errors.New("invalid plan")

// ValidationError lists every rejected field of a plan
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPlan, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPlan
}

// Load reads a plan file. The plan name defaults to the file's base name.
func Load(path string) (models.AdvancedRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.AdvancedRequest{}, fmt.Errorf("reading plan: %w", err)
	}

	req, err := Parse(data)
	if err != nil {
		return models.AdvancedRequest{}, fmt.Errorf("%s: %w", path, err)
	}

	if req.Name == "" {
		req.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return req, nil
}

// Parse decodes YAML or JSON plan data, rejecting unknown fields, then validates it.
func Parse(data []byte) (models.AdvancedRequest, error) {
	var req models.AdvancedRequest
	if err := yaml.UnmarshalStrict(data, &req); err != nil {
		return models.AdvancedRequest{}, fmt.Errorf("parsing plan: %w", err)
	}

	if err := Validate(req); err != nil {
		return models.AdvancedRequest{}, err
	}
	return req, nil
}

// Validate applies the same field rules the backend applies to advanced requests
func Validate(req models.AdvancedRequest) error {
	if fields := services.NewRequestValidator().ValidateAdvanced(req); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Marshal renders a plan as YAML
func Marshal(req models.AdvancedRequest) ([]byte, error) {
	data, err := yaml.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return data, nil
}

// Write saves a plan as YAML, refusing to replace an existing file unless force is set
func Write(path string, req models.AdvancedRequest, force bool) error {
	data, err := Marshal(req)
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing plan: %w", err)
	}
	return f.Close()
}

// Skeleton returns a plan with every environment and year present and zeroed,
// ready to be filled in by hand
func Skeleton(name string, arch models.ArchitectureSpec, gslb models.GSLBInput) models.AdvancedRequest {
	envs := make(map[models.EnvironmentKey]models.EnvironmentPlan, len(models.EnvironmentKeys))
	for _, key := range models.EnvironmentKeys {
		years := make(map[models.Year]models.EnvironmentInput, len(models.Years))
		for _, y := range models.Years {
			years[y] = models.EnvironmentInput{}
		}
		envs[key] = models.EnvironmentPlan{Years: years}
	}
	return models.AdvancedRequest{
		Name:         name,
		Environments: envs,
		GSLB:         gslb,
		Architecture: arch,
	}
}
