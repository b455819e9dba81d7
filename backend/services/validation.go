// ABOUTME: Request validation for sizing inputs built on go-playground/validator
// ABOUTME: Reports every rejected field with its JSON path instead of failing on the first

package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/markalston/avi-sizing-calculator/backend/models"
)

// ValidationRule registers one custom tag on the underlying validator
type ValidationRule struct {
	Rule func(v *validator.Validate)
}

// RequestValidator wraps validator.Validate and turns its errors into field errors
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator with the sizing enum tags registered
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	rv := &RequestValidator{validate: v}
	rv.Register(sizingValidationRules()...)
	return rv
}

// Register applies custom validation rules
func (rv *RequestValidator) Register(rules ...ValidationRule) {
	for _, r := range rules {
		r.Rule(rv.validate)
	}
}

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func sizingValidationRules() []ValidationRule {
	return []ValidationRule{
		{Rule: registerFn("cipher_profile", oneOf(string(models.CipherRSA2K), string(models.CipherECC)))},
		{Rule: registerFn("seg_model", oneOf(string(models.SEGShared), string(models.SEGDedicated)))},
		{Rule: registerFn("ha_config", oneOf(string(models.HAElastic), string(models.HALegacy)))},
	}
}

func oneOf(allowed ...string) func(fl validator.FieldLevel) bool {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		val := fl.Field().String()
		for _, a := range allowed {
			if val == a {
				return true
			}
		}
		return false
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// ValidateAdvanced checks an advanced request after defaults are resolved.
// Unknown environment keys and years outside 1..3 are rejected.
func (rv *RequestValidator) ValidateAdvanced(req models.AdvancedRequest) []models.FieldError {
	var fields []models.FieldError

	for key, plan := range req.Environments {
		prefix := "environments." + sanitizeForLog(string(key))
		if !key.Valid() {
			fields = append(fields, models.FieldError{
				Field:   prefix,
				Message: fmt.Sprintf("unknown environment, expected one of %s", joinKeys(models.EnvironmentKeys)),
			})
			continue
		}
		for year, in := range plan.Years {
			yearPrefix := fmt.Sprintf("%s.years.%d", prefix, year)
			if !year.Valid() {
				fields = append(fields, models.FieldError{
					Field:   yearPrefix,
					Message: fmt.Sprintf("year must be between 1 and %d", models.PlanningYears),
				})
				continue
			}
			fields = append(fields, rv.structErrors(yearPrefix, in)...)
		}
	}

	fields = append(fields, rv.structErrors("gslb", req.GSLB)...)
	fields = append(fields, rv.structErrors("architecture", req.Architecture.Resolve())...)

	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields
}

// QuickFieldErrors reports a quick estimate failure against the vcf_cores field
func QuickFieldErrors(err error) []models.FieldError {
	return []models.FieldError{{Field: "vcf_cores", Message: err.Error()}}
}

func (rv *RequestValidator) structErrors(prefix string, s any) []models.FieldError {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.FieldError{{Field: prefix, Message: err.Error()}}
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{
			Field:   prefix + "." + fe.Field(),
			Message: describeTag(fe),
		})
	}
	return fields
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "cipher_profile":
		return fmt.Sprintf("must be %q or %q", models.CipherRSA2K, models.CipherECC)
	case "seg_model":
		return fmt.Sprintf("must be %q or %q", models.SEGShared, models.SEGDedicated)
	case "ha_config":
		return fmt.Sprintf("must be %q or %q", models.HAElastic, models.HALegacy)
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func joinKeys(keys []models.EnvironmentKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
