// Package assist wraps the generative model behind three gateways: Planning
// (theme to timetable), Breakdown (goal to steps) and Advisory (task list to
// advice), and exposes the first two as interchangeable Expanders that turn
// one line of input into task drafts.
package assist

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/josephgoksu/FocusFlow/internal/llm"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation for non-empty trimmed strings
	_ = validate.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// PlanItem is one timetable slot produced by the Planning gateway.
type PlanItem struct {
	Time string `json:"time" validate:"required,nonempty"`
	Task string `json:"task" validate:"required,nonempty"`
}

// breakdownResponse is the object the Breakdown gateway asks for.
type breakdownResponse struct {
	Tasks []string `json:"tasks"`
}

// Response schemas sent with structured requests.
var (
	planSchema = llm.ArrayOf(llm.Object(map[string]*llm.Schema{
		"time": llm.String("time range, e.g. 09:00 - 10:00"),
		"task": llm.String("concrete work for the slot"),
	}, "time", "task"))

	breakdownSchema = llm.Object(map[string]*llm.Schema{
		"tasks": llm.ArrayOf(llm.String("one short actionable task")),
	}, "tasks")
)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationResult contains the result of schema validation
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// ErrorSummary returns a single string summarizing all validation errors
func (r ValidationResult) ErrorSummary() string {
	if r.Valid {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}

// validatePlan checks every item; the index is part of the field name.
func validatePlan(items []PlanItem) ValidationResult {
	result := ValidationResult{Valid: true}
	for i := range items {
		r := validateStruct(&items[i])
		if r.Valid {
			continue
		}
		result.Valid = false
		for _, e := range r.Errors {
			e.Field = fmt.Sprintf("items[%d].%s", i, e.Field)
			e.Message = fmt.Sprintf("item %d: %s", i, e.Message)
			result.Errors = append(result.Errors, e)
		}
	}
	return result
}

func validateStruct(s any) ValidationResult {
	err := validate.Struct(s)
	if err == nil {
		return ValidationResult{Valid: true}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationResult{Errors: []FieldError{{Message: err.Error()}}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: formatFieldError(fe),
		})
	}
	return ValidationResult{Errors: out}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "nonempty":
		return fmt.Sprintf("%s cannot be empty or whitespace", fe.Field())
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
}
