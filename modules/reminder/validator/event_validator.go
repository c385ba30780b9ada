package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"eventrely-api/core/constants"
	"eventrely-api/core/controller"
	"eventrely-api/modules/reminder/dto"

	playground "github.com/go-playground/validator/v10"
)

// ValidationResult collects field errors for a request.
type ValidationResult struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) Add(field, message string) {
	r.Errors = append(r.Errors, controller.NewValidationError(field, message))
}

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func structErrors(req any) *ValidationResult {
	result := &ValidationResult{}
	if err := validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(playground.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				result.Add(fe.Field(), messageFor(fe))
			}
		} else {
			result.Add("request", err.Error())
		}
	}
	return result
}

func messageFor(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// trimmed returns s without surrounding whitespace; lengths are checked on
// the value the event will store.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// ValidateCreateEventRequest trims the title and description in place
// before checking them.
func ValidateCreateEventRequest(req *dto.CreateEventRequest) *ValidationResult {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = trimmed(req.Description)
	result := structErrors(req)
	if req.EventDate != "" {
		if _, err := ParseDateTime(req.EventDate); err != nil {
			result.Add("event_date", "must be an ISO 8601 date-time")
		}
	}
	return result
}

func ValidateUpdateEventRequest(req *dto.UpdateEventRequest) *ValidationResult {
	req.Title = trimmed(req.Title)
	req.Description = trimmed(req.Description)
	result := structErrors(req)
	if req.EventDate != nil {
		if _, err := ParseDateTime(*req.EventDate); err != nil {
			result.Add("event_date", "must be an ISO 8601 date-time")
		}
	}
	return result
}

// ParseLimit parses the upcoming ?limit= value. An empty value yields 0,
// which the query service replaces with its default.
func ParseLimit(raw string) (int, *ValidationResult) {
	result := &ValidationResult{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, result
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		result.Add("limit", "must be a positive integer")
		return 0, result
	}
	return n, result
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDateTime accepts RFC3339 or a naive ISO 8601 timestamp; naive values
// are read as UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", s)
}

// ParseDate parses a YYYY-MM-DD path segment as a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
