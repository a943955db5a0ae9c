package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the "errors" array of a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	hhmmPattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	registerOnce sync.Once
	registerErr  error

	// now is replaced in tests.
	now = time.Now
)

// Register installs the custom rules on gin's validator and makes error
// fields use their json names. It is safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected validator engine")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn installs the custom rules on v.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	rules := map[string]validator.Func{
		"notpast": notPast,
		"weekday": weekday,
		"hhmm":    hhmm,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp
// and returns midnight UTC of that day. Timestamps are converted to UTC
// before the day is taken, matching Today.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(models.DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return models.DateOnly(t.UTC()), nil
}

// Today is the current calendar date in UTC.
func Today() time.Time {
	return models.DateOnly(now().UTC())
}

func notPast(fl validator.FieldLevel) bool {
	var date time.Time
	switch v := fl.Field().Interface().(type) {
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return false
		}
		date = parsed
	case time.Time:
		date = models.DateOnly(v.UTC())
	default:
		return false
	}
	return !date.Before(Today())
}

func weekday(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, day := range models.Weekdays {
		if value == day {
			return true
		}
	}
	return false
}

func hhmm(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}

// Errors turns a binding error into field errors. Malformed bodies give a
// single entry for the field "body".
func Errors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldError{{Field: typeErr.Field, Message: fmt.Sprintf("must be of type %s", typeErr.Type)}}
	}
	return []FieldError{{Field: "body", Message: "invalid request body"}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "notpast":
		return "must be a valid date that is not in the past"
	case "weekday":
		return "must be a day of the week (Monday..Sunday)"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed the %s rule", fe.Tag())
	}
}
