package insights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/BerylCAtieno/business-insights-agent/internal/models"
)

// MaxBodyBytes bounds a request body. Every field at its validation cap,
// JSON-escaped, still fits.
const MaxBodyBytes = 64 << 10

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func profileValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report JSON names so callers see the fields they actually sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Amount validates as its numeric value.
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			if a, ok := v.Interface().(models.Amount); ok {
				return a.Float64()
			}
			return nil
		}, models.Amount{})
	})
	return validate
}

// ReadBody reads at most MaxBodyBytes from r. A larger body is a *ValidationError;
// any other read failure is returned as is.
func ReadBody(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), err == nil && len(body) > MaxBodyBytes:
		return nil, &ValidationError{Reason: fmt.Sprintf("request body exceeds %d bytes", MaxBodyBytes)}
	case err != nil:
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}

// DecodeProfile parses and validates a request body.
// Every failure is returned as a *ValidationError.
func DecodeProfile(body []byte) (*models.BusinessProfile, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, &ValidationError{Reason: "request body is required"}
	}
	if body[0] != '{' {
		return nil, &ValidationError{Reason: "request body must be a JSON object"}
	}

	var profile models.BusinessProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, &ValidationError{
				Fields: []string{typeErr.Field},
				Reason: "must be of type " + typeErr.Type.String(),
			}
		}
		return nil, &ValidationError{Reason: err.Error()}
	}

	if err := profileValidator().Struct(&profile); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, &ValidationError{Reason: err.Error()}
		}
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, jsonPath(fe.Namespace()))
		}
		return nil, &ValidationError{Fields: fields, Reason: "value out of range"}
	}

	return &profile, nil
}

// jsonPath strips the root struct name from a validator namespace,
// e.g. "BusinessProfile.financials.monthlyRevenue" -> "financials.monthlyRevenue".
func jsonPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
