package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator. Field names in messages are
// the query parameter names.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name := f.Tag.Get("query"); name != "" {
				return name
			}
			return f.Name
		})
	})
	return validate
}

// searchRequest is the query of GET /api/v1/products/search.
type searchRequest struct {
	Query string `query:"q" validate:"max=256"`
	Limit int    `query:"limit" validate:"gte=0,lte=500"`
}

// recommendationsRequest is the query of GET /api/v1/products/{id}/recommendations.
type recommendationsRequest struct {
	ProductID int64    `query:"id"`
	N         *int     `query:"n" validate:"omitempty,excluded_with=Threshold,gte=1,lte=1000"`
	Threshold *float64 `query:"threshold" validate:"omitempty,gte=0,lt=1"`
}

// Selection returns the requested policy. The zero Selection asks the
// service for its configured default.
func (r *recommendationsRequest) Selection() domain.Selection {
	switch {
	case r.N != nil:
		return domain.TopN(*r.N)
	case r.Threshold != nil:
		return domain.Threshold(*r.Threshold)
	default:
		return domain.Selection{}
	}
}

func parseSearchRequest(r *http.Request) (*searchRequest, error) {
	q := r.URL.Query()
	req := &searchRequest{Query: strings.TrimSpace(q.Get("q"))}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("limit must be an integer")
		}
		req.Limit = limit
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

func parseRecommendationsRequest(r *http.Request) (*recommendationsRequest, error) {
	id, err := productIDParam(r)
	if err != nil {
		return nil, err
	}
	req := &recommendationsRequest{ProductID: id}

	q := r.URL.Query()
	if v := q.Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("n must be an integer")
		}
		req.N = &n
	}
	if v := q.Get("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("threshold must be a number")
		}
		req.Threshold = &t
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// productIDParam parses the {id} path segment.
func productIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("product id %q is not an integer", raw)
	}
	return id, nil
}

// validateRequest runs struct validation and flattens the field errors
// into one message.
func validateRequest(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, translateError(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with threshold", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
