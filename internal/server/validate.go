package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wallcraft/internal/apperr"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
// Failures come back as Invalid errors.
func decodeAndValidate(r *http.Request, op string, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperr.Wrap(apperr.Invalid, op, errors.Wrap(err, "read body"))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.New(apperr.Invalid, op, "invalid JSON body")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("field '%s' %s", fe.Field(), msgForTag(fe)))
			}
			return apperr.New(apperr.Invalid, op, strings.Join(msgs, "; "))
		}
		return apperr.Wrap(apperr.Invalid, op, err)
	}
	return nil
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required for this mode"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
