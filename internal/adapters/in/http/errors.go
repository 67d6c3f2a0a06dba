package http

import (
	"errors"
	"net/http"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error codes of the JSON error body.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// mapError translates an error returned by a handler into a status code and body.
// Unrecognized errors become a 500 that does not leak the error text.
func mapError(err error) (int, ErrorResponse) {
	var (
		httpErr       *echo.HTTPError
		notFound      *errs.ObjectNotFoundError
		transition    *workorder.InvalidTransitionError
		conflict      *errs.ConflictError
		invalid       *errs.ValueIsInvalidError
		required      *errs.ValueIsRequiredError
		outOfRange    *errs.ValueIsOutOfRangeError
		fieldErrs     validator.ValidationErrors
		requestErr    *openapi3filter.RequestError
		securityError *openapi3filter.SecurityRequirementsError
	)

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, ErrorResponse{Code: codeForStatus(httpErr.Code), Message: httpMessage(httpErr)}

	case errors.As(err, &notFound):
		details := map[string]any{"entity": notFound.ParamName, "id": notFound.ID}
		if notFound.Cause != nil {
			details["reason"] = notFound.Cause.Error()
		}
		return http.StatusNotFound, ErrorResponse{Code: CodeNotFound, Message: err.Error(), Details: details}

	case errors.As(err, &transition):
		allowed := make([]string, 0, len(transition.Allowed))
		for _, s := range transition.Allowed {
			allowed = append(allowed, s.String())
		}
		return http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidation,
			Message: transition.Error(),
			Details: map[string]any{
				"currentStatus":   transition.From.String(),
				"requestedStatus": transition.To.String(),
				"allowed":         allowed,
			},
		}

	case errors.As(err, &conflict):
		return http.StatusConflict, ErrorResponse{
			Code:    CodeConflict,
			Message: conflict.Error(),
			Details: map[string]any{"field": conflict.ParamName, "value": stringify(conflict.Value)},
		}

	case errors.Is(err, ports.ErrActiveWorkOrderExists):
		return http.StatusConflict, ErrorResponse{Code: CodeConflict, Message: ports.ErrActiveWorkOrderExists.Error()}

	case errors.As(err, &fieldErrs):
		fields := make([]map[string]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, map[string]string{"field": fe.Namespace(), "rule": fe.Tag()})
		}
		return http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidation,
			Message: "request validation failed",
			Details: map[string]any{"fields": fields},
		}

	case errors.As(err, &requestErr):
		details := map[string]any{"reason": requestErr.Reason}
		if requestErr.Parameter != nil {
			details["parameter"] = requestErr.Parameter.Name
		}
		if requestErr.Err != nil {
			details["cause"] = requestErr.Err.Error()
		}
		return http.StatusBadRequest, ErrorResponse{Code: CodeValidation, Message: "request does not match the API schema", Details: details}

	case errors.As(err, &securityError):
		return http.StatusUnauthorized, ErrorResponse{Code: CodeUnauthorized, Message: securityError.Error()}

	case errors.As(err, &invalid):
		return http.StatusBadRequest, validationResponse(err, invalid.ParamName)
	case errors.As(err, &required):
		return http.StatusBadRequest, validationResponse(err, required.ParamName)
	case errors.As(err, &outOfRange):
		return http.StatusBadRequest, validationResponse(err, outOfRange.ParamName)
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, ErrorResponse{Code: CodeValidation, Message: err.Error()}

	default:
		return http.StatusInternalServerError, ErrorResponse{Code: CodeInternal, Message: "internal server error"}
	}
}

func validationResponse(err error, field string) ErrorResponse {
	return ErrorResponse{Code: CodeValidation, Message: err.Error(), Details: map[string]any{"field": field}}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return CodeNotFound
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusConflict:
		return CodeConflict
	default:
		if status >= http.StatusInternalServerError {
			return CodeInternal
		}
		return CodeValidation
	}
}

func httpMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return http.StatusText(err.Code)
}

func stringify(v any) any {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return v
}

// NewErrorHandler returns the echo error handler writing ErrorResponse bodies. Server
// errors are logged with the request they belong to.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("write error response", zap.Error(writeErr))
		}
	}
}
