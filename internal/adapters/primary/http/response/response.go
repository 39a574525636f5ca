package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// Envelope формат всех ответов API
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody только код и общее сообщение, без пользовательских данных
type ErrorBody struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Field   string           `json:"field,omitempty"`
}

var messages = map[domain.ErrorCode]string{
	domain.CodeInvalidBirthData:   "invalid birth data",
	domain.CodeInvalidDateRange:   "birth date out of supported range",
	domain.CodeMissingField:       "required field is missing",
	domain.CodeInvalidFormat:      "invalid field format",
	domain.CodeComputationFailed:  "chart computation failed",
	domain.CodeComputationTimeout: "chart computation timed out",
	domain.CodeEphemerisError:     "ephemeris computation failed",
	domain.CodeTemplateNotFound:   "no matching template",
	domain.CodeGenerationFailed:   "fortune temporarily unavailable, please retry later",
	domain.CodeNotFound:           "resource not found",
	domain.CodeRateLimited:        "rate limit exceeded, please try again later",
	domain.CodeInternal:           "internal server error",
}

func Message(code domain.ErrorCode) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[domain.CodeInternal]
}

// Status HTTP-статус для кода ошибки
func Status(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidBirthData, domain.CodeInvalidDateRange, domain.CodeMissingField, domain.CodeInvalidFormat:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	case domain.CodeGenerationFailed, domain.CodeComputationTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Fail пишет ответ с кодом; внутренние ошибки логируются, остальные - на уровне warn
func Fail(c *gin.Context, log *slog.Logger, err error) {
	code := domain.CodeOf(err)
	body := &ErrorBody{Code: code, Message: Message(code)}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		body.Field = valErr.Field
	}

	status := Status(code)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err, "code", code, "path", c.FullPath())
	} else {
		log.Warn("request rejected", "error", err, "code", code, "path", c.FullPath())
	}

	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: body})
}

// Abort ответ с кодом без исходной ошибки (middleware)
func Abort(c *gin.Context, code domain.ErrorCode) {
	c.AbortWithStatusJSON(Status(code), Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: Message(code)},
	})
}
