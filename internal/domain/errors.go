package domain

import (
	"errors"
	"fmt"
)

// ErrorCode стабильный код ошибки для клиентов API
type ErrorCode string

const (
	CodeInvalidBirthData   ErrorCode = "VAL_001"
	CodeInvalidDateRange   ErrorCode = "VAL_002"
	CodeMissingField       ErrorCode = "VAL_003"
	CodeInvalidFormat      ErrorCode = "VAL_004"
	CodeComputationFailed  ErrorCode = "ENG_001"
	CodeComputationTimeout ErrorCode = "ENG_002"
	CodeEphemerisError     ErrorCode = "ENG_004"
	CodePartialResult      ErrorCode = "ENG_005"
	CodeTemplateNotFound   ErrorCode = "CNT_001"
	CodeLLMUnavailable     ErrorCode = "CNT_002"
	CodeSafetyTriggered    ErrorCode = "CNT_003"
	CodeGenerationFailed   ErrorCode = "CNT_004"
	CodeNotFound           ErrorCode = "GEN_002"
	CodeInternal           ErrorCode = "GEN_001"
	CodeRateLimited        ErrorCode = "RTE_001"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrTemporaryUnavailable = errors.New("fortune temporarily unavailable")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

// ValidationError входные данные отклонены до начала вычислений
type ValidationError struct {
	Code  ErrorCode
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed [%s]: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("validation failed [%s] %s: %s", e.Code, e.Field, e.Msg)
}

func NewValidationError(code ErrorCode, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Msg: msg}
}

// ComputationError жёсткий отказ подсистемы (эфемериды, календарь, сборка карты)
type ComputationError struct {
	Subsystem string
	Code      ErrorCode
	Err       error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s computation failed [%s]: %v", e.Subsystem, e.Code, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

func NewComputationError(subsystem string, code ErrorCode, err error) *ComputationError {
	return &ComputationError{Subsystem: subsystem, Code: code, Err: err}
}

// ContentError ошибка конфигурации контента (каталог шаблонов, переменные, теги)
type ContentError struct {
	Code ErrorCode
	Msg  string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content error [%s]: %s", e.Code, e.Msg)
}

// CodeOf возвращает код ошибки для ответа клиенту
func CodeOf(err error) ErrorCode {
	var (
		valErr     *ValidationError
		compErr    *ComputationError
		contentErr *ContentError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &valErr):
		return valErr.Code
	case errors.As(err, &compErr):
		return compErr.Code
	case errors.As(err, &contentErr):
		return contentErr.Code
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrTemporaryUnavailable):
		return CodeGenerationFailed
	default:
		return CodeInternal
	}
}
