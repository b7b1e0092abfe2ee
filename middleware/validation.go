package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodySize 요청 본문 최대 크기
const maxBodySize = 64 * 1024

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 에러 메시지에 JSON 필드명 사용
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError 필드 검증 실패
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 요청 본문 검증 실패. Fields 는 구조체 검증 실패일 때만 채워집니다.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return e.Message + ": " + strings.Join(msgs, "; ")
}

// DecodeJSON 본문을 dst 로 디코딩한 뒤 validate 태그로 검증합니다.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return decodeJSON(w, r, dst, false)
}

// DecodeOptionalJSON 빈 본문을 허용하는 DecodeJSON
func DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return decodeJSON(w, r, dst, true)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return ValidateStruct(dst)
			}
			return &ValidationError{Message: "Request body is required"}
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ValidationError{Message: "Request body too large"}
		}
		return &ValidationError{Message: "Invalid request body"}
	}
	return ValidateStruct(dst)
}

// ValidateStruct 구조체 태그 검증
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: "Invalid request"}
	}

	out := &ValidationError{Message: "Validation failed"}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: formatFieldError(fe)})
	}
	return out
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
