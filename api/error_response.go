package api

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

type ErrorField struct {
	FieldName    string `json:"field_name"`
	ErrorMessage string `json:"error_message"`
}

type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []ErrorField `json:"fields,omitempty"`
}

func NewErrorResponse(err error, fields ...ErrorField) ErrorResponse {
	return ErrorResponse{Error: err.Error(), Fields: fields}
}

// ExtractErrorFields converts validation errors into the list of the failed fields.
// Any other error yields an empty list.
func ExtractErrorFields(err error) []ErrorField {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	fields := make([]ErrorField, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, ErrorField{
			FieldName:    fe.Field(),
			ErrorMessage: getBindingErrorMessage(fe.Tag(), fe.Kind().String()),
		})
	}

	return fields
}

// getBindingErrorMessage returns the human readable message of the failed validation tag.
func getBindingErrorMessage(tag, kind string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "min":
		if kind == "slice" {
			return "too few items"
		}
		return "value is too short"
	case "max":
		if kind == "slice" {
			return "too many items"
		}
		return "value is too long"
	case "len":
		return "invalid length"
	case "email":
		return "invalid email address"
	case "url":
		return "invalid URL format"
	case "alphanum":
		return "must contain only letters and numbers"
	case "alpha":
		return "must contain only letters"
	case "numeric":
		return "must contain only numbers"
	case "gte":
		return "must be greater than or equal to the allowed minimum"
	case "lte":
		return "must be less than or equal to the allowed maximum"
	case "gt":
		return "must be greater than the allowed minimum"
	case "lt":
		return "must be less than the allowed maximum"
	case "oneof":
		return "must be one of the allowed values"
	case "uuid":
		return "invalid UUID format"
	case "ip":
		return "invalid IP address"
	case "ipv4":
		return "invalid IPv4 address"
	case "ipv6":
		return "invalid IPv6 address"
	case "startswith":
		return "must start with the required prefix"
	case "endswith":
		return "must end with the required suffix"
	case renderFormatTag:
		return "must be one of: " + renderFormatsList
	}

	return "invalid input"
}

func extractErrorFromBuffer(buf *bytes.Buffer) (*ErrorResponse, error) {
	var resp ErrorResponse
	if err := json.NewDecoder(buf).Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
