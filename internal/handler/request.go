package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/allanhenderson/aws-translate-api/internal/domain"
)

// requiredFields are checked in order; the first missing one is reported.
var requiredFields = []string{"text", "target_language"}

// Event is the subset of the API Gateway proxy event the handler reads.
// Body is kept raw because it may be a JSON string or an already decoded object.
type Event struct {
	Body json.RawMessage `json:"body"`
}

// decodeRequest turns a raw Lambda payload into a validated TranslationRequest.
func decodeRequest(_ context.Context, payload []byte) (interface{}, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	body, err := parseBody(ev.Body)
	if err != nil {
		return nil, err
	}

	req, err := validateRequest(body)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// parseBody normalizes the string-or-object body into a decoded JSON value.
func parseBody(raw json.RawMessage) (interface{}, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, &domain.ValidationError{Message: domain.MsgInvalidJSON, Syntax: true, Err: err}
		}
		raw = []byte(s)
	}

	var body interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &domain.ValidationError{Message: domain.MsgInvalidJSON, Syntax: true, Err: err}
	}
	return body, nil
}

// validateRequest applies the input rules and stops at the first violation.
func validateRequest(body interface{}) (domain.TranslationRequest, error) {
	if isEmpty(body) {
		return domain.TranslationRequest{}, &domain.ValidationError{Message: domain.MsgEmptyBody}
	}

	fields, ok := body.(map[string]interface{})
	if !ok {
		return domain.TranslationRequest{}, domain.MissingFieldError(requiredFields[0])
	}

	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			return domain.TranslationRequest{}, domain.MissingFieldError(field)
		}
	}

	text, ok := fields["text"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return domain.TranslationRequest{}, &domain.ValidationError{Message: domain.MsgInvalidText}
	}

	target, ok := fields["target_language"].(string)
	if !ok {
		return domain.TranslationRequest{}, &domain.ValidationError{Message: "Field target_language must be a string"}
	}

	source := domain.DefaultSourceLanguage
	if v, present := fields["source_language"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return domain.TranslationRequest{}, &domain.ValidationError{Message: "Field source_language must be a string"}
		}
		source = s
	}

	return domain.TranslationRequest{
		Text:           text,
		TargetLanguage: target,
		SourceLanguage: source,
	}, nil
}

// isEmpty reports whether a decoded body counts as "no body": absent, null,
// an empty object, or any other falsy JSON value.
func isEmpty(body interface{}) bool {
	switch v := body.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	default:
		return false
	}
}
