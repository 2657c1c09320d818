// Package domain contains the core domain types for the translate API.
package domain

// DefaultSourceLanguage asks the provider to detect the source language.
const DefaultSourceLanguage = "auto"

// TranslationRequest is a validated inbound translation request.
type TranslationRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language,omitempty"`
}

// Translation is the provider's reply to a single TranslateText call.
type Translation struct {
	TranslatedText     string
	SourceLanguageCode string
	TargetLanguageCode string
}

// TranslationResult is the success body returned to the caller.
type TranslationResult struct {
	TranslatedText         string `json:"translated_text"`
	DetectedSourceLanguage string `json:"detected_source_language"`
	TargetLanguage         string `json:"target_language"`
	Timestamp              string `json:"timestamp"`
}

// ErrorResponse is the body of every 4xx/5xx envelope.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
