// Package handler provides the Lambda handler for the translate API.
//
// A request flows through a go-kit awslambda pipeline:
// decodeRequest parses and validates the event, the translate endpoint calls
// the provider, and encodeResponse builds the 200 envelope. Every failure is
// turned into a 4xx/5xx envelope by encodeError, so Invoke never returns an
// error to the Lambda runtime.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/allanhenderson/aws-translate-api/internal/domain"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/transport/awslambda"
	"github.com/sirupsen/logrus"
)

// Translator is the provider capability the handler depends on.
type Translator interface {
	Translate(ctx context.Context, req domain.TranslationRequest) (*domain.Translation, error)
}

// Handler implements lambda.Handler for translation requests.
type Handler struct {
	translator Translator
	logger     *logrus.Logger
	now        func() time.Time
	server     *awslambda.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the clock used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// New creates a Handler. The translator is shared by all invocations.
func New(t Translator, logger *logrus.Logger, opts ...Option) *Handler {
	h := &Handler{
		translator: t,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.server = awslambda.NewHandler(
		loggingMiddleware(h)(makeTranslateEndpoint(h)),
		decodeRequest,
		encodeResponse,
		awslambda.HandlerBefore(h.logStart),
		awslambda.HandlerErrorHandler(errorLogger{h}),
		awslambda.HandlerErrorEncoder(h.encodeError),
	)
	return h
}

// Invoke handles one raw Lambda payload and returns the serialized envelope.
func (h *Handler) Invoke(ctx context.Context, payload []byte) (resp []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr := fmt.Errorf("handler panic: %v", r)
			errorLogger{h}.Handle(ctx, perr)
			resp, err = h.encodeError(ctx, perr)
		}
	}()
	return h.server.Invoke(ctx, payload)
}

func makeTranslateEndpoint(h *Handler) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(domain.TranslationRequest)
		if !ok {
			return nil, fmt.Errorf("unexpected request type %T", request)
		}

		out, err := h.translator.Translate(ctx, req)
		if err != nil {
			return nil, err
		}

		return domain.TranslationResult{
			TranslatedText:         out.TranslatedText,
			DetectedSourceLanguage: out.SourceLanguageCode,
			TargetLanguage:         out.TargetLanguageCode,
			Timestamp:              h.now().UTC().Format(time.RFC3339Nano),
		}, nil
	}
}

func loggingMiddleware(h *Handler) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			if req, ok := request.(domain.TranslationRequest); ok {
				h.entry(ctx).Infof("Translating text from %s to %s", req.SourceLanguage, req.TargetLanguage)
			}
			begin := time.Now()
			response, err := next(ctx, request)
			if err == nil {
				h.entry(ctx).WithField("took", time.Since(begin).String()).Info("Translation completed successfully")
			}
			return response, err
		}
	}
}

func successHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

func encodeResponse(_ context.Context, response interface{}) ([]byte, error) {
	body, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return json.Marshal(events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    successHeaders(),
		Body:       string(body),
	})
}

// encodeError maps any failure onto an error envelope.
func (h *Handler) encodeError(ctx context.Context, err error) ([]byte, error) {
	status, resp := errorResponse(ctx, err)
	body, mErr := json.Marshal(resp)
	if mErr != nil {
		return nil, fmt.Errorf("failed to marshal error response: %w", mErr)
	}
	return json.Marshal(events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(body),
	})
}

// errorResponse checks the most specific error kinds first.
func errorResponse(ctx context.Context, err error) (int, domain.ErrorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, domain.ErrorResponse{Error: verr.Message}
	}

	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		switch perr.Kind {
		case domain.KindUnsupportedPair:
			return http.StatusBadRequest, domain.ErrorResponse{
				Error:  domain.MsgUnsupportedPair,
				Detail: perr.Message,
			}
		case domain.KindInvalidRequest:
			msg := perr.Message
			if msg == "" {
				msg = "Invalid request"
			}
			return http.StatusBadRequest, domain.ErrorResponse{Error: msg}
		}
	}

	return http.StatusInternalServerError, domain.ErrorResponse{
		Error:     domain.MsgInternal,
		RequestID: requestID(ctx),
	}
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}

func (h *Handler) entry(ctx context.Context) *logrus.Entry {
	entry := h.logger.WithContext(ctx)
	if id := requestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}
	return entry
}

func (h *Handler) logStart(ctx context.Context, _ []byte) context.Context {
	h.entry(ctx).Infof("Processing translation request at %s", h.now().UTC().Format(time.RFC3339Nano))
	return ctx
}

// errorLogger implements transport.ErrorHandler. It only logs.
type errorLogger struct {
	h *Handler
}

func (l errorLogger) Handle(ctx context.Context, err error) {
	entry := l.h.entry(ctx)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		if verr.Syntax {
			entry.WithError(err).Error("Invalid JSON in request")
			return
		}
		entry.WithField("reason", verr.Message).Warn("Invalid input received")
		return
	}

	var perr *domain.ProviderError
	if errors.As(err, &perr) {
		entry = entry.WithFields(logrus.Fields{
			"kind": perr.Kind.String(),
			"code": perr.Code,
		})
		switch perr.Kind {
		case domain.KindUnsupportedPair:
			entry.Errorf("Unsupported language pair: %s", perr.Message)
			return
		case domain.KindInvalidRequest:
			entry.Errorf("Invalid request: %s", perr.Message)
			return
		}
	}

	entry.WithError(err).Error("Unexpected error")
}
