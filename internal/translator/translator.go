// Package translator calls AWS Translate and classifies its failures.
package translator

import (
	"context"
	"errors"

	"github.com/allanhenderson/aws-translate-api/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/aws/aws-sdk-go-v2/service/translate/types"
	"github.com/aws/smithy-go"
)

// TranslateAPI is the part of *translate.Client the Translator uses.
type TranslateAPI interface {
	TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error)
}

// Translator sends single-text requests to AWS Translate.
// It holds no request state and is safe to share across invocations.
type Translator struct {
	api TranslateAPI
}

// New creates a Translator around an existing client.
func New(api TranslateAPI) *Translator {
	return &Translator{api: api}
}

// Translate performs one TranslateText call.
// Failures are returned as *domain.ProviderError.
func (t *Translator) Translate(ctx context.Context, req domain.TranslationRequest) (*domain.Translation, error) {
	source := req.SourceLanguage
	if source == "" {
		source = domain.DefaultSourceLanguage
	}

	out, err := t.api.TranslateText(ctx, &translate.TranslateTextInput{
		Text:               aws.String(req.Text),
		SourceLanguageCode: aws.String(source),
		TargetLanguageCode: aws.String(req.TargetLanguage),
	})
	if err != nil {
		return nil, classify(err)
	}
	if out == nil {
		return nil, &domain.ProviderError{Kind: domain.KindOther, Message: "empty response from translate"}
	}

	return &domain.Translation{
		TranslatedText:     aws.ToString(out.TranslatedText),
		SourceLanguageCode: aws.ToString(out.SourceLanguageCode),
		TargetLanguageCode: aws.ToString(out.TargetLanguageCode),
	}, nil
}

// classify maps an SDK error onto a provider error kind, most specific first.
func classify(err error) *domain.ProviderError {
	var unsupported *types.UnsupportedLanguagePairException
	if errors.As(err, &unsupported) {
		return &domain.ProviderError{
			Kind:    domain.KindUnsupportedPair,
			Message: unsupported.ErrorMessage(),
			Code:    unsupported.ErrorCode(),
			Err:     err,
		}
	}

	var invalid *types.InvalidRequestException
	if errors.As(err, &invalid) {
		return &domain.ProviderError{
			Kind:    domain.KindInvalidRequest,
			Message: invalid.ErrorMessage(),
			Code:    invalid.ErrorCode(),
			Err:     err,
		}
	}

	pe := &domain.ProviderError{Kind: domain.KindOther, Message: err.Error(), Err: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		pe.Code = apiErr.ErrorCode()
	}
	return pe
}
