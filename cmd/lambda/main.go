// Package main is the entry point for the translate API Lambda function.
package main

import (
	"context"
	"encoding/json"

	"github.com/allanhenderson/aws-translate-api/internal/config"
	"github.com/allanhenderson/aws-translate-api/internal/handler"
	"github.com/allanhenderson/aws-translate-api/internal/translator"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/sirupsen/logrus"
)

// function bundles the clients created once per cold start.
type function struct {
	warmer  *Warmer
	handler *handler.Handler
}

func main() {
	cfg := config.Load()

	logger, ok := cfg.NewLogger()
	if !ok {
		logger.WithField("log_level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, using INFO")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.WithError(err).Fatal("Failed to load AWS config")
	}

	fn := newFunction(
		translator.New(translate.NewFromConfig(awsCfg)),
		lambdasdk.NewFromConfig(awsCfg),
		cfg.FunctionName,
		logger,
	)

	lambda.Start(fn.handleRequest)
}

func newFunction(tr handler.Translator, invoker InvokeAPI, functionName string, logger *logrus.Logger) *function {
	return &function{
		warmer:  NewWarmer(invoker, functionName, logger),
		handler: handler.New(tr, logger),
	}
}

func (f *function) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return f.warmer.Handle(ctx, warmup)
	}

	resp, err := f.handler.Invoke(ctx, event)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp), nil
}
