// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ruleforge

import (
	"go.uber.org/zap"
)

// L is the package-level logger used for progress and verifier diagnostics.
// Replace it in tests with SetLogger to silence or capture output.
var L = newDefaultLogger()

func newDefaultLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = ""
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// SetLogger replaces the package logger, e.g. with zap.NewNop().Sugar() in tests.
func SetLogger(l *zap.SugaredLogger) {
	L = l
}
