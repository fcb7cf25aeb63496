// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLoggerWithTrace_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	result := LoggerWithTrace(context.Background(), logger)

	result.Info("test message")
	output := buf.String()

	if strings.Contains(output, "trace_id") {
		t.Errorf("output should not contain trace_id when no span: %s", output)
	}
}

func TestLoggerWithTrace_WithSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	LoggerWithTrace(ctx, logger).Info("test message")
	output := buf.String()

	if !strings.Contains(output, "trace_id") {
		t.Errorf("output should contain trace_id: %s", output)
	}
	if !strings.Contains(output, "span_id") {
		t.Errorf("output should contain span_id: %s", output)
	}
}

func TestRecordError_NilSafe(t *testing.T) {
	// Must not panic on nil span or nil error.
	RecordError(nil, errors.New("boom"))

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()

	RecordError(span, nil)
	RecordError(span, errors.New("recorded"))
}

func TestSpanFromContext_NoSpan(t *testing.T) {
	span := SpanFromContext(context.Background())

	if span == nil {
		t.Error("expected a no-op span, got nil")
	}
	if span.SpanContext().IsValid() {
		t.Error("expected an invalid span context without a span")
	}
}
