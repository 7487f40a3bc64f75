package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/bundle/internal/adapters/telemetry"
	"go.trai.ch/bundle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_SpanLifecycleReachesRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	var spanID string
	gomock.InOrder(
		mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "copy", gomock.Any()).
			Do(func(id, _ string, _ any) { spanID = id }),
		mockRenderer.EXPECT().OnTaskLog(gomock.Any(), []byte("Copying ./src/fonts to ./fonts\n")).
			Do(func(id string, _ []byte) { assert.Equal(t, spanID, id) }),
		mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil),
		mockRenderer.EXPECT().Flush(),
	)

	tracer := telemetry.NewOTelTracer("test", mockRenderer)

	_, span := tracer.Start(context.Background(), "copy")
	_, err := span.Write([]byte("Copying ./src/fonts to ./fonts\n"))
	require.NoError(t, err)
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestOTelTracer_RecordErrorFailsTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "js", gomock.Any())
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Not(nil))
	mockRenderer.EXPECT().Flush().AnyTimes()

	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test", mockRenderer, sr)

	_, span := tracer.Start(context.Background(), "js")
	span.RecordError(errors.New("bundle failed"))
	span.End()

	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
	assert.Equal(t, "bundle failed", sr.Ended()[0].Status().Description)
	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestOTelSpan_SetAttribute(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test", nil, sr)

	_, span := tracer.Start(context.Background(), "attr-test")
	span.SetAttribute("str", "val")
	span.SetAttribute("int", 123)
	span.SetAttribute("int64", int64(456))
	span.SetAttribute("float", 3.14)
	span.SetAttribute("bool", true)
	span.SetAttribute("slice", []string{"a", "b"})
	span.SetAttribute("unknown", struct{}{})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrMap := make(map[string]any)
	for _, a := range spans[0].Attributes() {
		switch a.Value.Type() {
		case attribute.STRING:
			attrMap[string(a.Key)] = a.Value.AsString()
		case attribute.INT64:
			attrMap[string(a.Key)] = a.Value.AsInt64()
		case attribute.FLOAT64:
			attrMap[string(a.Key)] = a.Value.AsFloat64()
		case attribute.BOOL:
			attrMap[string(a.Key)] = a.Value.AsBool()
		case attribute.STRINGSLICE:
			attrMap[string(a.Key)] = a.Value.AsStringSlice()
		}
	}

	assert.Equal(t, "val", attrMap["str"])
	assert.Equal(t, int64(123), attrMap["int"])
	assert.Equal(t, int64(456), attrMap["int64"])
	assert.InEpsilon(t, 3.14, attrMap["float"], 0.001)
	assert.Equal(t, true, attrMap["bool"])
	assert.Equal(t, []string{"a", "b"}, attrMap["slice"])
	assert.Equal(t, "{}", attrMap["unknown"])
}

func TestOTelSpan_WriteWithoutRenderer(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test", nil, sr)

	_, span := tracer.Start(context.Background(), "log-test")
	n, err := span.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "log", events[0].Name)
	assert.Equal(t, "hello", events[0].Attributes[0].Value.AsString())
}
