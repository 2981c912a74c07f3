package observability

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/seq"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr
}

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	return m, reader
}

// counterTotal sums every data point of the named int64 counter.
func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) (int64, []attribute.Set) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var total int64
	var attrs []attribute.Set
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s is %T, want Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
				attrs = append(attrs, dp.Attributes)
			}
		}
	}
	return total, attrs
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) attribute.Value {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}

func TestInstrument_Exhausted(t *testing.T) {
	sr := recordSpans(t)
	metrics, reader := newTestMetrics(t)

	got, err := seq.ToSlice(context.Background(), Instrument(seq.Range(0, 5), "nums", metrics))
	if err != nil || len(got) != 5 {
		t.Fatalf("ToSlice = (%v, %v)", got, err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != SpanEnumerate {
		t.Errorf("expected span %q, got %q", SpanEnumerate, span.Name())
	}
	if v := spanAttr(span, AttrElements).AsInt64(); v != 5 {
		t.Errorf("expected 5 elements on span, got %d", v)
	}
	if v := spanAttr(span, AttrStatus).AsString(); v != StatusOK {
		t.Errorf("expected status ok, got %q", v)
	}
	if v := spanAttr(span, AttrPipeline).AsString(); v != "nums" {
		t.Errorf("expected pipeline nums, got %q", v)
	}

	if n, _ := counterTotal(t, reader, "seq.elements"); n != 5 {
		t.Errorf("seq.elements = %d, want 5", n)
	}
	if n, _ := counterTotal(t, reader, "seq.enumerations"); n != 1 {
		t.Errorf("seq.enumerations = %d, want 1", n)
	}
}

func TestInstrument_RunIDPerEnumeration(t *testing.T) {
	sr := recordSpans(t)
	s := Instrument(seq.FromValues("a", "b"), "letters", nil)
	for range 2 {
		if _, err := seq.ToSlice(context.Background(), s); err != nil {
			t.Fatal(err)
		}
	}
	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	first, second := spanAttr(spans[0], AttrRunID).AsString(), spanAttr(spans[1], AttrRunID).AsString()
	if first == "" || first == second {
		t.Errorf("expected distinct run ids, got %q and %q", first, second)
	}
}

func TestInstrument_Error(t *testing.T) {
	sr := recordSpans(t)
	metrics, reader := newTestMetrics(t)
	boom := errors.BufferLimit("OrderBy", 1)
	s := Instrument(seq.Concat(seq.Range(0, 2), seq.Fail[int](boom)), "failing", metrics)

	if _, err := seq.ToSlice(context.Background(), s); !errors.IsBufferLimit(err) {
		t.Fatalf("expected buffer limit error, got %v", err)
	}

	span := sr.Ended()[0]
	if span.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", span.Status())
	}
	if v := spanAttr(span, AttrElements).AsInt64(); v != 2 {
		t.Errorf("expected 2 elements before the failure, got %d", v)
	}

	n, attrs := counterTotal(t, reader, "seq.errors")
	if n != 1 {
		t.Fatalf("seq.errors = %d, want 1", n)
	}
	if code, _ := attrs[0].Value(AttrErrorCode); code.AsString() != string(errors.ErrCodeBufferLimit) {
		t.Errorf("expected code %s, got %q", errors.ErrCodeBufferLimit, code.AsString())
	}
}

func TestInstrument_ClosedEarly(t *testing.T) {
	sr := recordSpans(t)
	v, err := seq.First(context.Background(), Instrument(seq.Range(7, 100), "head", nil))
	if err != nil || v != 7 {
		t.Fatalf("First = (%d, %v)", v, err)
	}
	span := sr.Ended()[0]
	if s := spanAttr(span, AttrStatus).AsString(); s != StatusAbandoned {
		t.Errorf("expected status %q, got %q", StatusAbandoned, s)
	}
	if n := spanAttr(span, AttrElements).AsInt64(); n != 1 {
		t.Errorf("expected 1 element, got %d", n)
	}
}

func TestInstrument_KeepsCountProbe(t *testing.T) {
	sr := recordSpans(t)
	s := Instrument(seq.Range(0, 3), "sized", nil)
	if n, ok := seq.TryCount(s); !ok || n != 3 {
		t.Errorf("TryCount = (%d, %v), want (3, true)", n, ok)
	}
	it := s.Iter(context.Background())
	_ = it.Close()
	if len(sr.Ended()) != 0 {
		t.Error("expected no span for an enumeration that was never pulled")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.Overflow("int8"), "ARITHMETIC_OVERFLOW"},
		{context.Canceled, "CANCELED"},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), "CANCELED"},
		{fmt.Errorf("plain"), "UNKNOWN"},
	}
	for _, tc := range tests {
		if got := errorCode(tc.err); got != tc.want {
			t.Errorf("errorCode(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), ServiceInfo{Name: "seqstat"}, config.ObservabilityConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("no-op shutdown returned %v", err)
	}
}

func TestDefaultConfigs(t *testing.T) {
	tc := DefaultTracerConfig("seqstat")
	if tc.ServiceName != "seqstat" || tc.Endpoint != "localhost:4318" || tc.SampleRate != 1.0 || !tc.Insecure {
		t.Errorf("unexpected tracer defaults: %+v", tc)
	}
	mc := DefaultMeterConfig("seqstat")
	if mc.Interval != 15*time.Second || mc.Environment != "development" {
		t.Errorf("unexpected meter defaults: %+v", mc)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); !strings.HasPrefix(got, tc.want) {
			t.Errorf("sampler(%v) = %q, want prefix %q", tc.rate, got, tc.want)
		}
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("seqstat", "1.0.0", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := res.Set().Value(AttrServiceName)
	if !ok || v.AsString() != "seqstat" {
		t.Errorf("expected service.name seqstat, got %v", v)
	}
}
