package observability

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/seq"
)

// Enumeration statuses.
const (
	StatusOK        = "ok"
	StatusError     = "error"
	StatusAbandoned = "abandoned"
)

// Instrument returns s with every enumeration traced and measured under
// name. metrics may be nil, in which case only spans and logs are produced.
// The count probe of s is kept.
func Instrument[T any](s *seq.Seq[T], name string, metrics *Metrics) *seq.Seq[T] {
	return seq.Decorate(s, func(ctx context.Context, it seq.Iterator[T]) seq.Iterator[T] {
		runID := uuid.NewString()
		return &instrumentedIter[T]{
			inner:   it,
			ctx:     logger.ContextWithRunID(logger.ContextWithPipeline(ctx, name), runID),
			name:    name,
			runID:   runID,
			metrics: metrics,
		}
	})
}

type instrumentedIter[T any] struct {
	inner   seq.Iterator[T]
	ctx     context.Context
	name    string
	runID   string
	metrics *Metrics

	span     trace.Span
	started  time.Time
	elements int64
	finished bool
}

func (it *instrumentedIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.span == nil && !it.finished {
		it.ctx, it.span = StartSpan(it.ctx, SpanEnumerate, trace.WithAttributes(
			attribute.String(AttrPipeline, it.name),
			attribute.String(AttrRunID, it.runID),
		))
		it.started = time.Now()
	}

	val, ok, err := it.inner.Next(ctx)
	switch {
	case err != nil:
		it.finish(StatusError, err)
	case !ok:
		it.finish(StatusOK, nil)
	default:
		it.elements++
	}
	return val, ok, err
}

func (it *instrumentedIter[T]) Close() error {
	it.finish(StatusAbandoned, nil)
	return it.inner.Close()
}

func (it *instrumentedIter[T]) finish(status string, err error) {
	if it.finished || it.span == nil {
		return
	}
	it.finished = true
	elapsed := time.Since(it.started)

	it.span.SetAttributes(
		attribute.Int64(AttrElements, it.elements),
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, elapsed.Milliseconds()),
	)
	if err != nil {
		it.span.RecordError(err)
		it.span.SetStatus(codes.Error, err.Error())
	}
	it.span.End()

	if it.metrics != nil {
		it.metrics.RecordEnumeration(it.ctx, it.name, status, it.elements, elapsed)
		if err != nil {
			it.metrics.RecordError(it.ctx, it.name, errorCode(err))
		}
	}

	log := logger.Get("observability").WithContext(it.ctx)
	fields := logger.Fields(logger.FieldStatus, status, logger.FieldCount, it.elements, logger.FieldDuration, elapsed.Milliseconds())
	if err != nil {
		log.Warn("enumeration failed", logger.MergeWithError(fields, err))
		return
	}
	log.Debug("enumeration finished", fields)
}

func errorCode(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return "CANCELED"
	}
	return "UNKNOWN"
}
