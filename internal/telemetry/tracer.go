package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for transfer operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// ========================================================================
	// Job / Flight Plan attributes
	// ========================================================================
	AttrJobID  = "orbit.job_id"
	AttrStarID = "orbit.star_id" // abstract storage peer identifier
	AttrBackend = "orbit.backend" // local, smb, s3, azure, gcs, ssh

	// ========================================================================
	// File / Cargo Manifest attributes
	// ========================================================================
	AttrPath   = "orbit.path"
	AttrSize   = "orbit.size"
	AttrOffset = "orbit.offset"
	AttrLength = "orbit.length"

	// ========================================================================
	// Chunking / Windows attributes
	// ========================================================================
	AttrChunkIdx  = "orbit.chunk_idx"
	AttrWindowID  = "orbit.window_id"
	AttrContentID = "orbit.content_id"

	// ========================================================================
	// Delta engine attributes
	// ========================================================================
	AttrBlocksMatched     = "orbit.delta.blocks_matched"
	AttrBlocksTransferred = "orbit.delta.blocks_transferred"
	AttrBytesSaved        = "orbit.delta.bytes_saved"
	AttrSavingsRatio      = "orbit.delta.savings_ratio"

	// ========================================================================
	// Resilience attributes
	// ========================================================================
	AttrAttempt   = "orbit.resilience.attempt"
	AttrBreaker   = "orbit.resilience.circuit"
	AttrCircuitOp = "orbit.resilience.circuit_state"

	// ========================================================================
	// Universe Map / storage backend attributes
	// ========================================================================
	AttrStoreName = "orbit.store.name"
	AttrStoreType = "orbit.store.type"
	AttrBucket    = "orbit.storage.bucket"
	AttrKey       = "orbit.storage.key"
)

// Span names for Orbit operations.
const (
	SpanJobPlan     = "orbit.job.plan"
	SpanJobRun      = "orbit.job.run"
	SpanFileTransfer = "orbit.file.transfer"
	SpanWindowVerify = "orbit.window.verify"

	SpanChunkerSplit   = "orbit.chunker.split"
	SpanDeltaSign      = "orbit.delta.sign"
	SpanDeltaSearch    = "orbit.delta.search"
	SpanDeltaApply     = "orbit.delta.apply"
	SpanUniverseInsert = "orbit.universe.insert"
	SpanUniverseScan   = "orbit.universe.scan"
	SpanStarMapBuild   = "orbit.starmap.build"
	SpanGuardianCheck  = "orbit.guardian.check"
	SpanPoolAcquire    = "orbit.pool.acquire"
	SpanBreakerCall    = "orbit.breaker.call"
)

// JobID returns an attribute for the Flight Plan job identifier.
func JobID(id string) attribute.KeyValue { return attribute.String(AttrJobID, id) }

// StarID returns an attribute for an abstract storage peer identifier.
func StarID(id string) attribute.KeyValue { return attribute.String(AttrStarID, id) }

// Backend returns an attribute for a backend/star kind.
func Backend(kind string) attribute.KeyValue { return attribute.String(AttrBackend, kind) }

// Path returns an attribute for a file path.
func Path(p string) attribute.KeyValue { return attribute.String(AttrPath, p) }

// Size returns an attribute for a file size.
func Size(size uint64) attribute.KeyValue { return attribute.Int64(AttrSize, int64(size)) }

// Offset returns an attribute for a byte offset.
func Offset(offset uint64) attribute.KeyValue { return attribute.Int64(AttrOffset, int64(offset)) }

// Length returns an attribute for a byte length.
func Length(n uint64) attribute.KeyValue { return attribute.Int64(AttrLength, int64(n)) }

// ChunkIdx returns an attribute for a chunk index.
func ChunkIdx(i uint32) attribute.KeyValue { return attribute.Int64(AttrChunkIdx, int64(i)) }

// WindowID returns an attribute for a window identifier.
func WindowID(id uint32) attribute.KeyValue { return attribute.Int64(AttrWindowID, int64(id)) }

// ContentID returns an attribute for a hex-encoded content hash.
func ContentID(id string) attribute.KeyValue { return attribute.String(AttrContentID, id) }

// BytesSaved returns an attribute for delta-engine bytes saved.
func BytesSaved(n uint64) attribute.KeyValue { return attribute.Int64(AttrBytesSaved, int64(n)) }

// SavingsRatio returns an attribute for the delta-engine savings ratio.
func SavingsRatio(r float64) attribute.KeyValue { return attribute.Float64(AttrSavingsRatio, r) }

// Attempt returns an attribute for a retry attempt number.
func Attempt(n int) attribute.KeyValue { return attribute.Int(AttrAttempt, n) }

// Breaker returns an attribute for a circuit breaker name.
func Breaker(name string) attribute.KeyValue { return attribute.String(AttrBreaker, name) }

// StoreName returns an attribute for a registered store name.
func StoreName(name string) attribute.KeyValue { return attribute.String(AttrStoreName, name) }

// StoreType returns an attribute for a store backend type.
func StoreType(t string) attribute.KeyValue { return attribute.String(AttrStoreType, t) }

// Bucket returns an attribute for an object-store bucket name.
func Bucket(name string) attribute.KeyValue { return attribute.String(AttrBucket, name) }

// StorageKey returns an attribute for an object-store key.
func StorageKey(key string) attribute.KeyValue { return attribute.String(AttrKey, key) }

// StartFileSpan starts a span for a single file transfer.
func StartFileSpan(ctx context.Context, jobID, path string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{JobID(jobID), Path(path)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, SpanFileTransfer, trace.WithAttributes(allAttrs...))
}

// StartDeltaSpan starts a span for a delta-engine phase (sign, search, apply).
func StartDeltaSpan(ctx context.Context, phase string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "orbit.delta."+phase, trace.WithAttributes(attrs...))
}

// StartUniverseSpan starts a span for a Universe Map operation.
func StartUniverseSpan(ctx context.Context, operation string, contentID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{ContentID(contentID)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, "orbit.universe."+operation, trace.WithAttributes(allAttrs...))
}

// StartResilienceSpan starts a span for a resilience-wrapped call.
func StartResilienceSpan(ctx context.Context, breaker string, attempt int, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{Breaker(breaker), Attempt(attempt)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, SpanBreakerCall, trace.WithAttributes(allAttrs...))
}
