package logger

import "log/slog"

// Standard field keys for structured logging across Orbit's core packages.
// Use these keys consistently so log aggregation and querying stays uniform
// across the chunker, delta engine, resilience primitives, and orchestrator.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Job / Flight Plan
	// ========================================================================
	KeyJobID  = "job"    // Flight Plan job_id
	KeyBackend = "backend" // backend/star kind: local, smb, s3, azure, gcs, ssh
	KeyStarID  = "star_id"  // abstract storage peer identifier

	// ========================================================================
	// File / Cargo Manifest
	// ========================================================================
	KeyPath     = "path"     // file path being processed
	KeySize     = "size"     // file size in bytes
	KeyFileID   = "file_id"  // opaque file reference within a Flight Plan

	// ========================================================================
	// Chunking / Windows
	// ========================================================================
	KeyChunkIdx   = "chunk_idx"   // chunk index within a file
	KeyWindowID   = "window_id"   // window identifier within a Star Map
	KeyContentID  = "content_id"  // 32-byte strong hash, hex-encoded
	KeyOffset     = "offset"      // byte offset
	KeyLength     = "length"      // byte length

	// ========================================================================
	// Delta Engine
	// ========================================================================
	KeyBlocksMatched     = "blocks_matched"
	KeyBlocksTransferred = "blocks_transferred"
	KeyBytesSaved        = "bytes_saved"
	KeySavingsRatio      = "savings_ratio"

	// ========================================================================
	// Resilience
	// ========================================================================
	KeyAttempt    = "attempt"     // retry attempt number
	KeyMaxRetries = "max_retries" // maximum retry attempts
	KeyBreaker    = "circuit"     // circuit breaker name
	KeyBackoffMs  = "backoff_ms"  // computed backoff delay

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeyErrorCode  = "error_code"  // numeric/class error code
	KeyOperation  = "operation"   // sub-operation type for complex operations
)

// JobID returns a slog.Attr for a Flight Plan job identifier.
func JobID(id string) slog.Attr { return slog.String(KeyJobID, id) }

// Backend returns a slog.Attr for a backend/star kind.
func Backend(kind string) slog.Attr { return slog.String(KeyBackend, kind) }

// StarID returns a slog.Attr for an abstract storage peer identifier.
func StarID(id string) slog.Attr { return slog.String(KeyStarID, id) }

// Path returns a slog.Attr for a file path.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Size returns a slog.Attr for a file size in bytes.
func Size(s uint64) slog.Attr { return slog.Uint64(KeySize, s) }

// FileID returns a slog.Attr for an opaque file reference.
func FileID(id string) slog.Attr { return slog.String(KeyFileID, id) }

// ChunkIdx returns a slog.Attr for a chunk index.
func ChunkIdx(i uint32) slog.Attr { return slog.Uint64(KeyChunkIdx, uint64(i)) }

// WindowID returns a slog.Attr for a window identifier.
func WindowID(id uint32) slog.Attr { return slog.Uint64(KeyWindowID, uint64(id)) }

// ContentID returns a slog.Attr for a hex-encoded content hash.
func ContentID(hex string) slog.Attr { return slog.String(KeyContentID, hex) }

// Offset returns a slog.Attr for a byte offset.
func Offset(off uint64) slog.Attr { return slog.Uint64(KeyOffset, off) }

// Length returns a slog.Attr for a byte length.
func Length(n uint64) slog.Attr { return slog.Uint64(KeyLength, n) }

// BytesSaved returns a slog.Attr for delta-engine bytes saved.
func BytesSaved(n uint64) slog.Attr { return slog.Uint64(KeyBytesSaved, n) }

// SavingsRatio returns a slog.Attr for the delta-engine savings ratio.
func SavingsRatio(r float64) slog.Attr { return slog.Float64(KeySavingsRatio, r) }

// Attempt returns a slog.Attr for a retry attempt number.
func Attempt(n int) slog.Attr { return slog.Int(KeyAttempt, n) }

// MaxRetries returns a slog.Attr for the maximum retry attempts.
func MaxRetries(n int) slog.Attr { return slog.Int(KeyMaxRetries, n) }

// Breaker returns a slog.Attr for a circuit breaker name.
func Breaker(name string) slog.Attr { return slog.String(KeyBreaker, name) }

// DurationMs returns a slog.Attr for an operation duration in milliseconds.
func DurationMs(ms int64) slog.Attr { return slog.Int64(KeyDurationMs, ms) }

// Err returns a slog.Attr for an error value.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Operation returns a slog.Attr for a sub-operation type.
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }
