package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/audit"
)

// CompressionAlgo specifies how a stored payload is encoded.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the payload size above which changes are
// stored zstd-compressed.
const DefaultCompressThreshold = 10 * 1024

const (
	auditTable        = "sys_audit"
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// auditRow mirrors the sys_audit table.
type auditRow struct {
	ID                id.ID           `db:"id"`
	EntityType        string          `db:"entity_type"`
	EntityID          id.ID           `db:"entity_id"`
	Action            audit.Action    `db:"action"`
	Changes           json.RawMessage `db:"changes"`
	ChangesCompressed []byte          `db:"changes_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	RequestID         *string         `db:"request_id"`
	CreatedAt         time.Time       `db:"created_at"`
}

// AuditLog stores the change trail in sys_audit.
type AuditLog struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// Compile-time checks
var (
	_ audit.Recorder = (*AuditLog)(nil)
	_ audit.Reader   = (*AuditLog)(nil)
)

// NewAuditLog creates an audit log writing through txManager.
func NewAuditLog(txManager *TxManager) (*AuditLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditLog{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: DefaultCompressThreshold,
	}, nil
}

// encode returns the payload columns for changes.
func (s *AuditLog) encode(changes any) (json.RawMessage, []byte, CompressionAlgo, error) {
	if changes == nil {
		return nil, nil, CompressionNone, nil
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return nil, nil, CompressionNone, fmt.Errorf("marshal changes: %w", err)
	}
	if len(raw) > s.compressThreshold {
		return nil, s.encoder.EncodeAll(raw, nil), CompressionZstd, nil
	}
	return raw, nil, CompressionNone, nil
}

// decode restores the JSON payload of a stored row.
func (s *AuditLog) decode(row auditRow) (json.RawMessage, error) {
	if row.CompressionAlgo != CompressionZstd || len(row.ChangesCompressed) == 0 {
		return row.Changes, nil
	}
	raw, err := s.decoder.DecodeAll(row.ChangesCompressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress changes: %w", err)
	}
	return raw, nil
}

// Record implements audit.Recorder. The entry joins the transaction in ctx.
func (s *AuditLog) Record(ctx context.Context, entityType string, entityID id.ID, action audit.Action, changes any) error {
	raw, compressed, algo, err := s.encode(changes)
	if err != nil {
		return err
	}

	var requestID *string
	if rid := appctx.GetRequestID(ctx); rid != "" {
		requestID = &rid
	}

	sql, args, err := Builder().
		Insert(auditTable).
		Columns(
			"id", "entity_type", "entity_id", "action",
			"changes", "changes_compressed", "compression_algo",
			"request_id", "created_at",
		).
		Values(
			id.New(), entityType, entityID, action,
			raw, compressed, algo,
			requestID, time.Now().UTC(),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return TranslateError(err, "insert", auditTable)
	}
	return nil
}

func historyQuery(q audit.HistoryQuery) squirrel.SelectBuilder {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	sb := Builder().
		Select(
			"id", "entity_type", "entity_id", "action",
			"changes", "changes_compressed", "compression_algo",
			"request_id", "created_at",
		).
		From(auditTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	if q.EntityType != "" {
		sb = sb.Where(squirrel.Eq{"entity_type": q.EntityType})
	}
	if q.EntityID != nil {
		sb = sb.Where(squirrel.Eq{"entity_id": *q.EntityID})
	}
	return sb
}

// History implements audit.Reader.
func (s *AuditLog) History(ctx context.Context, q audit.HistoryQuery) ([]audit.Entry, error) {
	sql, args, err := historyQuery(q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, s.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	entries := make([]audit.Entry, 0, len(rows))
	for _, row := range rows {
		changes, err := s.decode(row)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", row.ID, err)
		}
		entry := audit.Entry{
			ID:         row.ID,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			Action:     row.Action,
			Changes:    changes,
			CreatedAt:  row.CreatedAt,
		}
		if row.RequestID != nil {
			entry.RequestID = *row.RequestID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
