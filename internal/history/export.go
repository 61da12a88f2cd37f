package history

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current export format version. Increment when Record changes shape.
const exportVersion uint16 = 1

// ErrExportVersion is returned when importing an export written in an
// unsupported format.
var ErrExportVersion = errors.New("unsupported export version")

type exportHeader struct {
	Version uint16 `msgpack:"version"`
	Count   int    `msgpack:"count"`
}

// Export writes every record to w as a MessagePack stream: a header
// followed by the records, oldest first. It returns the number of records
// written.
func (s *Store) Export(ctx context.Context, w io.Writer) (int, error) {
	records, err := s.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(exportHeader{Version: exportVersion, Count: len(records)}); err != nil {
		return 0, fmt.Errorf("encode header: %w", err)
	}
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return i, fmt.Errorf("encode record %d: %w", rec.ID, err)
		}
	}
	s.log.WithField("records", len(records)).Debug("history exported")
	return len(records), nil
}

// Import reads a stream written by [Store.Export] and appends its records
// in a single transaction. Imported records get new ids.
// It returns the number of records imported.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	dec := msgpack.NewDecoder(r)
	var hdr exportHeader
	if err := dec.Decode(&hdr); err != nil {
		return 0, fmt.Errorf("decode header: %w", err)
	}
	if hdr.Version != exportVersion {
		return 0, fmt.Errorf("version %d: %w", hdr.Version, ErrExportVersion)
	}
	if hdr.Count < 0 {
		return 0, fmt.Errorf("invalid record count %d", hdr.Count)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i := 0; i < hdr.Count; i++ {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return 0, fmt.Errorf("decode record %d of %d: %w", i+1, hdr.Count, err)
		}
		if _, err := insert(ctx, tx, rec); err != nil {
			return 0, fmt.Errorf("import record %d of %d: %w", i+1, hdr.Count, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	s.log.WithField("records", hdr.Count).Debug("history imported")
	return hdr.Count, nil
}
