package handlers

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SimpleRow adapts a scan function to pgx.Row for handler tests. A nil scan
// function behaves like a missing row.
type SimpleRow struct {
	scan func(dest ...any) error
}

func NewSimpleRow(scanner func(dest ...any) error) SimpleRow {
	return SimpleRow{scan: scanner}
}

func (r SimpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// StaticRows serves a fixed result set as pgx.Rows.
type StaticRows struct {
	rows [][]any
	pos  int
}

func NewStaticRows(rows [][]any) *StaticRows {
	return &StaticRows{rows: rows}
}

func (r *StaticRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *StaticRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(row))
	}
	for i, value := range row {
		if err := assign(dest[i], value); err != nil {
			return err
		}
	}
	return nil
}

func assign(dest, value any) error {
	switch d := dest.(type) {
	case *string:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("assign: %T into *string", value)
		}
		*d = v
	case *int:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("assign: %T into *int", value)
		}
		*d = v
	case *[]byte:
		v, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("assign: %T into *[]byte", value)
		}
		*d = append([]byte(nil), v...)
	case *time.Time:
		v, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("assign: %T into *time.Time", value)
		}
		*d = v
	default:
		return fmt.Errorf("assign: unsupported destination %T", dest)
	}
	return nil
}

func (r *StaticRows) Close()                                       {}
func (r *StaticRows) Err() error                                   { return nil }
func (r *StaticRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *StaticRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *StaticRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}
func (r *StaticRows) RawValues() [][]byte { return nil }
func (r *StaticRows) Conn() *pgx.Conn    { return nil }

var _ pgx.Rows = (*StaticRows)(nil)
