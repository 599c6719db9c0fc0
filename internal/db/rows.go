package db

import (
	"database/sql"
	"fmt"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
)

// Row is one result row keyed by column name. Values keep the driver's native
// type except for binary text, which is converted to string, and
// UNIQUEIDENTIFIER columns, which are rendered in canonical GUID form.
type Row map[string]any

// Value looks a column up, falling back to a case-insensitive match.
func (r Row) Value(column string) (any, bool) {
	if v, ok := r[column]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, column) {
			return v, true
		}
	}
	return nil, false
}

// String renders a column as text; NULL and missing columns yield "".
func (r Row) String(column string) string {
	v, ok := r.Value(column)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

type rowScanner struct {
	columns []string
	guid    []bool
}

func newRowScanner(rows *sql.Rows) (*rowScanner, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	s := &rowScanner{
		columns: make([]string, len(types)),
		guid:    make([]bool, len(types)),
	}
	for i, ct := range types {
		s.columns[i] = ct.Name()
		s.guid[i] = strings.EqualFold(ct.DatabaseTypeName(), "UNIQUEIDENTIFIER")
	}
	return s, nil
}

func (s *rowScanner) scan(rows *sql.Rows) (Row, error) {
	values := make([]any, len(s.columns))
	ptrs := make([]any, len(s.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(Row, len(s.columns))
	for i, col := range s.columns {
		v := values[i]
		if b, ok := v.([]byte); ok {
			if s.guid[i] {
				var id mssql.UniqueIdentifier
				if err := id.Scan(b); err != nil {
					return nil, fmt.Errorf("column %s: %w", col, err)
				}
				v = id.String()
			} else {
				v = string(b)
			}
		}
		row[col] = v
	}
	return row, nil
}
