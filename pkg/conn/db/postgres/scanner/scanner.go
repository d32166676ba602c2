// Package scanner maps pgx result rows onto plain structs.
package scanner

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v4"
)

type Queryer interface {
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}

// Scanner converts pgx.Rows into values of T. Columns are matched to
// fields by the `sql` tag first, then by the exact field name, then by
// the CamelCase form of a snake_case column name.
type Scanner[T any] interface {
	// ScanAll drains rows into a slice of T.
	ScanAll(pgx.Rows) ([]T, error)

	// QueryAll runs the query and drains its result.
	QueryAll(context.Context, Queryer, string, ...interface{}) ([]T, error)
}

type scanner[T any] struct {
	byTag  map[string]reflect.StructField
	byName map[string]reflect.StructField
}

func New[T any]() Scanner[T] {
	byTag := map[string]reflect.StructField{}
	byName := map[string]reflect.StructField{}

	t := reflect.TypeOf(*new(T))
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		byName[f.Name] = f
		if tag, ok := f.Tag.Lookup("sql"); ok {
			byTag[tag] = f
		}
	}

	return &scanner[T]{byTag: byTag, byName: byName}
}

func camel(s string) string {
	b := &strings.Builder{}
	for _, part := range strings.Split(s, "_") {
		if len(part) == 0 {
			continue
		}
		b.WriteString(strings.ToUpper(part[0:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func (s *scanner[T]) ScanAll(rows pgx.Rows) ([]T, error) {
	columns := rows.FieldDescriptions()
	fields := make([]reflect.StructField, 0, len(columns))
	for _, fd := range columns {
		col := string(fd.Name)

		f, ok := s.byTag[col]
		if !ok {
			f, ok = s.byName[col]
		}
		if !ok {
			f, ok = s.byName[camel(col)]
		}
		if !ok {
			return nil, fmt.Errorf(
				`no field for column "%s" in type "%T"`, col, *new(T),
			)
		}
		fields = append(fields, f)
	}

	ret := []T{}
	for rows.Next() {
		elem := new(T)
		ev := reflect.ValueOf(elem).Elem()

		dest := make([]interface{}, len(fields))
		for i, f := range fields {
			dest[i] = ev.FieldByIndex(f.Index).Addr().Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ret = append(ret, *elem)
	}
	return ret, rows.Err()
}

func (s *scanner[T]) QueryAll(ctx context.Context, conn Queryer, query string, params ...interface{}) ([]T, error) {
	rows, err := conn.Query(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.ScanAll(rows)
}
