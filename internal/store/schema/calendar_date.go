package schema

import (
	"context"
	"fmt"
	"reflect"
	"time"

	gormschema "gorm.io/gorm/schema"
)

func init() {
	gormschema.RegisterSerializer("calendardate", CalendarDateSerializer{})
}

// CalendarDateSerializer binds DATE columns as plain YYYY-MM-DD strings.
// A time.Time parameter reaches PostgreSQL as timestamptz and is cast to
// DATE through the session TimeZone, which shifts values across the day
// boundary on non-UTC servers.
type CalendarDateSerializer struct{}

// Value renders the field as its calendar date string
func (CalendarDateSerializer) Value(_ context.Context, _ *gormschema.Field, _ reflect.Value, fieldValue interface{}) (interface{}, error) {
	t, ok := fieldValue.(time.Time)
	if !ok {
		return nil, fmt.Errorf("calendardate: unsupported field type %T", fieldValue)
	}

	return t.Format(time.DateOnly), nil
}

// Scan restores the field as a UTC-midnight time.Time
func (CalendarDateSerializer) Scan(ctx context.Context, field *gormschema.Field, dst reflect.Value, dbValue interface{}) error {
	var t time.Time
	switch v := dbValue.(type) {
	case nil:
	case time.Time:
		t = v
	case string:
		parsed, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return fmt.Errorf("calendardate: failed to parse %q: %w", v, err)
		}
		t = parsed
	case []byte:
		parsed, err := time.Parse(time.DateOnly, string(v))
		if err != nil {
			return fmt.Errorf("calendardate: failed to parse %q: %w", string(v), err)
		}
		t = parsed
	default:
		return fmt.Errorf("calendardate: unsupported database value %T", dbValue)
	}

	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	field.ReflectValueOf(ctx, dst).Set(reflect.ValueOf(t))

	return nil
}
