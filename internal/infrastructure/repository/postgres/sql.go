package postgres

import (
	"database/sql"
	"errors"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func nullStringValue(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

// encodeJSONB renders v for a jsonb column. Nil maps and slices become SQL NULL.
func encodeJSONB(v any) (*string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	out := strings.TrimSpace(buf.String())
	if out == "null" {
		return nil, nil
	}
	return &out, nil
}

func decodeJSONB(raw sql.NullString, out any) error {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return nil
	}
	return sonic.UnmarshalString(raw.String, out)
}
