package normalize

import (
	"fmt"
	"strconv"

	"github.com/civiclens/civiclens/core"
)

// stringField reads a textual field, falling back to the named placeholder
// when the key is absent, nil, or empty.
func stringField(rec core.RawRecord, key, fallback string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return fallback
	}
	s := fieldString(v)
	if s == "" {
		return fallback
	}
	return s
}

// yesNo normalizes the literal strings "YES"/"NO" used by upstream feeds
// into a boolean. Anything other than "YES" is false.
func yesNo(rec core.RawRecord, key string) bool {
	v, ok := rec[key]
	if !ok || v == nil {
		return false
	}
	return fieldString(v) == "YES"
}

// yesNoLabel renders a boolean flag the way the content block displays it.
func yesNoLabel(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// fieldString renders a raw field value. JSON numbers lose their exponent
// noise so identifiers like 12345 do not become "1.2345e+04".
func fieldString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
