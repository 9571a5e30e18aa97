package domain

import "fmt"

// stringField reads key from a stored document as a string. Non-string scalars
// (numbers written by older clients) are formatted rather than dropped.
func stringField(doc map[string]any, key string) string {
	v, ok := doc[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}
