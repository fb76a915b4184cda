package helpers

import "net/http"

// QueryRecord builds a validation record from the named query parameters.
// Only parameters present in the query string appear in the record, so
// "absent" stays distinguishable from "empty" or "zero"; values are raw
// strings for the schema validator to coerce.
func QueryRecord(r *http.Request, keys ...string) map[string]any {
	record := map[string]any{}
	query := r.URL.Query()
	for _, key := range keys {
		if query.Has(key) {
			record[key] = query.Get(key)
		}
	}
	return record
}
