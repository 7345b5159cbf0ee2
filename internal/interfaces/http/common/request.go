package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
)

// MaxRequestBody caps request payload size at 1MB.
const MaxRequestBody = 1 << 20

// DecodeJSON reads and decodes a JSON request body. Unknown fields are
// tolerated because the form clients send step-scoped payloads.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBody)
	defer io.Copy(io.Discard, r.Body)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return errors.New("request body is not valid JSON")
	}
	return nil
}

// QueryInt parses a positive integer query parameter, returning def when the
// parameter is absent or malformed.
func QueryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
