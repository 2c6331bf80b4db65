package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"messageboard/pkg/logger"
	"messageboard/pkg/res"
)

// MaxBodyBytes bounds JSON and form bodies.
const MaxBodyBytes = 100 << 10

type fieldsKey struct{}

// Fields holds the decoded top-level fields of a JSON or URL-encoded body.
type Fields map[string]any

// String returns the field as text. Missing and null fields are empty;
// numbers and booleans are formatted, objects and arrays re-encoded.
func (f Fields) String(key string) string {
	switch v := f[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// FieldsFromContext returns the parsed body, or empty Fields when the
// request carried none.
func FieldsFromContext(ctx context.Context) Fields {
	if f, ok := ctx.Value(fieldsKey{}).(Fields); ok {
		return f
	}
	return Fields{}
}

// BodyParser decodes application/json and application/x-www-form-urlencoded
// bodies before handlers run. Other content types pass through untouched.
func BodyParser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

		var fields Fields
		switch mediaType {
		case "application/json":
			fields = Fields{}
			dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
			if err := dec.Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
				rejectBody(w, err)
				return
			}
		case "application/x-www-form-urlencoded":
			r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
			if err := r.ParseForm(); err != nil {
				rejectBody(w, err)
				return
			}
			fields = Fields{}
			for key, values := range r.PostForm {
				if len(values) == 1 {
					fields[key] = values[0]
				} else {
					fields[key] = values
				}
			}
		default:
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), fieldsKey{}, fields)))
	})
}

func rejectBody(w http.ResponseWriter, err error) {
	logger.Sugar.Warnf("Rejected request body: %v", err)

	status, msg := http.StatusBadRequest, "malformed request body"
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status, msg = http.StatusRequestEntityTooLarge, "request body too large"
	}
	res.Json(w, map[string]string{
		"error":  msg,
		"status": "failed to parse request body",
	}, status)
}
