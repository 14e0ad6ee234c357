package validators

import (
	"encoding/json"
	"net/http"
	"strings"

	pkgerrors "github.com/kindbridge/kindbridge-backend/pkg/errors"
)

// ParseMultipartForm parses the request as multipart with a hard size cap.
func ParseMultipartForm(r *http.Request, maxBytes int64) error {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form").WithDetails(map[string]any{"error": err.Error()})
	}
	return nil
}

// FormList parses a list-valued form field. Accepts a JSON array or a
// comma-separated string; blank entries are dropped.
func FormList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			return dropBlank(items)
		}
	}
	return dropBlank(strings.Split(raw, ","))
}

func dropBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
