package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseToday reads an optional --today flag.
func parseToday(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --today %q: use YYYY-MM-DD", raw)
	}
	return &t, nil
}

func joinErrors(title string, errs []error) error {
	var b strings.Builder
	b.WriteString(title)
	for _, err := range errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return fmt.Errorf("%s", b.String())
}
