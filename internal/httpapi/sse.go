package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/alexanderramin/gradplan/internal/app"
)

type flushWriter interface {
	io.Writer
	http.Flusher
}

// writeEvent writes ev as a single "data: {json}\n\n" frame and flushes it.
func writeEvent(w flushWriter, ev app.PlanEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", ev.Type, err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
