package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/storefront/pkg/domain"
)

// Message is one JSON line written by JSONHandler.
type Message struct {
	View   *domain.View `json:"view,omitempty"`
	System string       `json:"system,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
	// MaxInputSize bounds each line; zero uses the SanitizeInput default.
	MaxInputSize int
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

// Output emits the view as a single JSON line.
func (h *JSONHandler) Output(ctx context.Context, view domain.View) error {
	return h.Encoder.Encode(Message{View: &view})
}

// Input reads one line. A JSON string is unquoted; objects and plain text are
// returned as-is for ParseCommand.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if json.Unmarshal([]byte(text), &val) == nil {
		text = val
	}
	return SanitizeInputLimit(text, h.MaxInputSize)
}

// SystemOutput emits a {"system": msg} line.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Message{System: msg})
}
