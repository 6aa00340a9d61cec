package stdout

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/yiffos/pkgreport/pkg/domain/model"
)

// Writer prints notifications instead of delivering them
type Writer struct {
	w io.Writer
}

// New creates a Writer printing to w
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Notify writes the subject line, a blank line and the body
func (x *Writer) Notify(ctx context.Context, n *model.Notification) error {
	if _, err := fmt.Fprintf(x.w, "Subject: %s\n\n%s", n.Subject, n.Body); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	return nil
}
