package client

import "io"

// Clipboard is the sink for CopyResult. The browser frontend uses the
// platform clipboard; the CLI writes to stdout.
type Clipboard interface {
	WriteText(text string) error
}

// WriterClipboard adapts any io.Writer into a Clipboard.
type WriterClipboard struct {
	W io.Writer
}

func (wc WriterClipboard) WriteText(text string) error {
	_, err := io.WriteString(wc.W, text)
	return err
}
