// Package speech defines the speech-to-text boundary. Capture and
// transcription are fully delegated to an external service; the app only
// ever sees a transcript string or nothing.
package speech

import (
	"context"
	"log"
	"strings"
	"time"
)

type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, mime string) (string, error)
}

// CaptureOnce runs one transcription attempt with the given timeout and
// returns the transcript, or "" when the audio was unintelligible or the
// service failed. The voice path always degrades to the typed answer, so
// failures are logged and swallowed here.
func CaptureOnce(ctx context.Context, t Transcriber, data []byte, mime string, timeout time.Duration) string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := t.Transcribe(ctx, data, mime)
	if err != nil {
		log.Printf("WARNING: transcription failed: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}
