package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubTranscriber struct {
	text string
	err  error
}

func (s stubTranscriber) Transcribe(ctx context.Context, _ []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.text, s.err
}

func TestCaptureOnceReturnsTranscript(t *testing.T) {
	got := CaptureOnce(context.Background(), stubTranscriber{text: "  hello world \n"}, nil, "audio/wav", time.Second)
	assert.Equal(t, "hello world", got)
}

func TestCaptureOnceEmptyOnError(t *testing.T) {
	got := CaptureOnce(context.Background(), stubTranscriber{err: errors.New("unintelligible")}, nil, "audio/wav", time.Second)
	assert.Equal(t, "", got)
}

func TestCaptureOnceEmptyOnExpiredContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := CaptureOnce(ctx, stubTranscriber{text: "too late"}, nil, "audio/wav", time.Second)
	assert.Equal(t, "", got)
}
