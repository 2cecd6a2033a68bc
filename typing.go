package fstr

import (
	"context"
	"io"
	"time"

	"gitlab.com/tozd/go/errors"
)

// TypingRequest configures SimulateTyping.
type TypingRequest struct {
	Reader io.Reader
	// ChunkSize is the number of grapheme clusters inserted per edit.
	ChunkSize int
	// Delay is the pause between two chunks.
	Delay   time.Duration
	Options []ParseOption
	// OnChunk, when set, observes the composer after every edit.
	OnChunk func(Sequence) error
}

// SimulateTyping reads plain text from Reader and types it into an empty
// composer, appending ChunkSize grapheme clusters at a time with InsertText.
// Control characters other than tab and newlines are dropped. Markdown
// delimiters stay text, the same as for any other edit.
func SimulateTyping(ctx context.Context, req TypingRequest) (Sequence, error) {
	if req.Reader == nil {
		return nil, errors.New("simulate typing: Reader is nil")
	}
	if req.ChunkSize <= 0 {
		return nil, errors.New("simulate typing: ChunkSize must be > 0")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, errors.Errorf("simulate typing: read: %w", err)
	}
	rest := SanitizeInput(src)
	var seq Sequence
	for rest != "" {
		n := 0
		for i := 0; i < req.ChunkSize && n < len(rest); i++ {
			n += len(nextGrapheme(rest[n:]))
		}
		if seq, err = InsertText(seq, seq.Len(), rest[:n], req.Options...); err != nil {
			return nil, errors.Errorf("simulate typing: %w", err)
		}
		rest = rest[n:]
		if req.OnChunk != nil {
			if err := req.OnChunk(seq); err != nil {
				return nil, err
			}
		}
		if req.Delay > 0 && rest != "" {
			if err := sleepCtx(ctx, req.Delay); err != nil {
				return nil, err
			}
		}
	}
	return seq, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
