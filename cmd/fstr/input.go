package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fetchTimeout = 30 * time.Second

type inputSource struct {
	name string
	open func() (io.Reader, io.Closer, error)
}

// multiInputReader reads its sources one after another, opening each lazily.
type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			src := m.sources[m.idx]
			reader, closer, err := src.open()
			if err != nil {
				return 0, fmt.Errorf("%s: %w", src.name, err)
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

// openInputs returns a reader over all inputs in order, or stdin when there
// are none. "-" also stands for stdin.
func openInputs(args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw, stdin)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string, stdin io.Reader) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return inputSource{name: "stdin", open: func() (io.Reader, io.Closer, error) {
			return stdin, nil, nil
		}}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{name: raw, open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{name: path, open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{name: raw, open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

// timedBody cancels the request context once the body is closed.
type timedBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b timedBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		cancel()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	body := timedBody{ReadCloser: resp.Body, cancel: cancel}
	return body, body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
