// Package journal records a session's events as zstd-compressed JSON lines,
// one line per dispatched event.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/1siamBot/promethium/engine/core"
)

// Entry is one journal line.
type Entry struct {
	Session uuid.UUID       `json:"session"`
	Tick    uint64          `json:"tick"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Writer appends entries to a compressed stream. It is safe for concurrent
// use, although the simulation only writes from its own goroutine.
type Writer struct {
	session uuid.UUID

	mu    sync.Mutex
	c     io.Closer // underlying file, nil for caller-owned writers
	enc   *zstd.Encoder
	w     *bufio.Writer
	lines int
	err   error // first write error, sticky
}

// Create opens path for writing, truncating an existing journal.
func Create(path, level string, session uuid.UUID) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	w, err := NewWriter(f, level, session)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.c = f
	return w, nil
}

// NewWriter compresses onto dst. Level is one of fastest, default, better or
// best; empty means default. dst is not closed by Close.
func NewWriter(dst io.Writer, level string, session uuid.UUID) (*Writer, error) {
	lvl := zstd.SpeedDefault
	if level != "" {
		var ok bool
		if ok, lvl = zstd.EncoderLevelFromString(level); !ok {
			return nil, fmt.Errorf("journal: unknown level %q", level)
		}
	}
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(lvl))
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return &Writer{
		session: session,
		enc:     enc,
		w:       bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Attach subscribes the writer to every event on bus. Write failures are
// kept and reported by Err and Close.
func (w *Writer) Attach(bus *core.EventBus) {
	bus.OnAny(func(e core.Event) {
		_ = w.Write(e)
	})
}

func (w *Writer) Write(e core.Event) error {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return w.fail(fmt.Errorf("journal: %s payload: %w", e.Type, err))
	}
	if e.Payload == nil {
		data = nil
	}
	line, err := json.Marshal(Entry{Session: w.session, Tick: e.Tick, Type: e.Type.String(), Data: data})
	if err != nil {
		return w.fail(fmt.Errorf("journal: %w", err))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	if w.w == nil {
		return errors.New("journal: write after close")
	}
	if _, err := w.w.Write(line); err != nil {
		w.err = fmt.Errorf("journal: %w", err)
		return w.err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		w.err = fmt.Errorf("journal: %w", err)
		return w.err
	}
	w.lines++
	return nil
}

func (w *Writer) fail(err error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
	return err
}

// Lines is the number of entries written so far.
func (w *Writer) Lines() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lines
}

func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Close flushes and finishes the zstd frame. The result joins the sticky
// write error with any failure while closing.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return w.err
	}
	errs := []error{w.err}
	if err := w.w.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("journal: flush: %w", err))
	}
	if err := w.enc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("journal: %w", err))
	}
	if w.c != nil {
		if err := w.c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("journal: %w", err))
		}
		w.c = nil
	}
	w.w, w.enc = nil, nil
	w.err = errors.Join(errs...)
	return w.err
}

// Read decodes every entry in a journal stream.
func Read(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	defer dec.Close()

	var out []Entry
	jd := json.NewDecoder(dec)
	for {
		var e Entry
		if err := jd.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("journal: entry %d: %w", len(out), err)
		}
		out = append(out, e)
	}
}

// ReadFile decodes the journal at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	defer f.Close()
	return Read(f)
}
