package trace

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/knobkit/internal/event"
)

// magic opens every trace file.
var magic = []byte("KNOBTRC1")

// maxRecordSize bounds a single record body.
const maxRecordSize = 4096

var (
	ErrBadMagic = errors.New("not a knobkit trace")
	ErrTooLarge = errors.New("trace record too large")
)

// Writer appends records to a trace.
type Writer struct {
	w     *bufio.Writer
	count int
}

// NewWriter writes the trace header to w and returns a writer for records.
func NewWriter(w io.Writer) (*Writer, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(magic); err != nil {
		return nil, fmt.Errorf("failed to write trace header: %w", err)
	}
	return &Writer{w: bw}, nil
}

// Write appends rec. Records are buffered until Flush.
func (w *Writer) Write(rec Record) error {
	data := rec.marshal()

	length := len(data)
	lengthBuf := []byte{
		byte(length >> 24),
		byte(length >> 16),
		byte(length >> 8),
		byte(length),
	}

	if _, err := w.w.Write(lengthBuf); err != nil {
		return fmt.Errorf("failed to write length: %w", err)
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Reader reads records back from a trace.
type Reader struct {
	r io.Reader
}

// NewReader checks the trace header and returns a reader positioned at the
// first record.
func NewReader(r io.Reader) (*Reader, error) {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, fmt.Errorf("failed to read trace header: %w", err)
	}
	if !bytes.Equal(header, magic) {
		return nil, ErrBadMagic
	}
	return &Reader{r: bufio.NewReader(r)}, nil
}

// Next returns the next record. It returns io.EOF once the trace ends on a
// record boundary and io.ErrUnexpectedEOF if it is cut short.
func (r *Reader) Next() (Record, error) {
	lengthBuf := make([]byte, 4)
	if _, err := io.ReadFull(r.r, lengthBuf); err != nil {
		return Record{}, err
	}

	length := int(lengthBuf[0])<<24 | int(lengthBuf[1])<<16 | int(lengthBuf[2])<<8 | int(lengthBuf[3])
	if length > maxRecordSize {
		return Record{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r.r, data); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Record{}, err
	}

	var rec Record
	if err := rec.unmarshal(data); err != nil {
		return Record{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// Dispatcher receives replayed events. widget.Panel implements it.
type Dispatcher interface {
	DispatchMouse(ev event.Mouse) bool
	DispatchMotion(ev event.Motion) bool
	DispatchScroll(ev event.Scroll) bool
}

// Replay feeds every record in r to d and returns the number of records
// replayed.
func Replay(r *Reader, d Dispatcher) (int, error) {
	n := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}

		switch rec.Kind {
		case KindMouse:
			d.DispatchMouse(rec.Mouse())
		case KindMotion:
			d.DispatchMotion(rec.Motion())
		case KindScroll:
			d.DispatchScroll(rec.Scroll())
		}
		n++
	}
}
