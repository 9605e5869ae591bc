package terminal

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// outputBuffer queues output in memory and delivers it to the device on Flush.
// Not safe for concurrent use; Session serializes access.
type outputBuffer struct {
	dev Device
	buf []byte
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(dev Device) *outputBuffer {
	return &outputBuffer{
		dev: dev,
		buf: make([]byte, 0, 64*1024),
	}
}

// Write queues p; it never performs I/O and never fails
func (o *outputBuffer) Write(p []byte) (int, error) {
	o.buf = append(o.buf, p...)
	return len(p), nil
}

func (o *outputBuffer) WriteByte(c byte) error {
	o.buf = append(o.buf, c)
	return nil
}

func (o *outputBuffer) WriteRune(r rune) (int, error) {
	if r < utf8.RuneSelf {
		o.buf = append(o.buf, byte(r))
		return 1, nil
	}
	n := len(o.buf)
	o.buf = utf8.AppendRune(o.buf, r)
	return len(o.buf) - n, nil
}

// Buffered returns the number of queued bytes not yet confirmed written
func (o *outputBuffer) Buffered() int {
	return len(o.buf)
}

// Flush writes every queued byte to the device, then drains the device.
// Bytes confirmed written are dropped from the queue on every return path,
// so a retried Flush resumes where the failed one stopped.
func (o *outputBuffer) Flush() error {
	if len(o.buf) == 0 {
		return nil
	}

	written := 0
	var err error
	for written < len(o.buf) {
		n, werr := o.dev.Write(o.buf[written:])
		if n < 0 || n > len(o.buf)-written {
			err = fmt.Errorf("device write returned invalid count %d", n)
			break
		}
		written += n

		if werr != nil {
			if isInterrupted(werr) {
				continue
			}
			err = fmt.Errorf("write %s: %w", o.dev.Name(), werr)
			break
		}
		if n == 0 {
			err = ErrWriteZero
			break
		}
	}
	o.consume(written)

	if err != nil {
		return err
	}
	if err := o.dev.Drain(); err != nil {
		return fmt.Errorf("drain %s: %w", o.dev.Name(), err)
	}
	return nil
}

// consume drops the first n bytes, keeping the backing array
func (o *outputBuffer) consume(n int) {
	if n == 0 {
		return
	}
	rest := copy(o.buf, o.buf[n:])
	o.buf = o.buf[:rest]
}

// Close attempts a final flush; the result is discarded
func (o *outputBuffer) Close() {
	_ = o.Flush()
}

var _ io.Writer = (*outputBuffer)(nil)
