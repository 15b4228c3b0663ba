package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/maboss/pkg/domain"
)

const (
	// Version is the protocol token opening every message.
	Version = "MaBoSS-2.0"

	// MaxHeaderLine bounds a single header line, terminator included.
	MaxHeaderLine = 1024

	// MaxFieldSize bounds any declared body length.
	MaxFieldSize = 1 << 30
)

// Header names. Request headers first, then reply headers.
const (
	HeaderFlags        = "Flags"
	HeaderNetwork      = "Network"
	HeaderConfigCount  = "Config-Count"
	HeaderConfigFile   = "Config-File"
	HeaderConfigExpr   = "Config-Expr"
	HeaderConfigVars   = "Config-Vars"
	HeaderStatus       = "Status"
	HeaderErrorMessage = "Error-Message"

	replyToken = "REPLY"
)

// headerWriter accumulates "Name: value" lines and the bodies they announce,
// so the whole message can be emitted in one pass.
type headerWriter struct {
	w      *bufio.Writer
	bodies []string
}

func newHeaderWriter(w io.Writer) *headerWriter {
	return &headerWriter{w: bufio.NewWriter(w)}
}

func (hw *headerWriter) startLine(token string) {
	fmt.Fprintf(hw.w, "%s %s\n", Version, token)
}

func (hw *headerWriter) value(name string, v string) {
	fmt.Fprintf(hw.w, "%s: %s\n", name, v)
}

// field writes a length header and queues its body.
func (hw *headerWriter) field(name string, body string) {
	hw.value(name, strconv.Itoa(len(body)))
	hw.bodies = append(hw.bodies, body)
}

func (hw *headerWriter) finish() error {
	hw.w.WriteString("\n")
	for _, body := range hw.bodies {
		if _, err := hw.w.WriteString(body); err != nil {
			return err
		}
	}
	return hw.w.Flush()
}

// headerReader parses a header block and then reads the announced bodies in order.
type headerReader struct {
	br      *bufio.Reader
	lengths []int64
	fields  []string
}

func newHeaderReader(r io.Reader) *headerReader {
	return &headerReader{br: asBufioReader(r)}
}

func asBufioReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok && br.Size() >= MaxHeaderLine {
		return br
	}
	return bufio.NewReaderSize(r, MaxHeaderLine)
}

func (hr *headerReader) line(field string) (string, error) {
	raw, err := hr.br.ReadSlice('\n')
	switch {
	case errors.Is(err, bufio.ErrBufferFull):
		return "", &domain.ProtocolError{Field: field, Reason: fmt.Sprintf("header line exceeds %d bytes", MaxHeaderLine)}
	case errors.Is(err, io.EOF):
		return "", &domain.ProtocolError{Field: field, Reason: "unexpected end of headers", Err: io.ErrUnexpectedEOF}
	case err != nil:
		return "", err
	}
	return strings.TrimSuffix(string(raw[:len(raw)-1]), "\r"), nil
}

// startLine reads "<Version> <token>" and returns the token.
func (hr *headerReader) startLine() (string, error) {
	line, err := hr.line("start-line")
	if err != nil {
		return "", err
	}
	version, token, ok := strings.Cut(line, " ")
	if !ok || version != Version {
		return "", &domain.ProtocolError{Field: "start-line", Reason: fmt.Sprintf("unsupported protocol line %q", line)}
	}
	return token, nil
}

// value reads the next header, which must be named name.
func (hr *headerReader) value(name string) (string, error) {
	line, err := hr.line(name)
	if err != nil {
		return "", err
	}
	got, v, ok := strings.Cut(line, ":")
	if !ok {
		return "", &domain.ProtocolError{Field: name, Reason: fmt.Sprintf("malformed header line %q", line)}
	}
	if got != name {
		return "", &domain.ProtocolError{Field: name, Reason: fmt.Sprintf("expected header %q, got %q", name, got)}
	}
	return strings.TrimSpace(v), nil
}

// oneOf reads the next header, which must be one of names, and returns the name found.
func (hr *headerReader) oneOf(names ...string) (string, string, error) {
	field := strings.Join(names, "|")
	line, err := hr.line(field)
	if err != nil {
		return "", "", err
	}
	got, v, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", &domain.ProtocolError{Field: field, Reason: fmt.Sprintf("malformed header line %q", line)}
	}
	for _, name := range names {
		if got == name {
			return got, strings.TrimSpace(v), nil
		}
	}
	return "", "", &domain.ProtocolError{Field: field, Reason: fmt.Sprintf("unexpected header %q", got)}
}

func (hr *headerReader) integer(name string) (int64, error) {
	v, err := hr.value(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &domain.ProtocolError{Field: name, Reason: "not an integer", Err: err}
	}
	return n, nil
}

// length validates a declared body size and queues the body for readBodies.
func (hr *headerReader) length(name, v string) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return &domain.ProtocolError{Field: name, Reason: "length is not an integer", Err: err}
	}
	if n < 0 {
		return &domain.ProtocolError{Field: name, Reason: fmt.Sprintf("negative length %d", n)}
	}
	if n > MaxFieldSize {
		return &domain.ProtocolError{Field: name, Reason: fmt.Sprintf("length %d exceeds limit %d", n, MaxFieldSize)}
	}
	hr.lengths = append(hr.lengths, n)
	hr.fields = append(hr.fields, name)
	return nil
}

func (hr *headerReader) lengthOf(name string) error {
	v, err := hr.value(name)
	if err != nil {
		return err
	}
	return hr.length(name, v)
}

// end consumes the blank line closing the header block.
func (hr *headerReader) end() error {
	line, err := hr.line("end-of-headers")
	if err != nil {
		return err
	}
	if line != "" {
		return &domain.ProtocolError{Field: "end-of-headers", Reason: fmt.Sprintf("unexpected header %q", line)}
	}
	return nil
}

// readBodies reads every queued body. Buffers grow with the data actually
// received, so a lying length cannot force a large allocation.
func (hr *headerReader) readBodies() ([]string, error) {
	out := make([]string, len(hr.lengths))
	for i, n := range hr.lengths {
		if n == 0 {
			continue
		}
		var sb strings.Builder
		got, err := io.CopyN(&sb, hr.br, n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &domain.ProtocolError{
					Field:  hr.fields[i],
					Reason: fmt.Sprintf("truncated body: got %d of %d bytes", got, n),
					Err:    io.ErrUnexpectedEOF,
				}
			}
			return nil, err
		}
		out[i] = sb.String()
	}
	return out, nil
}

// expectEOF fails if anything follows the message.
func (hr *headerReader) expectEOF() error {
	if _, err := hr.br.ReadByte(); err != io.EOF {
		if err != nil {
			return err
		}
		return &domain.ProtocolError{Reason: "trailing data after message"}
	}
	return nil
}
