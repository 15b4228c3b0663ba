package protocol

import (
	"bytes"
	"io"
	"strconv"

	"github.com/aretw0/maboss/pkg/domain"
)

// WriteRequest validates req and writes it to w.
// An invalid request yields a ConfigurationError and nothing is written.
func WriteRequest(w io.Writer, req *domain.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	hw := newHeaderWriter(w)
	hw.startLine(req.Command().String())
	hw.value(HeaderFlags, strconv.FormatUint(uint64(req.Flags()), 10))
	hw.field(HeaderNetwork, req.Network())

	fragments := req.Fragments()
	hw.value(HeaderConfigCount, strconv.Itoa(len(fragments)))
	for _, f := range fragments {
		if f.Kind == domain.FragmentExpr {
			hw.field(HeaderConfigExpr, f.Text)
		} else {
			hw.field(HeaderConfigFile, f.Text)
		}
	}

	hw.field(HeaderConfigVars, req.ConfigVars())
	return hw.finish()
}

// MarshalRequest encodes req into a byte slice.
func MarshalRequest(req *domain.Request) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteRequest(&buf, req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadRequest decodes one request from r.
// Any framing violation is reported as a *domain.ProtocolError.
func ReadRequest(r io.Reader) (*domain.Request, error) {
	hr := newHeaderReader(r)
	return readRequest(hr)
}

// UnmarshalRequest decodes a request and rejects trailing bytes.
func UnmarshalRequest(data []byte) (*domain.Request, error) {
	hr := newHeaderReader(bytes.NewReader(data))
	req, err := readRequest(hr)
	if err != nil {
		return nil, err
	}
	if err := hr.expectEOF(); err != nil {
		return nil, err
	}
	return req, nil
}

func readRequest(hr *headerReader) (*domain.Request, error) {
	token, err := hr.startLine()
	if err != nil {
		return nil, err
	}
	cmd, err := domain.ParseCommand(token)
	if err != nil {
		return nil, &domain.ProtocolError{Field: "start-line", Reason: "unknown command " + strconv.Quote(token)}
	}

	flagsValue, err := hr.value(HeaderFlags)
	if err != nil {
		return nil, err
	}
	rawFlags, err := strconv.ParseUint(flagsValue, 10, 64)
	if err != nil {
		return nil, &domain.ProtocolError{Field: HeaderFlags, Reason: "not an unsigned integer", Err: err}
	}

	if err := hr.lengthOf(HeaderNetwork); err != nil {
		return nil, err
	}

	count, err := hr.integer(HeaderConfigCount)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > domain.MaxFragments {
		return nil, &domain.ProtocolError{Field: HeaderConfigCount, Reason: "fragment count out of range"}
	}
	kinds := make([]domain.FragmentKind, 0, count)
	for i := int64(0); i < count; i++ {
		name, v, err := hr.oneOf(HeaderConfigFile, HeaderConfigExpr)
		if err != nil {
			return nil, err
		}
		if err := hr.length(name, v); err != nil {
			return nil, err
		}
		if name == HeaderConfigExpr {
			kinds = append(kinds, domain.FragmentExpr)
		} else {
			kinds = append(kinds, domain.FragmentFile)
		}
	}

	if err := hr.lengthOf(HeaderConfigVars); err != nil {
		return nil, err
	}
	if err := hr.end(); err != nil {
		return nil, err
	}

	bodies, err := hr.readBodies()
	if err != nil {
		return nil, err
	}

	req := domain.NewRequest()
	req.SetCommand(cmd)
	req.SetNetwork(bodies[0])
	for i, kind := range kinds {
		req.AddFragment(domain.ConfigFragment{Kind: kind, Text: bodies[1+i]})
	}
	req.SetConfigVars(bodies[len(bodies)-1])
	if err := req.SetFlags(domain.Flags(rawFlags)); err != nil {
		return nil, &domain.ProtocolError{Field: HeaderFlags, Reason: "invalid flag word", Err: err}
	}
	if err := req.Validate(); err != nil {
		return nil, &domain.ProtocolError{Reason: "invalid request", Err: err}
	}
	return req, nil
}
