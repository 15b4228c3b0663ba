package protocol

import (
	"bytes"
	"io"
	"strconv"

	"github.com/aretw0/maboss/pkg/domain"
)

// WriteReply writes reply to w.
func WriteReply(w io.Writer, reply *domain.Reply) error {
	hw := newHeaderWriter(w)
	hw.startLine(replyToken)
	for _, kind := range domain.ArtifactKinds {
		data, _ := reply.Artifact(kind)
		hw.field(kind.Header(), data)
	}
	hw.value(HeaderStatus, strconv.Itoa(reply.Status()))
	hw.field(HeaderErrorMessage, reply.ErrorMessage())
	return hw.finish()
}

// MarshalReply encodes reply into a byte slice.
func MarshalReply(reply *domain.Reply) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteReply(&buf, reply); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadReply decodes one reply from r. It returns either a complete Reply or
// an error; a truncated or malformed message is a *domain.ProtocolError.
func ReadReply(r io.Reader) (*domain.Reply, error) {
	return readReply(newHeaderReader(r))
}

// UnmarshalReply decodes a reply and rejects trailing bytes.
func UnmarshalReply(data []byte) (*domain.Reply, error) {
	hr := newHeaderReader(bytes.NewReader(data))
	reply, err := readReply(hr)
	if err != nil {
		return nil, err
	}
	if err := hr.expectEOF(); err != nil {
		return nil, err
	}
	return reply, nil
}

func readReply(hr *headerReader) (*domain.Reply, error) {
	token, err := hr.startLine()
	if err != nil {
		return nil, err
	}
	if token != replyToken {
		return nil, &domain.ProtocolError{Field: "start-line", Reason: "not a reply: " + strconv.Quote(token)}
	}

	for _, kind := range domain.ArtifactKinds {
		if err := hr.lengthOf(kind.Header()); err != nil {
			return nil, err
		}
	}

	status, err := hr.integer(HeaderStatus)
	if err != nil {
		return nil, err
	}
	if status != int64(int32(status)) {
		return nil, &domain.ProtocolError{Field: HeaderStatus, Reason: "status out of range"}
	}

	if err := hr.lengthOf(HeaderErrorMessage); err != nil {
		return nil, err
	}
	if err := hr.end(); err != nil {
		return nil, err
	}

	bodies, err := hr.readBodies()
	if err != nil {
		return nil, err
	}

	var arts domain.Artifacts
	copy(arts[:], bodies[:domain.NumArtifacts])
	return domain.NewReply(arts, int(status), bodies[domain.NumArtifacts])
}
