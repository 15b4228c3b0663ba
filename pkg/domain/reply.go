package domain

import "fmt"

// ArtifactKind enumerates the result blobs a server may return.
// The set is closed; the numeric order is the wire order.
type ArtifactKind int

const (
	ArtifactTraj ArtifactKind = iota
	ArtifactRunLog
	ArtifactProbTraj
	ArtifactStatDist
	ArtifactFixedPoints

	// NumArtifacts is the number of artifact slots in a reply.
	NumArtifacts = int(ArtifactFixedPoints) + 1
)

// ArtifactKinds lists every kind in wire order.
var ArtifactKinds = [NumArtifacts]ArtifactKind{
	ArtifactTraj,
	ArtifactRunLog,
	ArtifactProbTraj,
	ArtifactStatDist,
	ArtifactFixedPoints,
}

var artifactInfo = [NumArtifacts]struct {
	name   string
	header string
	suffix string
}{
	{"traj", "Traj", "_traj.txt"},
	{"run_log", "Run-Log", "_run.txt"},
	{"probtraj", "ProbTraj", "_probtraj.csv"},
	{"statdist", "StatDist", "_statdist.csv"},
	{"fixed_points", "FP", "_fp.csv"},
}

func (k ArtifactKind) valid() bool {
	return k >= 0 && int(k) < NumArtifacts
}

func (k ArtifactKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("ArtifactKind(%d)", int(k))
	}
	return artifactInfo[k].name
}

// Header is the wire header name announcing this artifact's length.
func (k ArtifactKind) Header() string {
	if !k.valid() {
		return ""
	}
	return artifactInfo[k].header
}

// Suffix is appended to the output prefix to name the persisted artifact.
func (k ArtifactKind) Suffix() string {
	if !k.valid() {
		return ""
	}
	return artifactInfo[k].suffix
}

// Artifacts is the fixed-size record of reply blobs. An empty string means
// the server did not produce that artifact.
type Artifacts [NumArtifacts]string

// Reply is the server's answer to a Request.
// It is immutable; only NewReply builds one.
type Reply struct {
	artifacts Artifacts
	status    int
	message   string
}

// NewReply builds a Reply, enforcing that an error message only accompanies
// a non-zero status.
func NewReply(artifacts Artifacts, status int, message string) (*Reply, error) {
	if status == 0 && message != "" {
		return nil, &ProtocolError{Field: "Error-Message", Reason: "error message present with status 0"}
	}
	return &Reply{artifacts: artifacts, status: status, message: message}, nil
}

// NewErrorReply builds a reply carrying only a failure status and message.
func NewErrorReply(status int, message string) *Reply {
	if status == 0 {
		status = 1
	}
	return &Reply{status: status, message: message}
}

// Artifact returns the blob for kind and whether it was produced.
func (r *Reply) Artifact(kind ArtifactKind) (string, bool) {
	if !kind.valid() {
		return "", false
	}
	data := r.artifacts[kind]
	return data, data != ""
}

// Artifacts returns a copy of all artifact slots.
func (r *Reply) Artifacts() Artifacts { return r.artifacts }

func (r *Reply) Traj() string        { return r.artifacts[ArtifactTraj] }
func (r *Reply) RunLog() string      { return r.artifacts[ArtifactRunLog] }
func (r *Reply) ProbTraj() string    { return r.artifacts[ArtifactProbTraj] }
func (r *Reply) StatDist() string    { return r.artifacts[ArtifactStatDist] }
func (r *Reply) FixedPoints() string { return r.artifacts[ArtifactFixedPoints] }

// Status is the server result code; 0 means success.
func (r *Reply) Status() int { return r.status }

// ErrorMessage is non-empty only when Status is non-zero.
func (r *Reply) ErrorMessage() string { return r.message }

// OK reports whether the server completed the job.
// Artifacts of a reply that is not OK must not be trusted as complete.
func (r *Reply) OK() bool { return r.status == 0 }

// Err returns an *ApplicationError for a non-zero status, nil otherwise.
func (r *Reply) Err() error {
	if r.status == 0 {
		return nil
	}
	return &ApplicationError{Status: r.status, Message: r.message}
}
