/*
Package protocol implements the wire codec spoken between maboss-client and a
MaBoSS simulation server.

Messages are framed like HTTP/1: a start line, one "Name: value" header per
line, a blank line, then the bodies concatenated in header order. Every
variable-length field is announced by a decimal byte count, so a decoder never
scans content for a boundary.

# Request

	MaBoSS-2.0 RUN
	Flags: 1
	Network: 7
	Config-Count: 2
	Config-File: 3
	Config-Expr: 3
	Config-Vars: 0

	A -> B;A=1A=2

Config-File and Config-Expr lines appear in submission order; later fragments
override earlier ones on the server.

# Reply

	MaBoSS-2.0 REPLY
	Traj: 0
	Run-Log: 0
	ProbTraj: 12
	StatDist: 0
	FP: 0
	Status: 0
	Error-Message: 0

	t,A,B
	0,1,0

Decoding is total: a message is either returned complete or rejected with a
*domain.ProtocolError.
*/
package protocol
