/*
Package maboss is a client for MaBoSS simulation servers.

A job consists of a Boolean network description, an ordered list of
configuration fragments (file contents or inline expressions) and variable
overrides. The client sends it to a server over TCP or a local unix socket
using the MaBoSS-2.0 text protocol, waits for the reply, and hands back the
simulation artifacts: trajectories, run log, probability trajectories,
stationary distribution and fixed points.

# Usage

	req := domain.NewRequest()
	req.SetNetwork(network)
	req.AddConfigExpr("$u=0.5;")

	client := maboss.New(maboss.WithEndpoint(transport.TCPEndpoint("localhost", 7777)))
	reply, err := client.Submit(ctx, req)
	if err != nil {
		return err // configuration, connection or protocol failure
	}

	written, err := maboss.Persist(ctx, reply, file.New("out/run1"))
	if err != nil {
		return err // includes a non-zero reply status
	}

A reply with a non-zero status is a successful exchange: Submit returns it
without error and Persist refuses to write anything for it.

# Layout

  - pkg/domain: requests, replies, flags and the error taxonomy.
  - pkg/protocol: the wire codec.
  - pkg/transport: endpoints and single-exchange sessions.
  - pkg/server: the server side of the protocol, used for tests and embedding.
  - pkg/adapters: artifact stores (file, memory, redis).
*/
package maboss
