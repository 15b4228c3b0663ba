// Package server implements the server side of the MaBoSS wire protocol:
// decode one request per connection, hand it to a Handler, encode the reply.
// It is used to embed a simulator behind the protocol and as a loopback peer in tests.
package server
