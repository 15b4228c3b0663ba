/*
Package domain contains the request and reply models exchanged with a MaBoSS
simulation server, and the error taxonomy shared by every other package.

The package is kept pure: no I/O, no encoding. Payloads (network text,
configuration fragments, result tables) are opaque strings.

# Key Entities

  - Request: network text, ordered ConfigFragments, variable overrides, Command and Flags.
  - Reply: five optional Artifacts, a status code and an error message.
  - ConfigurationError, ConnectionError, ProtocolError, ApplicationError: the
    four failure kinds a caller has to tell apart.
*/
package domain
