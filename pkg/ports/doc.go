/*
Package ports defines the driven ports (interfaces) of the MaBoSS client.

These interfaces decouple job submission from the places the job comes from and
the places its results go, so the same flow works against files, Redis or memory.

# Key Interfaces

  - Submitter: Sends a Request and returns the server Reply (one exchange per call).
  - SourceReader: Reads network and configuration sources.
  - ArtifactStore: Persists reply artifacts under their suffix names.
  - ExchangeObserver: Receives a report after every exchange (metrics, tracing).
*/
package ports
