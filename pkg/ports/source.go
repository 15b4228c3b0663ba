package ports

// SourceReader loads the text of a network or configuration source.
type SourceReader interface {
	ReadFile(path string) (string, error)
}
