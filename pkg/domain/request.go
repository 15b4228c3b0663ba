package domain

import "strconv"

// MaxFragments bounds the number of configuration fragments in one request.
const MaxFragments = 1024

// FragmentKind tells the server how a configuration fragment was sourced.
type FragmentKind int

const (
	// FragmentFile holds the contents of a configuration file.
	FragmentFile FragmentKind = iota
	// FragmentExpr holds an inline configuration expression.
	FragmentExpr
)

func (k FragmentKind) String() string {
	if k == FragmentExpr {
		return "expr"
	}
	return "file"
}

// ConfigFragment is one unit of configuration.
// Later fragments override earlier ones for overlapping settings.
type ConfigFragment struct {
	Kind FragmentKind
	Text string
}

// NewFileFragment wraps the contents of a configuration file.
func NewFileFragment(text string) ConfigFragment {
	return ConfigFragment{Kind: FragmentFile, Text: text}
}

// NewExprFragment wraps an inline configuration expression.
func NewExprFragment(text string) ConfigFragment {
	return ConfigFragment{Kind: FragmentExpr, Text: text}
}

// Request is the job description sent to the simulation server.
// It lives for a single exchange.
type Request struct {
	network    string
	fragments  []ConfigFragment
	configVars string
	command    Command
	flags      Flags
}

// NewRequest creates an empty RUN request.
func NewRequest() *Request {
	return &Request{command: CommandRun}
}

// SetNetwork sets the boolean network model text.
func (r *Request) SetNetwork(text string) {
	r.network = text
}

// AddConfig appends the contents of a configuration file.
func (r *Request) AddConfig(text string) {
	r.fragments = append(r.fragments, NewFileFragment(text))
}

// AddConfigExpr appends an inline configuration expression.
func (r *Request) AddConfigExpr(text string) {
	r.fragments = append(r.fragments, NewExprFragment(text))
}

// AddFragment appends an already built fragment.
func (r *Request) AddFragment(f ConfigFragment) {
	r.fragments = append(r.fragments, f)
}

// SetConfigVars replaces the variable override string (NAME=VALUE[,NAME=VALUE...]).
// Overrides are applied by the server after every fragment.
func (r *Request) SetConfigVars(text string) {
	r.configVars = text
}

// AppendConfigVars joins another NAME=VALUE group onto the override string.
// A comma is inserted only when the string is already non-empty, so an empty
// group after a value leaves a trailing comma ("a", "", "b" gives "a,,b").
func (r *Request) AppendConfigVars(text string) {
	if r.configVars != "" {
		r.configVars += ","
	}
	r.configVars += text
}

// SetCommand selects RUN or CHECK.
func (r *Request) SetCommand(cmd Command) {
	r.command = cmd
}

// SetFlags replaces the flag word. It rejects OVERRIDE combined with AUGMENT.
func (r *Request) SetFlags(flags Flags) error {
	if err := flags.Validate(); err != nil {
		return err
	}
	r.flags = flags
	return nil
}

func (r *Request) Network() string { return r.network }

// Fragments returns a copy of the fragment list in submission order.
func (r *Request) Fragments() []ConfigFragment {
	out := make([]ConfigFragment, len(r.fragments))
	copy(out, r.fragments)
	return out
}

func (r *Request) ConfigVars() string { return r.configVars }

func (r *Request) Command() Command { return r.command }

func (r *Request) Flags() Flags { return r.flags }

// Validate checks the request invariants: a non-empty network, a known command,
// at most MaxFragments fragments and a consistent flag word.
func (r *Request) Validate() error {
	if r.network == "" {
		return &ConfigurationError{Key: "network", Reason: "boolean network is empty"}
	}
	if len(r.fragments) > MaxFragments {
		return &ConfigurationError{Key: "config", Reason: "more than " + strconv.Itoa(MaxFragments) + " configuration fragments"}
	}
	if r.command != CommandRun && r.command != CommandCheck {
		return &ConfigurationError{Key: "command", Reason: "unknown command " + r.command.String()}
	}
	return r.flags.Validate()
}
