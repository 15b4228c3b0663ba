package domain

import (
	"fmt"
	"strings"
)

// Command selects what the server does with the submitted network.
type Command int

const (
	// CommandRun runs the simulation and returns its artifacts.
	CommandRun Command = iota
	// CommandCheck only parses the network and configuration.
	CommandCheck
)

func (c Command) String() string {
	switch c {
	case CommandRun:
		return "RUN"
	case CommandCheck:
		return "CHECK"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// ParseCommand is the inverse of Command.String.
func ParseCommand(s string) (Command, error) {
	switch s {
	case "RUN":
		return CommandRun, nil
	case "CHECK":
		return CommandCheck, nil
	default:
		return 0, &ConfigurationError{Key: "command", Reason: fmt.Sprintf("unknown command %q", s)}
	}
}

// Flag is a single bit of the request flag word.
type Flag uint64

const (
	// FlagHexFloat asks the server to print doubles in hexadecimal notation.
	FlagHexFloat Flag = 1 << iota
	// FlagOverride makes a later node definition replace an earlier one.
	FlagOverride
	// FlagAugment makes a later node definition complete an earlier one.
	FlagAugment
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagHexFloat, "HEXFLOAT"},
	{FlagOverride, "OVERRIDE"},
	{FlagAugment, "AUGMENT"},
}

const knownFlags = FlagHexFloat | FlagOverride | FlagAugment

// Flags is the bit set carried by a request.
type Flags uint64

// Has reports whether f is set.
func (fs Flags) Has(f Flag) bool {
	return uint64(fs)&uint64(f) != 0
}

// With returns fs with f set.
// Combining OVERRIDE and AUGMENT fails with a ConfigurationError.
func (fs Flags) With(f Flag) (Flags, error) {
	next := Flags(uint64(fs) | uint64(f))
	if err := next.Validate(); err != nil {
		return fs, err
	}
	return next, nil
}

// Validate checks that only known bits are set and that OVERRIDE and AUGMENT are exclusive.
func (fs Flags) Validate() error {
	if uint64(fs)&^uint64(knownFlags) != 0 {
		return &ConfigurationError{Key: "flags", Reason: fmt.Sprintf("unknown bits in %#x", uint64(fs))}
	}
	if fs.Has(FlagOverride) && fs.Has(FlagAugment) {
		return &ConfigurationError{Key: "flags", Reason: "override and augment are exclusive options"}
	}
	return nil
}

func (fs Flags) String() string {
	if fs == 0 {
		return "0"
	}
	var parts []string
	for _, fn := range flagNames {
		if fs.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if rest := uint64(fs) &^ uint64(knownFlags); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", rest))
	}
	return strings.Join(parts, "|")
}
