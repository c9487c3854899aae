// Package errlog keeps the human readable problems of one invocation so they can be shown in a
// cell instead of aborting the whole evaluation.
//
// An Accumulator is not safe for concurrent use, create one per invocation.
package errlog

import "strings"

const internalPrefix = "Internal error: "

type Accumulator struct {
	messages []string
	occurred bool
}

func New() *Accumulator {
	return &Accumulator{}
}

// Set records msg and returns it unchanged so a call site can record and propagate at once.
func (a *Accumulator) Set(msg string) string {
	a.occurred = true
	a.messages = append(a.messages, msg)
	return msg
}

// Internal records msg prefixed with "Internal error: ", the unprefixed msg is returned.
func (a *Accumulator) Internal(msg string) string {
	a.Set(internalPrefix + msg)
	return msg
}

func (a *Accumulator) HasOccurred() bool {
	return a.occurred
}

// Get returns every message joined by ", ". The bool is false when nothing was recorded since
// the last Reset.
func (a *Accumulator) Get() (string, bool) {
	if !a.occurred {
		return "", false
	}
	return strings.Join(a.messages, ", "), true
}

func (a *Accumulator) Messages() []string {
	out := make([]string, len(a.messages))
	copy(out, a.messages)
	return out
}

func (a *Accumulator) Reset() {
	a.occurred = false
	a.messages = nil
}
