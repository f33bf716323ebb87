// Package diag reports malformed input at the boundary of this engine:
// an Environment or provider answer that cannot be represented as a
// Node, as opposed to the core expansion algorithm itself, which never
// raises — an expression it cannot make sense of simply expands to
// Unknown or None.
//
// Grounded on cuelang.org/go/cue/errors' posError/List pattern
// (errors.go), with token.Position replaced by Site (this engine has no
// source file to point into) and golang.org/x/exp/errors/xerrors
// replaced by the standard library: this module's go.mod does not
// carry a resolved dependency on those import paths (see DESIGN.md), so
// there is nothing real left to wire for them.
package diag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Site names what was being resolved when an error was raised, for
// error messages only — it carries no source position because binding
// expressions arrive pre-parsed into the lattice, never as source text
// owned by this engine.
type Site struct {
	Module string
	Name   string
}

func (s Site) String() string {
	if s.Module == "" {
		return s.Name
	}
	return s.Module + "." + s.Name
}

// Error is one diagnostic.
type Error struct {
	Site Site
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.Site.Module == "" && e.Site.Name == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Site, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// Errorf creates a diagnostic at site.
func Errorf(site Site, format string, args ...interface{}) *Error {
	return &Error{Site: site, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a diagnostic at site that chains err.
func Wrap(site Site, err error, format string, args ...interface{}) *Error {
	return &Error{Site: site, Msg: fmt.Sprintf(format, args...), err: err}
}

// List accumulates diagnostics from validating an Environment or a
// provider's answers before an expansion begins.
type List []*Error

func (l *List) Add(err *Error) {
	if err != nil {
		*l = append(*l, err)
	}
}

func (l *List) Addf(site Site, format string, args ...interface{}) {
	l.Add(Errorf(site, format, args...))
}

func (l List) Len() int      { return len(l) }
func (l List) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l List) Less(i, j int) bool {
	si, sj := l[i].Site.String(), l[j].Site.String()
	if si != sj {
		return si < sj
	}
	return l[i].Msg < l[j].Msg
}

// Sort orders diagnostics by site, for deterministic output.
func (l List) Sort() { sort.Sort(l) }

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// Err returns nil if l is empty, a single wrapped error if l has one
// entry, or l itself (as an error) otherwise.
func (l List) Err() error {
	switch len(l) {
	case 0:
		return nil
	case 1:
		return l[0]
	default:
		return l
	}
}

// As exposes errors.As for callers that want to recover a *Error from
// an error returned by Err.
func As(err error, target interface{}) bool { return errors.As(err, target) }
