/*
Package markup compiles kaffe documents: prose markup mixed with component
tags and import declarations.

Parsing is an ordered alternation of recognizers with backtracking over an
immutable cursor. See DefaultOrder for the priority contract. Generate turns
the resulting Document into an Artifact: an HTML fragment, the import
declarations and the component bindings referenced by the document.

Nothing in this package escapes HTML. Text from the document is inserted
verbatim, so untrusted input must be sanitized by the caller.

Parse and Generate keep no state between calls and are safe for concurrent
use on independent inputs.
*/
package markup

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'kaffe.markup'.
func tracer() tracing.Trace {
	return tracing.Select("kaffe.markup")
}
