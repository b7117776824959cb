package seed

import (
	"fmt"
	"strings"
)

// ParseError reports a seed document that could not be turned into rows. Element and Attr
// are empty when the document itself is not well-formed XML.
type ParseError struct {
	File    string
	Element string
	Attr    string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse %s", e.File)
	if e.Element != "" {
		fmt.Fprintf(&b, ": <%s>", e.Element)
	}
	if e.Attr != "" {
		fmt.Fprintf(&b, " attribute %q", e.Attr)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
