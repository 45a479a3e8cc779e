/*
Package otquery answers questions about a parsed OpenType font: metrics,
naming and glyph information.

Functions in this package read the typed tables of package ot and, for tables
package ot does not interpret (e.g., 'name' and 'OS/2'), decode the raw table
bytes directly. Query functions never panic on malformed data; missing or
truncated information results in zero values.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer returns a trace sink for the otquery package namespace.
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
