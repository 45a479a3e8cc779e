/*
Package otcontainer detects font container formats and unwraps font binaries
to plain SFNT data, ready to be handed to a table parser.

WOFF 1.0 binaries are decompressed. WOFF2 binaries are recognized, but rejected,
as their transformed glyph tables are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otcontainer

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.container'
func tracer() tracing.Trace {
	return tracing.Select("font.container")
}
