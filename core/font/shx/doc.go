/*
Package shx reads AutoCAD-style SHX shape fonts and interprets their
glyph programs into vector strokes.

SHX fonts predate outline font technology: every glyph is a small byte
program of pen movements, executed by a tiny stack machine. Three binary
container layouts exist, 'shapes' (classic 8-bit shape files), 'bigfont'
(indexed multi-byte glyph sets) and 'unifont' (Unicode code points),
but all three share the identical glyph bytecode language. Decoding must
reproduce the legacy arc and displacement arithmetic exactly, since the
font assets in circulation are decades old and were authored against
that arithmetic.

The package has two halves:

▪︎ Parse reads a font file into an immutable Font value holding per-glyph
byte programs. A Font is safe for concurrent read access.

▪︎ Interpreter executes one glyph program against a mutable State and a
path.Sink receiving moves, lines and arcs.

Text layout on top of glyph interpretation lives in package
engine/engrave.

BSD License

Copyright (c) 2017-21, Norbert Pillmayer <norbert@pillmayer.com>

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of Norbert Pillmayer nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package shx

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'engrave.fonts'
func tracer() tracing.Trace {
	return tracing.Select("engrave.fonts")
}
