/*
Package font is for stroke-font handling.

A "stroke font" (or engraving font) describes glyphs as open pen
strokes (lines and arcs) rather than filled outlines. Two families
are supported:

* SHX shape fonts (binary; shapes/bigfont/unifont containers), parsed
by package shx.

* Hershey JHF tables (ASCII), parsed by package jhf.

This package bundles either representation in a ShapeFile together
with its origin, and keeps a global registry of loaded fonts so that
interactive tools do not re-read font files for every render.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
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
package font

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/font/jhf"
	"github.com/npillmayer/engrave/core/font/shx"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global fonts tracer.
func T() tracing.Trace {
	return tracing.Select("engrave.fonts")
}

// ShapeFile is a loaded stroke font together with its origin. Exactly
// one of SHX and JHF is non-nil.
type ShapeFile struct {
	Fontname string
	Filepath string    // file path
	Binary   []byte    // raw data
	SHX      *shx.Font // binary shape font, if the file was one
	JHF      *jhf.Font // Hershey table, if the file was one
}

// Load reads a stroke font file, dispatching on the file extension:
// .shx and .shp are parsed as binary shape fonts, .jhf as Hershey
// tables.
func Load(fontfile string) (*ShapeFile, error) {
	bytez, err := ioutil.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(fontfile), filepath.Ext(fontfile))
	sf := &ShapeFile{
		Fontname: name,
		Filepath: fontfile,
		Binary:   bytez,
	}
	switch strings.ToLower(filepath.Ext(fontfile)) {
	case ".shx", ".shp":
		sf.SHX, err = shx.Parse(bytez)
	case ".jhf":
		sf.JHF, err = jhf.Parse(bytez)
	default:
		err = core.Error(core.EINVALID, "unknown stroke font extension: %s", fontfile)
	}
	if err != nil {
		return nil, err
	}
	T().Infof("loaded stroke font %q", sf.Fontname)
	return sf, nil
}

// --- Font Registry ---------------------------------------------------------

// Registry is a thread-safe collection of loaded stroke fonts, keyed by
// font name.
type Registry struct {
	sync.Mutex
	fonts map[string]*ShapeFile
}

func NewRegistry() *Registry {
	return &Registry{
		fonts: make(map[string]*ShapeFile),
	}
}

// StoreFont pushes a font into the registry, replacing a previous entry
// of the same name.
func (r *Registry) StoreFont(sf *ShapeFile) {
	r.Lock()
	defer r.Unlock()
	r.fonts[sf.Fontname] = sf
	T().Debugf("registry stores font %q", sf.Fontname)
}

// FindFont returns a registered font by name.
func (r *Registry) FindFont(name string) (*ShapeFile, bool) {
	r.Lock()
	defer r.Unlock()
	sf, ok := r.fonts[name]
	return sf, ok
}

var globalRegistry *Registry
var globalRegistryCreation sync.Once

// GlobalRegistry is the application-wide font registry.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}
