// Package resources locates stroke font files by name.
//
// Resolution is asynchronous in the manner of promises: ResolveShapeFont
// returns immediately and the caller blocks only when it asks for the
// result. Lookup tries the global font registry first, then local
// directories (the working directory and every entry of the
// ENGRAVE_FONTPATH environment variable), and finally the system font
// folders via go-findfont.
package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/font"
)

// NotFound returns an application error for a missing font resource.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EMISSING, "stroke font not found: %s", name)
}

// extensions tried when the name carries none.
var extensions = []string{".shx", ".shp", ".jhf"}

type fontPlusErr struct {
	font *font.ShapeFile
	err  error
}

// ShapeFilePromise is the deferred result of a font resolution.
type ShapeFilePromise interface {
	ShapeFile() (*font.ShapeFile, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.ShapeFile, error)
}

func (loader fontLoader) ShapeFile() (*font.ShapeFile, error) {
	return loader.await(context.Background())
}

// ResolveShapeFont resolves a stroke font by name or path. Fonts found
// on disk are loaded, parsed and put into the global registry.
func ResolveShapeFont(name string) ShapeFilePromise {
	ch := make(chan fontPlusErr)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		if sf, ok := font.GlobalRegistry().FindFont(name); ok {
			result.font = sf
			ch <- result
			close(ch)
			return
		}
		fpath, err := locate(name)
		if err != nil {
			result.err = err
		} else if result.font, err = font.Load(fpath); err != nil {
			result.err = err
		} else {
			font.GlobalRegistry().StoreFont(result.font)
		}
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.ShapeFile, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func locate(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
		return "", NotFound(name)
	}
	var candidates []string
	if filepath.Ext(name) != "" {
		candidates = []string{name}
	} else {
		for _, ext := range extensions {
			candidates = append(candidates, name+ext)
		}
	}
	dirs := []string{"."}
	if fp := os.Getenv("ENGRAVE_FONTPATH"); fp != "" {
		dirs = append(dirs, strings.Split(fp, string(os.PathListSeparator))...)
	}
	for _, dir := range dirs {
		for _, c := range candidates {
			p := filepath.Join(dir, c)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	for _, c := range candidates {
		if fpath, err := findfont.Find(c); err == nil { // try as a system font
			return fpath, nil
		}
	}
	return "", NotFound(name)
}
