// shxtool inspects stroke fonts and renders text with them.
//
//	shxtool info <font>            show container variant and metrics
//	shxtool glyphs <font>          list glyph codes and shape aliases
//	shxtool render <font> <text>   engrave text to an SVG or PNG file
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gogpu/gg"
	"github.com/npillmayer/engrave/backend/gfx"
	"github.com/npillmayer/engrave/backend/gfx/ggadapter"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/core/locate/resources"
	"github.com/npillmayer/engrave/core/path"
	"github.com/npillmayer/engrave/engine/engrave"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// tracer traces with key 'engrave.fonts'
func tracer() tracing.Trace {
	return tracing.Select("engrave.fonts")
}

var cli struct {
	Trace string `help:"Trace level [Debug|Info|Error]" default:"Error"`

	Info struct {
		Font string `arg:"" help:"Stroke font file or name"`
	} `cmd:"" help:"Show font metadata"`

	Glyphs struct {
		Font string `arg:"" help:"Stroke font file or name"`
	} `cmd:"" help:"List glyph codes and shape aliases"`

	Render struct {
		Font     string  `arg:"" help:"Stroke font file or name"`
		Text     string  `arg:"" help:"Text to engrave"`
		Size     float64 `short:"s" default:"20" help:"Cap height in output units"`
		Vertical bool    `help:"Vertical layout for dual-mode fonts"`
		Out      string  `short:"o" default:"out.svg" type:"path" help:"Output file (.svg or .png)"`
	} `cmd:"" help:"Render text to SVG or PNG"`
}

func main() {
	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.engrave.fonts":  "Info",
		"trace.engrave.render": "Info",
		"trace.engrave.gfx":    "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	ctx := kong.Parse(&cli)
	setTraceLevel(cli.Trace)
	var err error
	switch ctx.Command() {
	case "info <font>":
		err = info(cli.Info.Font)
	case "glyphs <font>":
		err = glyphs(cli.Glyphs.Font)
	case "render <font> <text>":
		err = render(cli.Render.Font, cli.Render.Text, cli.Render.Size, !cli.Render.Vertical, cli.Render.Out)
	}
	if err != nil {
		core.UserError(err)
		os.Exit(1)
	}
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch strings.ToLower(level) {
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	}
	for _, key := range []string{"engrave.fonts", "engrave.render", "engrave.gfx"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}

func loadFont(name string) (*font.ShapeFile, error) {
	return resources.ResolveShapeFont(name).ShapeFile()
}

func info(name string) error {
	sf, err := loadFont(name)
	if err != nil {
		return err
	}
	fmt.Printf("font     %s\n", sf.Fontname)
	fmt.Printf("file     %s\n", sf.Filepath)
	if sf.JHF != nil {
		fmt.Printf("format   Hershey JHF\n")
		fmt.Printf("glyphs   %d\n", sf.JHF.GlyphCount())
		return nil
	}
	f := sf.SHX
	fmt.Printf("format   %s (%s %s)\n", f.Variant(), f.Format, f.Version)
	if f.Name != "" {
		fmt.Printf("name     %s\n", f.Name)
	}
	fmt.Printf("above    %d\n", f.Above)
	fmt.Printf("below    %d\n", f.Below)
	fmt.Printf("modes    %d\n", f.Modes)
	fmt.Printf("glyphs   %d\n", f.GlyphCount())
	return nil
}

func glyphs(name string) error {
	sf, err := loadFont(name)
	if err != nil {
		return err
	}
	if sf.SHX == nil {
		return core.Error(core.EINVALID, "%s is not an SHX font", sf.Fontname)
	}
	codes := sf.SHX.Codes()
	for i, code := range codes {
		fmt.Printf("%6d", code)
		if (i+1)%10 == 0 {
			fmt.Println()
		}
	}
	if len(codes)%10 != 0 {
		fmt.Println()
	}
	if aliases := sf.SHX.Aliases(); len(aliases) > 0 {
		fmt.Println("aliases:")
		for _, alias := range aliases {
			code, _ := sf.SHX.GlyphNamed(alias)
			fmt.Printf("  %-24s %d\n", alias, code)
		}
	}
	return nil
}

func render(name, text string, size float64, horizontal bool, out string) error {
	sf, err := loadFont(name)
	if err != nil {
		return err
	}
	p := &path.Path{}
	if sf.SHX != nil {
		renderer := engrave.NewRenderer(sf.SHX)
		err = renderer.Render(p, text, horizontal, size)
	} else {
		err = sf.JHF.Render(p, text, size)
	}
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		tracer().Infof("no strokes rendered, nothing to write")
		return nil
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".png":
		return writePNG(p, size, out)
	default:
		return writeSVG(p, out)
	}
}

func writeSVG(p *path.Path, out string) error {
	svg := gfx.NewSVG()
	p.Replay(svg)
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = svg.WriteTo(f)
	return err
}

func writePNG(p *path.Path, size float64, out string) error {
	minx, miny, maxx, maxy, ok := p.Bounds()
	if !ok {
		return core.Error(core.EINVALID, "nothing to draw")
	}
	margin := size / 4
	w := int(maxx-minx+2*margin) + 1
	h := int(maxy-miny+2*margin) + 1
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	// map y-up output units onto the y-down raster
	dc.Translate(margin-minx, maxy+margin)
	dc.Scale(1, -1)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(size / 12)
	canvas := ggadapter.NewCanvas(dc)
	p.Replay(canvas)
	dc.Stroke()
	return dc.SavePNG(out)
}
