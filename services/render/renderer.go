// Package render draws certificate text onto a PNG template.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Field places one line of text. Y is the baseline.
type Field struct {
	X     int
	Y     int
	Size  float64
	Align Align
}

// Layout positions the three certificate fields on the template
type Layout struct {
	Name   Field
	Course Field
	Date   Field
	Color  color.Color
}

// DefaultLayout matches the 2000px wide stock template
var DefaultLayout = Layout{
	Name:   Field{X: 1000, Y: 720, Size: 60, Align: AlignCenter},
	Course: Field{X: 430, Y: 960, Size: 48, Align: AlignLeft},
	Date:   Field{X: 1770, Y: 960, Size: 48, Align: AlignRight},
	Color:  color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
}

// Certificate is the text drawn onto the template
type Certificate struct {
	StudentName string
	CourseName  string
	Date        string
}

type Renderer struct {
	templatePath string
	font         *opentype.Font
	layout       Layout
}

// New prepares a renderer. An empty fontPath uses the embedded Go Bold face.
// The template is read on every Render so it can be replaced without a restart.
func New(templatePath, fontPath string, layout Layout) (*Renderer, error) {
	if strings.TrimSpace(templatePath) == "" {
		return nil, fmt.Errorf("render: template path is empty")
	}

	data := gobold.TTF
	if fontPath != "" {
		raw, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("render: read font %s: %w", fontPath, err)
		}
		data = raw
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}
	if layout.Color == nil {
		layout.Color = DefaultLayout.Color
	}
	return &Renderer{templatePath: templatePath, font: f, layout: layout}, nil
}

// Render writes the finished certificate to w as PNG
func (r *Renderer) Render(w io.Writer, c Certificate) error {
	tmpl, err := imaging.Open(r.templatePath)
	if err != nil {
		return fmt.Errorf("render: open template: %w", err)
	}
	canvas := imaging.Clone(tmpl)
	ink := image.NewUniform(r.layout.Color)

	fields := []struct {
		text  string
		field Field
	}{
		{c.StudentName, r.layout.Name},
		{c.CourseName, r.layout.Course},
		{c.Date, r.layout.Date},
	}
	for _, item := range fields {
		if item.text == "" {
			continue
		}
		face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
			Size:    item.field.Size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("render: font face: %w", err)
		}
		d := &font.Drawer{Dst: canvas, Src: ink, Face: face}
		x := fixed.I(item.field.X)
		switch item.field.Align {
		case AlignCenter:
			x -= d.MeasureString(item.text) / 2
		case AlignRight:
			x -= d.MeasureString(item.text)
		}
		d.Dot = fixed.Point26_6{X: x, Y: fixed.I(item.field.Y)}
		d.DrawString(item.text)
		face.Close()
	}

	if err := imaging.Encode(w, canvas, imaging.PNG); err != nil {
		return fmt.Errorf("render: encode: %w", err)
	}
	return nil
}

// RenderBytes renders into memory
func (r *Renderer) RenderBytes(c Certificate) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename is the attachment name for a student's certificate. Quotes and path
// separators are replaced so the value is safe inside Content-Disposition.
func Filename(studentName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, strings.TrimSpace(studentName))
	if name == "" {
		name = "Student"
	}
	return name + "-Certificate.png"
}
