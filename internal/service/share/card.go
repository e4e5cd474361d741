// Package share renders answer cards and hands them to share targets.
package share

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"unicode/utf8"

	"github.com/graceguide/grace/internal/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Logical card size. The PNG is rendered at Scale times this.
const (
	CardWidth  = 540
	CardHeight = 960
	Scale      = 2
)

const (
	padding      = 40
	headerSize   = 34
	questionSize = 24
	answerSize   = 21
	footerSize   = 18
	paraGap      = 24
	maxQLines    = 6
	ellipsis     = "…"
)

var (
	gradientFrom = color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff} // blue-900
	gradientTo   = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff} // blue-600
	textColor    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	footerColor  = color.RGBA{R: 0xdb, G: 0xea, B: 0xfe, A: 0xff} // blue-100
)

type faces struct {
	header, question, answer, footer font.Face
}

// Renderer draws share cards. It is safe for sequential use only; faces
// carry glyph caches.
type Renderer struct {
	faces faces
}

func NewRenderer() (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	face := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size * Scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	var fs faces
	if fs.header, err = face(bold, headerSize); err != nil {
		return nil, err
	}
	if fs.question, err = face(bold, questionSize); err != nil {
		return nil, err
	}
	if fs.answer, err = face(regular, answerSize); err != nil {
		return nil, err
	}
	if fs.footer, err = face(regular, footerSize); err != nil {
		return nil, err
	}
	return &Renderer{faces: fs}, nil
}

// Render returns the card for one question and answer as PNG bytes.
func (r *Renderer) Render(question, answer string) ([]byte, error) {
	w, h := CardWidth*Scale, CardHeight*Scale
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillGradient(img, gradientFrom, gradientTo)

	pad := padding * Scale
	textWidth := w - 2*pad

	y := pad
	y = r.drawLine(img, r.faces.header, textColor, core.AppName, pad, y)
	y += paraGap * Scale

	footerTop := h - pad - lineHeight(r.faces.footer)

	qLines := Wrap(r.faces.question, "Q: "+strings.TrimSpace(question), textWidth)
	qLines = Fit(r.faces.question, qLines, maxQLines, textWidth)
	for _, line := range qLines {
		y = r.drawLine(img, r.faces.question, textColor, line, pad, y)
	}
	y += paraGap * Scale

	room := (footerTop - paraGap*Scale - y) / lineHeight(r.faces.answer)
	aLines := Wrap(r.faces.answer, "A: "+strings.TrimSpace(answer), textWidth)
	aLines = Fit(r.faces.answer, aLines, room, textWidth)
	for _, line := range aLines {
		y = r.drawLine(img, r.faces.answer, textColor, line, pad, y)
	}

	r.drawLine(img, r.faces.footer, footerColor, core.AppSite, pad, footerTop)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLine draws s with its top edge at y and returns the next line's top.
func (r *Renderer) drawLine(img *image.RGBA, face font.Face, c color.Color, s string, x, y int) int {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	return y + lineHeight(face)
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// fillGradient paints a top-left to bottom-right linear gradient.
func fillGradient(img *image.RGBA, from, to color.RGBA) {
	b := img.Bounds()
	span := float64(b.Dx() + b.Dy() - 2)
	if span <= 0 {
		span = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := float64(x-b.Min.X+y-b.Min.Y) / span
			img.SetRGBA(x, y, color.RGBA{
				R: lerp(from.R, to.R, t),
				G: lerp(from.G, to.G, t),
				B: lerp(from.B, to.B, t),
				A: 0xff,
			})
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// Wrap breaks text into lines no wider than maxWidth pixels. Paragraph
// breaks are kept and words wider than a line are split between runes.
func Wrap(face font.Face, text string, maxWidth int) []string {
	limit := fixed.I(maxWidth)
	var lines []string

	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if font.MeasureString(face, candidate) <= limit {
				line = candidate
				continue
			}

			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			for font.MeasureString(face, word) > limit {
				head, tail := splitAt(face, word, limit)
				lines = append(lines, head)
				word = tail
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// splitAt returns the longest prefix of word that fits limit (at least one
// rune) and the rest.
func splitAt(face font.Face, word string, limit fixed.Int26_6) (string, string) {
	end := 0
	for i, r := range word {
		next := i + utf8.RuneLen(r)
		if end > 0 && font.MeasureString(face, word[:next]) > limit {
			break
		}
		end = next
	}
	return word[:end], word[end:]
}

// Fit keeps at most maxLines lines. When lines are dropped the last kept
// line ends with an ellipsis that still fits maxWidth.
func Fit(face font.Face, lines []string, maxLines, maxWidth int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}

	out := append([]string(nil), lines[:maxLines]...)
	last := []rune(strings.TrimRight(out[maxLines-1], " "))
	limit := fixed.I(maxWidth)
	for len(last) > 0 && font.MeasureString(face, string(last)+ellipsis) > limit {
		last = last[:len(last)-1]
	}
	out[maxLines-1] = string(last) + ellipsis
	return out
}
