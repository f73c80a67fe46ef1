package image

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func face(b []byte, size float64) (font.Face, error) {
	col, err := opentype.ParseCollection(b)
	if err != nil {
		return nil, err
	}
	fnt, err := col.Font(0)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Card renders a word card: the Hanzi large on top, the numbered
// pronunciation beneath it, both centered. fontData must be an opentype
// font (or collection) that covers CJK.
func Card(fontData []byte, height int, word, pron string, fg, bg color.NRGBA) (*image.NRGBA, error) {
	margin := height / 8
	padding := height / 8
	rest := height - 3*margin
	if rest < 0 {
		rest = 0
	}
	wordSize := float64(rest) / 2
	pronSize := wordSize / 2

	wordFace, err := face(fontData, wordSize)
	if err != nil {
		return nil, err
	}
	pronFace, err := face(fontData, pronSize)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	src := image.NewUniform(fg)
	draw := func(wordX, pronX int) (int, int) {
		dwr := font.Drawer{Dst: img, Src: src, Face: wordFace}
		dwr.Dot = fixed.P(wordX, margin+int(wordSize))
		dwr.DrawString(word)
		w1 := int(dwr.Dot.X>>6) - margin

		dwr.Face = pronFace
		dwr.Dot = fixed.P(pronX, margin+padding+int(wordSize)+int(pronSize))
		dwr.DrawString(pron)
		w2 := int(dwr.Dot.X>>6) - margin
		return w1, w2
	}

	w1, w2 := draw(margin, margin)
	w := w1 + 2*margin
	wordX, pronX := margin, margin+(w1-w2)/2
	if w2 > w1 {
		w = w2 + 2*margin
		wordX, pronX = margin+(w2-w1)/2, margin
	}

	img = image.NewNRGBA(image.Rect(0, 0, w, height))
	if bg.A != 0 {
		for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
			for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
				o := img.PixOffset(x, y)
				img.Pix[o+0] = bg.R
				img.Pix[o+1] = bg.G
				img.Pix[o+2] = bg.B
				img.Pix[o+3] = bg.A
			}
		}
	}
	draw(wordX, pronX)

	return img, nil
}
