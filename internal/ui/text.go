package ui

import (
	"bufio"
	"io"

	"github.com/samdwyer/cavevault/internal/world"
)

const sgrReset = "\x1b[0m"

// WriteFrame prints a frame as rows of glyphs followed by its label. When
// sgr is non-nil each run of tiles is prefixed with the escape sequence it
// returns for the tile's attribute.
func WriteFrame[A any](w io.Writer, frame world.Frame[A], sgr func(A) string) error {
	bw := bufio.NewWriter(w)

	for y := 0; y < frame.Height(); y++ {
		last := ""
		for x := 0; x < frame.Width(); x++ {
			tile, _ := frame.At(x, y)
			if sgr != nil {
				if seq := sgr(tile.Attr); seq != last {
					bw.WriteString(seq)
					last = seq
				}
			}
			bw.WriteRune(tile.Kind.Rune())
		}
		if sgr != nil {
			bw.WriteString(sgrReset)
		}
		bw.WriteByte('\n')
	}

	bw.WriteString(frame.Label())
	bw.WriteByte('\n')
	return bw.Flush()
}

// WriteFrames prints every frame separated by a blank line.
func WriteFrames[A any](w io.Writer, frames []world.Frame[A], sgr func(A) string) error {
	for i, frame := range frames {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteFrame(w, frame, sgr); err != nil {
			return err
		}
	}
	return nil
}
