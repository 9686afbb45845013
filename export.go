package turtleizer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrNoSegments is returned when exporting a scene that has drawn nothing.
var ErrNoSegments = errors.New("turtleizer: nothing drawn")

// maxPointsPerSVGPath caps the number of segments in one SVG path element.
const maxPointsPerSVGPath = 800

// ExportKind selects an export format.
type ExportKind uint8

const (
	ExportCSV ExportKind = iota // segment table
	ExportSVG                   // vector drawing
	ExportPNG                   // raster drawing
)

// Ext returns the file extension for the format, without the dot.
func (k ExportKind) Ext() string {
	switch k {
	case ExportCSV:
		return "csv"
	case ExportSVG:
		return "svg"
	default:
		return "png"
	}
}

// csvHeader is the fixed column layout of the CSV export.
var csvHeader = []string{"xFrom", "yFrom", "xTo", "yTo", "color"}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes every segment of every turtle, in turtle then insertion
// order, using sep as the field separator. Colors are written as #rrggbb.
func (s *Scene) WriteCSV(w io.Writer, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(csvHeader))
	for _, t := range s.turtles {
		for _, seg := range t.log.All() {
			row[0] = formatCoord(seg.From.X)
			row[1] = formatCoord(seg.From.Y)
			row[2] = formatCoord(seg.To.X)
			row[3] = formatCoord(seg.To.Y)
			row[4] = seg.Color.Hex()
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteSVG writes the drawing as an SVG document. Coordinates are shifted by
// the negated bounds origin and multiplied by scale. Consecutive segments of
// one turtle that share color and joint are merged into a single path of
// relative moves, up to maxPointsPerSVGPath segments per path.
func (s *Scene) WriteSVG(w io.Writer, title string, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	b := s.Bounds()
	off := Vec2{-b.X, -b.Y}
	width := int64(math.Ceil(b.Width * scale))
	height := int64(math.Ceil(b.Height * scale))

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"no\"?>\n")
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%d\" height=\"%d\">\n", width, height)
	fmt.Fprintf(bw, "  <title>%s</title>\n", svgEscape(title))
	r, g, bl := s.background.Bytes()
	fmt.Fprintf(bw, "    <rect style=\"fill:rgb(%d,%d,%d);fill-opacity:1\" x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" id=\"background\"/>\n",
		r, g, bl, width, height)
	fmt.Fprintf(bw, "  <g id=\"elements\" style=\"fill:none;stroke-width:%spx;stroke-opacity:1;stroke-linejoin:miter\">\n",
		formatCoord(scale))

	pathID := 0
	for _, t := range s.turtles {
		pathID = writeSVGPaths(bw, t.log.All(), off, scale, pathID)
	}

	fmt.Fprint(bw, "  </g>\n</svg>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// writeSVGPaths writes one turtle's segments and returns the next path ID.
func writeSVGPaths(w *bufio.Writer, segs []Segment, off Vec2, scale float64, pathID int) int {
	var last Vec2
	var lastCol Color
	n := 0
	for _, seg := range segs {
		if n == 0 || last != seg.From || lastCol != seg.Color || n >= maxPointsPerSVGPath {
			if n > 0 {
				fmt.Fprint(w, "\" />\n")
			}
			fmt.Fprintf(w, "    <path\n      style=\"stroke:%s\"\n      id=\"path%05d\"\n      d=\"m %s,%s ",
				seg.Color.Hex(), pathID,
				formatCoord((seg.From.X+off.X)*scale), formatCoord((seg.From.Y+off.Y)*scale))
			pathID++
			n = 0
		}
		fmt.Fprintf(w, "%s,%s ",
			formatCoord((seg.To.X-seg.From.X)*scale), formatCoord((seg.To.Y-seg.From.Y)*scale))
		last, lastCol = seg.To, seg.Color
		n++
	}
	if n > 0 {
		fmt.Fprint(w, "\" />\n")
	}
	return pathID
}

func svgEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '&':
			out = append(out, "&amp;"...)
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// ExportFile writes the drawing in the given format into dir, named with a
// timestamp, and returns the file path.
func (s *Scene) ExportFile(kind ExportKind, dir string) (string, error) {
	if !s.HasSegments() {
		return "", ErrNoSegments
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	name := sanitizeLabel("turtleizer_" + stamp)
	path := filepath.Join(dir, name+"."+kind.Ext())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", path, err)
	}
	switch kind {
	case ExportCSV:
		err = s.WriteCSV(f, ',')
	case ExportSVG:
		err = s.WriteSVG(f, name, 1)
	default:
		err = s.WritePNG(f, 1)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("export: close %s: %w", path, cerr)
	}
	if err != nil {
		logger().Warn("export failed", "path", path, "error", err)
		return "", err
	}
	logger().Info("exported drawing", "path", path, "format", kind.Ext())
	return path, nil
}
