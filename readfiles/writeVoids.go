package readfiles

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/notargets/godive/types"
	"github.com/notargets/godive/voids"
)

// DefaultPrecision is the number of significant digits of every output value
const DefaultPrecision = 10

// OutputFormat controls how void records are printed.
type OutputFormat struct {
	Precision int // Significant digits, 1 to 17
}

func NewOutputFormat(precision int) (of OutputFormat, err error) {
	of = OutputFormat{Precision: precision}
	err = of.Validate()
	return
}

func (of OutputFormat) Validate() error {
	if of.Precision < 1 || of.Precision > 17 {
		return errors.Wrapf(types.ErrConfig, "output precision %d is outside [1, 17]", of.Precision)
	}
	return nil
}

// Format renders one value with the configured number of significant digits,
// using exponent notation only for very large or small magnitudes.
func (of OutputFormat) Format(x float64) string {
	return strconv.FormatFloat(x, 'g', of.Precision, 64)
}

// AppendVoid appends the "x y z r" line of a void to buf.
func (of OutputFormat) AppendVoid(buf []byte, v voids.Void) []byte {
	for i, x := range [4]float64{v.Center.X, v.Center.Y, v.Center.Z, v.Radius} {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, x, 'g', of.Precision, 64)
	}
	return append(buf, '\n')
}

// VoidWriter is a buffered voids.Sink writing one "x y z r" line per void.
type VoidWriter struct {
	w      *bufio.Writer
	format OutputFormat
	buf    []byte
	count  int
}

func NewVoidWriter(w io.Writer, format OutputFormat) (vw *VoidWriter, err error) {
	if err = format.Validate(); err != nil {
		return
	}
	vw = &VoidWriter{w: bufio.NewWriter(w), format: format}
	return
}

func (vw *VoidWriter) WriteVoid(v voids.Void) (err error) {
	vw.buf = vw.format.AppendVoid(vw.buf[:0], v)
	if _, err = vw.w.Write(vw.buf); err != nil {
		return errors.Wrap(err, "writing void")
	}
	vw.count++
	return
}

// Count is the number of records written so far.
func (vw *VoidWriter) Count() int { return vw.count }

func (vw *VoidWriter) Flush() error {
	return errors.Wrap(vw.w.Flush(), "flushing voids")
}
