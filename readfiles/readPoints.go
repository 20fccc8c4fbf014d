package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/geometry3D"
	"github.com/notargets/godive/types"
)

/*
ReadPoints reads a point catalog, one "x y z" record per line. Columns past
the third are ignored. A line that does not start with three finite numbers,
an empty line included, fails the whole read with types.ErrParse.
*/
func ReadPoints(r io.Reader) (points []r3.Vec, err error) {
	var (
		reader = bufio.NewReader(r)
		line   string
		lineNo int
	)
	for {
		line, err = reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "reading line %d", lineNo+1)
		}
		if len(line) == 0 && err == io.EOF {
			return points, nil
		}
		eof := err == io.EOF
		lineNo++
		line = strings.TrimRight(line, "\r\n")
		var (
			p r3.Vec
			n int
		)
		if n, err = fmt.Sscanf(line, "%g %g %g", &p.X, &p.Y, &p.Z); err != nil || n < 3 || !geometry3D.IsFinite(p) {
			return nil, errors.Wrapf(types.ErrParse, "failed to read coordinates from line %d: %q", lineNo, line)
		}
		points = append(points, p)
		if eof {
			return points, nil
		}
	}
}

// ReadPointsFile reads a point catalog from a file.
func ReadPointsFile(filename string, verbose bool) (points []r3.Vec, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, errors.Wrapf(types.ErrConfig, "unable to open input catalog %s: %v", filename, err)
	}
	defer file.Close()
	if points, err = ReadPoints(file); err != nil {
		return nil, errors.Wrapf(err, "in %s", filename)
	}
	if verbose {
		lo, hi := geometry3D.BoundingBox(points)
		fmt.Printf("Bounding Box:\nXMin/XMax = %g, %g\nYMin/YMax = %g, %g\nZMin/ZMax = %g, %g\n",
			lo.X, hi.X, lo.Y, hi.Y, lo.Z, hi.Z)
	}
	return
}
