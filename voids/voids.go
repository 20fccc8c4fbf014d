package voids

import (
	"iter"
	"log"
	"math"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/delaunay"
	"github.com/notargets/godive/geometry3D"
	"github.com/notargets/godive/types"
	"github.com/notargets/godive/utils"
)

// MinPoints is the smallest catalog that can hold a tetrahedron.
const MinPoints = 4

// Void is one output record: the circumsphere of a Delaunay cell.
type Void struct {
	Center r3.Vec
	Radius float64
}

// Sink receives the voids as they are found.
type Sink interface {
	WriteVoid(v Void) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(v Void) error

func (f SinkFunc) WriteVoid(v Void) error { return f(v) }

// Config holds the run parameters. Domain and Margin are only used when
// Periodic is set; a zero Margin selects the full box size.
type Config struct {
	Periodic bool
	Domain   geometry3D.Domain
	Margin   float64
	Verbose  bool
}

func (cfg Config) Validate() error {
	if !cfg.Periodic {
		return nil
	}
	if err := cfg.Domain.Validate(); err != nil {
		return err
	}
	if size := cfg.Domain.Size(); math.IsNaN(cfg.Margin) || cfg.Margin < 0 || cfg.Margin > size {
		return errors.Wrapf(types.ErrConfig, "periodic margin %g is outside [0, %g]", cfg.Margin, size)
	}
	return nil
}

type triangulation interface {
	Validate() error
	Cells() iter.Seq[delaunay.Tetra]
	NumberOfCells() int
	Duplicates() int
}

/*
Find triangulates points and hands the circumsphere of every cell to sink.
In periodic mode each class of translated cells is reported once and the
centers are folded into the domain.

The first error stops the run; records already handed to sink are then
incomplete and must be discarded.
*/
func Find(points []r3.Vec, cfg Config, sink Sink) (sum *Summary, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	if len(points) < MinPoints {
		err = errors.Wrapf(types.ErrInsufficientData, "too few objects: %d, need at least %d", len(points), MinPoints)
		return
	}
	var ps *geometry3D.PointSet
	if ps, err = geometry3D.NewPointSet(points); err != nil {
		return
	}
	var tr triangulation
	if tr, err = build(ps, cfg); err != nil {
		return
	}

	start := time.Now()
	if err = tr.Validate(); err != nil {
		if cfg.Periodic {
			err = errors.WithMessage(err, "failed to build periodic Delaunay Triangulation")
		} else {
			err = errors.WithMessage(err, "failed to build Delaunay Triangulation")
		}
		return
	}
	if cfg.Verbose {
		log.Printf("Validated in %v, %s", time.Since(start), utils.GetMemUsage())
	}
	log.Printf("Number of cells: %d", tr.NumberOfCells())

	sum = newSummary(len(points), tr.Duplicates())
	for tet := range tr.Cells() {
		var cs geometry3D.Circumsphere
		if cs, err = geometry3D.NewCircumsphere(tet.Corners); err != nil {
			return nil, errors.WithMessagef(err, "cell %v", tet.Vertices)
		}
		v := Void{Center: cs.Center, Radius: cs.Radius}
		if cfg.Periodic {
			v.Center = cfg.Domain.Fold(v.Center)
		}
		if err = sink.WriteVoid(v); err != nil {
			return nil, err
		}
		sum.add(v, geometry3D.TetraVolume(tet.Corners))
	}
	sum.finish()
	return
}

func build(ps *geometry3D.PointSet, cfg Config) (tr triangulation, err error) {
	start := time.Now()
	if cfg.Periodic {
		log.Printf("Building periodic Delaunay Triangulation ...")
		var pt *delaunay.PeriodicTriangulation
		if pt, err = delaunay.NewPeriodic(ps.Points(), cfg.Domain, cfg.Margin); err != nil {
			return
		}
		if cfg.Verbose {
			log.Printf("Periodic cover of %d points, margin %g", pt.CoverSize(), pt.Margin())
		}
		tr = pt
	} else {
		log.Printf("Building Delaunay Triangulation ...")
		var t *delaunay.Triangulation
		if t, err = delaunay.New(ps.Points()); err != nil {
			return
		}
		if cfg.Verbose && t.Dimension() < 3 {
			log.Printf("Points span only %d dimensions, no cells", t.Dimension())
		}
		tr = t
	}
	if cfg.Verbose {
		log.Printf("Built in %v, %s", time.Since(start), utils.GetMemUsage())
	}
	return
}
