// Package section produces cross-sections through gridded or scattered
// geographic datasets: horizontal slices, vertical slices at a fixed
// latitude or longitude, and diagonal profiles between two geographic
// points. Dispatch is keyed by the dataset's derived shape class.
package section

import (
	"fmt"

	"github.com/nci/geomodel/geodesy"
	"github.com/nci/geomodel/grid"
)

const (
	// DefaultResolution is the per-axis sample count of interpolated
	// sections when the caller does not configure one.
	DefaultResolution = 100
	// DefaultSectionWidthKm is the band width for point-set sections.
	DefaultSectionWidthKm = 10.0
	// ProfileDistanceField carries the along-profile great-circle
	// distance, in kilometers, on diagonal sections.
	ProfileDistanceField = "profile_distance"
)

// LonLat is a geographic profile endpoint.
type LonLat struct {
	Lon, Lat float64
}

// Params selects the section geometry. Exactly one of Depth, Lat, Lon
// or the Start/End pair applies; Start and End must be supplied
// together.
type Params struct {
	Depth *float64 // km, negative down
	Lat   *float64
	Lon   *float64
	Start *LonLat
	End   *LonLat

	// Interpolate resamples onto a regular profile lattice instead of
	// extracting the nearest index slice. Diagonal profiles always
	// interpolate.
	Interpolate bool

	// Resolution of interpolated sections; zero values default to
	// DefaultResolution.
	NLon, NLat, NDepth int

	// SectionWidth is the full band width in kilometers for point-set
	// sections.
	SectionWidth float64

	// Anchor fixes the projection for point-set band tests. When nil an
	// anchor near the data is constructed.
	Anchor *geodesy.ProjectionPoint
}

func (p *Params) nLon() int {
	if p.NLon > 0 {
		return p.NLon
	}
	return DefaultResolution
}

func (p *Params) nLat() int {
	if p.NLat > 0 {
		return p.NLat
	}
	return DefaultResolution
}

func (p *Params) nDepth() int {
	if p.NDepth > 0 {
		return p.NDepth
	}
	return DefaultResolution
}

func (p *Params) halfWidthKm() float64 {
	w := p.SectionWidth
	if w <= 0 {
		w = DefaultSectionWidthKm
	}
	return w / 2
}

// CrossSection derives a section grid from a geographic dataset. The
// result is a new grid of the same variant family; the input is never
// modified.
func CrossSection(g *grid.GeoGrid, p Params) (*grid.GeoGrid, error) {
	if p.Start != nil && p.End == nil {
		return nil, &grid.MissingPairedParameterError{Given: "Start", Missing: "End"}
	}
	if p.End != nil && p.Start == nil {
		return nil, &grid.MissingPairedParameterError{Given: "End", Missing: "Start"}
	}
	if p.Start == nil && p.Depth == nil && p.Lat == nil && p.Lon == nil {
		return nil, fmt.Errorf("no section geometry given; supply Depth, Lat, Lon or Start/End")
	}

	switch g.Shape().Class() {
	case grid.PointSet:
		return pointSection(g, p)
	case grid.SurfaceGrid:
		return surfaceSection(g, p)
	default:
		return volumeSection(g, p)
	}
}

// anchorNear returns the configured anchor or one centered on the data.
func anchorNear(g *grid.GeoGrid, p Params) *geodesy.ProjectionPoint {
	if p.Anchor != nil {
		return p.Anchor
	}
	lonMin, lonMax := g.Lon.MinMax()
	latMin, latMax := g.Lat.MinMax()
	return geodesy.NewProjectionPoint((latMin+latMax)/2, (lonMin+lonMax)/2)
}
