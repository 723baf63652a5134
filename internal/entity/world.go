package entity

import "defsim/internal/geom"

// World is the axis-aligned simulation domain. Agents leaving the XY
// rect are consumed; Z is clamped to [ZMin, ZMax] instead.
type World struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// ContainsXY reports whether p lies inside the XY rect.
func (w World) ContainsXY(p geom.Vec3) bool {
	return p.X >= w.XMin && p.X <= w.XMax && p.Y >= w.YMin && p.Y <= w.YMax
}

// ClampZ returns p with Z clamped to the world altitude band.
func (w World) ClampZ(p geom.Vec3) geom.Vec3 {
	if p.Z < w.ZMin {
		p.Z = w.ZMin
	} else if p.Z > w.ZMax {
		p.Z = w.ZMax
	}
	return p
}
