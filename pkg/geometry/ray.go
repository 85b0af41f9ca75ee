package geometry

// Ray is a half-line starting at Origin. Direction is kept normalized.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Project returns the signed distance along the ray of the point closest to pt
func (r Ray) Project(pt Vector3) float64 {
	return pt.Sub(r.Origin).Dot(r.Direction)
}

// ClosestPoint finds the closest point on the ray's supporting line
func (r Ray) ClosestPoint(pt Vector3) Vector3 {
	return r.At(r.Project(pt))
}

// DistToPoint returns the perpendicular distance from pt to the ray's line
func (r Ray) DistToPoint(pt Vector3) float64 {
	return r.ClosestPoint(pt).Distance(pt)
}
