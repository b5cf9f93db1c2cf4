package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is +Y. The ground plane is y = 0.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Transform is a rigid world transform: rotate, then translate. No scale.
// Local -Z is forward, +X right and +Y up, the same convention as a camera.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// Identity returns a transform at the origin with no rotation.
func Identity() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// FromTranslation returns an unrotated transform at p.
func FromTranslation(p mgl64.Vec3) Transform {
	return Transform{Translation: p, Rotation: mgl64.QuatIdent()}
}

// Right is the local +X axis in world space.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Up is the local +Y axis in world space.
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

// Forward is the local -Z axis in world space.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// Point maps a local point to world space.
func (t Transform) Point(local mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(local).Add(t.Translation)
}

// InversePoint maps a world point into the local frame.
func (t Transform) InversePoint(world mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(world.Sub(t.Translation))
}

// Vector rotates a local direction into world space.
func (t Transform) Vector(local mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(local)
}

// InverseVector rotates a world direction into the local frame.
func (t Transform) InverseVector(world mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(world)
}

// Mat4 returns the column-major affine matrix of the transform.
func (t Transform) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).Mul4(t.Rotation.Mat4())
}

// Flatten zeroes the vertical component of v.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// Clamp clamps each component of v to [lo, hi].
func Clamp(v mgl64.Vec3, lo, hi float64) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Max(lo, math.Min(hi, v.X())),
		math.Max(lo, math.Min(hi, v.Y())),
		math.Max(lo, math.Min(hi, v.Z())),
	}
}

// Ray is a half-line from Origin along the unit vector Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance d along the ray.
func (r Ray) At(d float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(d))
}

// IntersectPlane returns the distance along r to the plane through point with
// the given normal. ok is false when the ray is parallel to the plane or the
// plane lies behind the origin.
func (r Ray) IntersectPlane(point, normal mgl64.Vec3) (d float64, ok bool) {
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < 1e-9 {
		return 0, false
	}
	d = point.Sub(r.Origin).Dot(normal) / denom
	if d < 0 {
		return 0, false
	}
	return d, true
}
