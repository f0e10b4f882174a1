package model

import "math"

// Vec3 представляет точку или направление в мировых координатах.
// Value type, передаётся по значению (immutable).
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// NewVec3 создаёт Vec3 с указанными координатами.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add возвращает сумму векторов.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub возвращает разность векторов.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale умножает вектор на скаляр.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Dot возвращает скалярное произведение.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length возвращает длину вектора.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize возвращает единичный вектор того же направления.
// Нулевой вектор возвращается без изменений.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (v Vec3) DistanceSquared(o Vec3) float64 {
	d := v.Sub(o)
	return d.Dot(d)
}

// Distance возвращает расстояние до другой точки.
func (v Vec3) Distance(o Vec3) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}
