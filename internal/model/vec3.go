package model

import "math"

// Vec3 представляет точку или направление в пространстве сцены.
// Value type, передаётся по значению (immutable). Y: вертикальная ось.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewVec3 создаёт Vec3 с указанными координатами.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add возвращает сумму векторов.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub возвращает разность v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale умножает вектор на скаляр.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// LengthSquared возвращает квадрат длины (без sqrt).
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length возвращает евклидову длину вектора.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Distance возвращает евклидово расстояние до другой точки.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize возвращает единичный вектор того же направления.
// Для нулевого вектора направление не определено: возвращает (Vec3{}, false).
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec3{}, false
	}
	return v.Scale(1 / l), true
}

// ApproxEqual сравнивает покомпонентно с допуском eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}
