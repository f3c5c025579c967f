package models

import (
	"math"
)

// Vec3 is a position or velocity in the simulator's NED frame
// (X north/forward, Y east/right, Z down).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Norm() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// String renders the vector with centimetre precision.
func (v Vec3) String() string {
	return "(" + ftoa(v.X, 2) + ", " + ftoa(v.Y, 2) + ", " + ftoa(v.Z, 2) + ")"
}

// ToUp converts a down-positive (NED) vertical coordinate to the
// up-positive convention used for display.
func ToUp(z float64) float64 { return -z }

// FromUp is the inverse of ToUp.
func FromUp(u float64) float64 { return -u }

// Orientation holds Euler angles in degrees.
type Orientation struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Quaternion is a unit rotation quaternion as reported by the simulator.
type Quaternion struct {
	W, X, Y, Z float64
}

// ToEuler converts the quaternion to roll/pitch/yaw in degrees.
// Pitch is clamped at ±90° when the quaternion is slightly denormalised.
func (q Quaternion) ToEuler() Orientation {
	sinrCosp := 2 * (q.W*q.X + q.Y*q.Z)
	cosrCosp := 1 - 2*(q.X*q.X+q.Y*q.Y)
	roll := math.Atan2(sinrCosp, cosrCosp)

	sinp := clamp(2*(q.W*q.Y-q.Z*q.X), -1, 1)
	pitch := math.Asin(sinp)

	sinyCosp := 2 * (q.W*q.Z + q.X*q.Y)
	cosyCosp := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	yaw := math.Atan2(sinyCosp, cosyCosp)

	return Orientation{Roll: rad2deg(roll), Pitch: rad2deg(pitch), Yaw: rad2deg(yaw)}
}

// Pose is a single position + attitude snapshot of the vehicle.
type Pose struct {
	Position    Vec3        `json:"position"`
	Orientation Orientation `json:"orientation"`
}
