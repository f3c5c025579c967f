package airsim

import (
	"trajectory-logger/models"
)

// Wire types mirror the simulator's MSGPACK_DEFINE_MAP structs, so field
// names must match exactly. Unknown fields in responses are skipped.

type Vector3r struct {
	X float64 `msgpack:"x_val"`
	Y float64 `msgpack:"y_val"`
	Z float64 `msgpack:"z_val"`
}

func (v Vector3r) toModel() models.Vec3 { return models.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

type Quaternionr struct {
	W float64 `msgpack:"w_val"`
	X float64 `msgpack:"x_val"`
	Y float64 `msgpack:"y_val"`
	Z float64 `msgpack:"z_val"`
}

func (q Quaternionr) toModel() models.Quaternion {
	return models.Quaternion{W: q.W, X: q.X, Y: q.Y, Z: q.Z}
}

type KinematicsState struct {
	Position        Vector3r    `msgpack:"position"`
	Orientation     Quaternionr `msgpack:"orientation"`
	LinearVelocity  Vector3r    `msgpack:"linear_velocity"`
	AngularVelocity Vector3r    `msgpack:"angular_velocity"`
}

// LandedState as reported in MultirotorState.
type LandedState int

const (
	Landed LandedState = iota
	Flying
)

type MultirotorState struct {
	Kinematics  KinematicsState `msgpack:"kinematics_estimated"`
	LandedState LandedState     `msgpack:"landed_state"`
	Timestamp   uint64          `msgpack:"timestamp"` // simulator clock, ns
}

// Flying reports whether the simulator considers the vehicle airborne.
func (s MultirotorState) Flying() bool { return s.LandedState != Landed }

// Pose extracts the estimated position and attitude.
func (s MultirotorState) Pose() models.Pose {
	return models.Pose{
		Position:    s.Kinematics.Position.toModel(),
		Orientation: s.Kinematics.Orientation.toModel().ToEuler(),
	}
}

// YawMode selects whether YawOrRate is an absolute yaw (deg) or a rate (deg/s).
type YawMode struct {
	IsRate    bool    `msgpack:"is_rate"`
	YawOrRate float64 `msgpack:"yaw_or_rate"`
}

// DrivetrainType constrains how the vehicle may orient while moving.
type DrivetrainType int

// MaxDegreeOfFreedom lets yaw follow the yaw mode independently of the
// direction of travel.
const MaxDegreeOfFreedom DrivetrainType = 0
