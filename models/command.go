package models

// Frame selects the reference frame a velocity command is expressed in.
type Frame int

const (
	FrameBody  Frame = iota // vehicle body frame (forward, right, down)
	FrameWorld              // simulator NED world frame
)

func (f Frame) String() string {
	if f == FrameWorld {
		return "world"
	}
	return "body"
}

// Command is one control-tick request: a linear velocity (m/s) and a yaw
// rate (deg/s, positive clockwise seen from above). It is never persisted.
type Command struct {
	Velocity Vec3
	YawRate  float64
	Frame    Frame
}

// IsZero reports whether the command requests no motion at all.
func (c Command) IsZero() bool {
	return c.Velocity == (Vec3{}) && c.YawRate == 0
}

func (c Command) String() string {
	return c.Frame.String() + " v=" + c.Velocity.String() + " yaw_rate=" + ftoa(c.YawRate, 1)
}
