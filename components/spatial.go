package components

// Position represents a body's world position. For balls this is the center;
// for blocks it is the top-left corner of the unrotated rectangle.
type Position struct {
	X, Y float32
}

// Velocity represents a body's linear velocity in px/s.
type Velocity struct {
	X, Y float32
}

// Rotation represents a block's orientation and angular velocity.
type Rotation struct {
	Angle  float32 // degrees, clockwise in screen space
	AngVel float32 // degrees per second
}
