// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

// MotorDriven is implemented by any joint whose motor's target speed can
// be driven by a DynamicMotor (Hinge and Prismatic both qualify).
type MotorDriven interface {
	SetMotorEnabled(state bool)
	SetMotorSpeed(speed float32)
	SetMotorMaxForce(maxForce float32)
}

// MotorDriver computes a motor's target speed for the current step,
// given the elapsed time since the previous step.
type MotorDriver func(dt float32) float32

// DynamicMotor wraps a joint's fixed-speed motor with a per-step target
// speed computed from a MotorDriver callback, rather than a value set
// once and left alone. Generalizes Hinge/Prismatic's SetMotorSpeed from a
// constant to an arbitrary control law (ramping to a target, following a
// setpoint that changes over the simulation, reacting to game state).
type DynamicMotor struct {
	joint  MotorDriven
	driver MotorDriver
}

// NewDynamicMotor creates a DynamicMotor driving joint's motor, enabling
// it immediately.
func NewDynamicMotor(joint MotorDriven, driver MotorDriver) *DynamicMotor {

	dm := &DynamicMotor{joint: joint, driver: driver}
	dm.joint.SetMotorEnabled(true)
	return dm
}

// SetMaxForce forwards to the underlying joint's motor.
func (dm *DynamicMotor) SetMaxForce(maxForce float32) {

	dm.joint.SetMotorMaxForce(maxForce)
}

// SetDriver replaces the target-speed callback.
func (dm *DynamicMotor) SetDriver(driver MotorDriver) {

	dm.driver = driver
}

// Step evaluates the driver for this step's dt and pushes the resulting
// target speed into the underlying joint's motor. Called once per
// simulation step, before the joint's own Update.
func (dm *DynamicMotor) Step(dt float32) {

	if dm.driver == nil {
		return
	}
	dm.joint.SetMotorSpeed(dm.driver(dt))
}

// Disable turns the underlying motor off, leaving the joint's other rows
// (limits, the base constraint) unaffected.
func (dm *DynamicMotor) Disable() {

	dm.joint.SetMotorEnabled(false)
}
