package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/geom"
)

// Camera is a perspective camera orbiting Target.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Fovy   float32 // degrees
	Near   float32
	Far    float32

	Width, Height int
}

func NewCamera(eye, target mgl32.Vec3, fovy float32) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     mgl32.Vec3{0, 1, 0},
		Fovy:   fovy,
		Near:   0.1,
		Far:    200,
		Width:  1,
		Height: 1,
	}
}

// Resize sets the viewport in pixels.
func (c *Camera) Resize(w, h int) {
	c.Width, c.Height = max(w, 1), max(h, 1)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(c.Width) / float32(c.Height)
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, c.Near, c.Far)
}

// Ray returns the world-space ray through a screen pixel (origin top left).
func (c *Camera) Ray(x, y float32) geom.Ray {
	view, proj := c.View(), c.Projection()
	winY := float32(c.Height) - y
	near, err1 := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, proj, 0, 0, c.Width, c.Height)
	far, err2 := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, proj, 0, 0, c.Width, c.Height)
	if err1 != nil || err2 != nil {
		return geom.NewRay(c.Eye, c.Target)
	}
	return geom.NewRay(near, far)
}

// Project maps a world point to screen pixels (origin top left). ok is false
// for points outside the depth range.
func (c *Camera) Project(p mgl32.Vec3) (x, y float32, ok bool) {
	win := mgl32.Project(p, c.View(), c.Projection(), 0, 0, c.Width, c.Height)
	if win.Z() < 0 || win.Z() > 1 {
		return 0, 0, false
	}
	return win.X(), float32(c.Height) - win.Y(), true
}

// Right is the camera's horizontal axis in world space.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Target.Sub(c.Eye).Cross(c.Up).Normalize()
}

// Orbit rotates the eye around Target by yaw radians about the up axis.
func (c *Camera) Orbit(yaw float32) {
	off := c.Eye.Sub(c.Target)
	s, co := float32(math.Sin(float64(yaw))), float32(math.Cos(float64(yaw)))
	off = mgl32.Vec3{off.X()*co - off.Z()*s, off.Y(), off.X()*s + off.Z()*co}
	c.Eye = c.Target.Add(off)
}

// Zoom moves the eye toward Target by factor, keeping it between 1 and 100
// units away.
func (c *Camera) Zoom(factor float32) {
	off := c.Eye.Sub(c.Target)
	dist := mgl32.Clamp(off.Len()*factor, 1, 100)
	c.Eye = c.Target.Add(off.Normalize().Mul(dist))
}
