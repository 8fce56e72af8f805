// Package guard contains the alarm decision engine.
//
// The Service translates sensor and camera events into alarm-status
// transitions and arming changes into sensor resets. It holds no state of its
// own: every decision reads the current panel state from the repository,
// decides, and writes back.
package guard
