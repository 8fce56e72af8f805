// Package camera defines the image classification boundary of the panel.
//
// The decision engine treats the classifier as an opaque boolean oracle:
// given a frame and a confidence threshold it answers whether a cat is
// present. FakeService is the bundled stand-in; a real model plugs in behind
// the same interface.
package camera
