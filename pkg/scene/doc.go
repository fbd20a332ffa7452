// Package scene holds the named planes, clip planes and solids built by a
// planekit script, and validates them before meshing.
package scene
