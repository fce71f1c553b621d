// Package grid owns the 3-D quadrature grid model.
//
// Responsibilities: combining a radial discretization with a Lebedev
// angular table into Cartesian sample points and per-point integration
// weights, and stitching several such grids into one truncated grid with
// shell-dependent angular resolution.
// Key types: RadialGrid, Spherical, Truncated.
//
// Grids are immutable once constructed and safe for concurrent readers.
// Radial grid generation and transformation live outside this package; a
// RadialGrid is consumed through its interface only.
package grid
