// Package angular owns the angular half of a spherical quadrature grid.
//
// Responsibilities: loading Lebedev angular quadrature tables from their
// precision-indexed text resources, converting the stored angles from
// degrees to radians, and caching the loaded tables for reuse across grid
// constructions.
// Key types: Table, Cache.
//
// Tables are immutable after load and safe to share. The package embeds the
// low-order datasets; a full dataset directory can be supplied through
// NewCacheFS.
package angular
