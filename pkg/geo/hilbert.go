package geo

// IdentityZoom is the fixed zoom level whose pixel grid quantizes points for
// identity assignment.
const IdentityZoom = 18

// identityOrder covers the full 2^26 x 2^26 pixel grid at IdentityZoom.
const identityOrder = 26

// HilbertIndex converts (x, y) to its Hilbert curve index on a 2^order by
// 2^order grid. Nearby cells receive nearby indices, which keeps the derived
// node IDs spatially local.
func HilbertIndex(x, y uint64, order uint) uint64 {
	var d uint64
	for s := uint64(1) << (order - 1); s > 0; s /= 2 {
		var rx, ry uint64
		if x&s > 0 {
			rx = 1
		}
		if y&s > 0 {
			ry = 1
		}
		d += s * s * ((3 * rx) ^ ry)

		// Rotate quadrant.
		if ry == 0 {
			if rx == 1 {
				x = s*2 - 1 - x
				y = s*2 - 1 - y
			}
			x, y = y, x
		}
	}
	return d
}

// Identify assigns a deterministic node ID to a point: the Hilbert index of
// its pixel cell at IdentityZoom, truncated to 32 bits. All points that
// quantize to the same cell receive the same ID, which is what merges
// vertices shared across adjacent tile boundaries into one node.
func Identify(lon, lat float64) uint32 {
	p := ToPixel(lon, lat, IdentityZoom)
	return uint32(HilbertIndex(uint64(p.X), uint64(p.Y), identityOrder))
}
