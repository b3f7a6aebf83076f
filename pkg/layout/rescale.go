package layout

import "math"

// Rescale centers positions on their centroid and scales them so the
// farthest point lies at distance scale from the new center. Every
// optimizer routes its result through here (except ARF, which keeps its own
// physical scaling).
//
// Non-finite coordinates are ignored when averaging but preserved verbatim
// in the output, so upstream NaN injection stays detectable instead of
// corrupting the centroid. Vectors shorter than center are extended with
// zeros to match. If all points coincide, everything collapses to center.
func Rescale(pos PositionMap, scale float64, center []float64) PositionMap {
	keys := make([]string, 0, len(pos))
	dense := make([][]float64, 0, len(pos))
	for id, p := range pos {
		keys = append(keys, id)
		dense = append(dense, p)
	}
	dense = rescaleDense(dense, scale, center)
	out := make(PositionMap, len(pos))
	for i, id := range keys {
		out[id] = dense[i]
	}
	return out
}

// RescaleSlice is the array-style variant of Rescale for dense position
// collections indexed by node.
func RescaleSlice(pos [][]float64, scale float64, center []float64) [][]float64 {
	return rescaleDense(pos, scale, center)
}

func rescaleDense(pos [][]float64, scale float64, center []float64) [][]float64 {
	dim := len(center)
	n := len(pos)
	if n == 0 {
		return [][]float64{}
	}

	padded := make([][]float64, n)
	for i, p := range pos {
		padded[i] = padTo(p, dim)
	}

	// Centroid over finite coordinates only.
	centroid := make([]float64, dim)
	counts := make([]int, dim)
	for _, p := range padded {
		for d := 0; d < dim; d++ {
			if isFinite(p[d]) {
				centroid[d] += p[d]
				counts[d]++
			}
		}
	}
	for d := 0; d < dim; d++ {
		if counts[d] > 0 {
			centroid[d] /= float64(counts[d])
		}
	}

	// Farthest fully-finite point from the centroid.
	var maxDist float64
	for _, p := range padded {
		var s float64
		finite := true
		for d := 0; d < dim; d++ {
			if !isFinite(p[d]) {
				finite = false
				break
			}
			dx := p[d] - centroid[d]
			s += dx * dx
		}
		if finite {
			if dist := math.Sqrt(s); dist > maxDist {
				maxDist = dist
			}
		}
	}

	factor := 0.0
	if maxDist > 0 {
		factor = scale / maxDist
	}

	out := make([][]float64, n)
	for i, p := range padded {
		v := make([]float64, dim)
		for d := 0; d < dim; d++ {
			if !isFinite(p[d]) {
				v[d] = p[d]
				continue
			}
			v[d] = center[d] + (p[d]-centroid[d])*factor
		}
		out[i] = v
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
