package layout

import "math"

// L-BFGS parameters for the stress minimizer.
const (
	lbfgsHistory        = 10
	lbfgsMaxIter        = 500
	lbfgsGradTolerance  = 1e-5
	lbfgsArmijoC1       = 1e-4
	lbfgsBacktrack      = 0.9
	lbfgsLineTrials     = 20
	lbfgsFallbackStep   = 1e-8
	lbfgsCurvatureFloor = 1e-10
)

// objective evaluates a scalar cost and its gradient at x. The gradient
// slice is owned by the caller and overwritten on each call.
type objective func(x []float64, grad []float64) float64

// minimizeLBFGS minimizes fn starting from x0 using limited-memory BFGS
// with Armijo backtracking. It returns the best point found and its cost.
// When progress is non-nil it receives the iteration index and the
// max-norm of the gradient after each completed step.
func minimizeLBFGS(fn objective, x0 []float64, progress func(iteration int, gradNorm float64)) ([]float64, float64) {
	n := len(x0)
	x := append([]float64(nil), x0...)
	grad := make([]float64, n)
	cost := fn(x, grad)

	var sHist, yHist [][]float64
	var rhoHist []float64

	dir := make([]float64, n)
	xNext := make([]float64, n)
	gradNext := make([]float64, n)
	step := 1.0

	for iter := 0; iter < lbfgsMaxIter; iter++ {
		if maxAbs(grad) < lbfgsGradTolerance {
			break
		}

		twoLoop(grad, sHist, yHist, rhoHist, dir)

		descent := dot(dir, grad)
		if descent >= 0 {
			// History produced a non-descent direction; restart from
			// steepest descent with a tiny step.
			for i := range dir {
				dir[i] = -grad[i]
			}
			descent = dot(dir, grad)
			step = lbfgsFallbackStep
		}

		costNext, ok := lineSearch(fn, x, dir, cost, descent, &step, xNext, gradNext)
		if !ok {
			break
		}

		s := make([]float64, n)
		y := make([]float64, n)
		var sy float64
		for i := 0; i < n; i++ {
			s[i] = xNext[i] - x[i]
			y[i] = gradNext[i] - grad[i]
			sy += s[i] * y[i]
		}
		if sy > lbfgsCurvatureFloor {
			sHist = append(sHist, s)
			yHist = append(yHist, y)
			rhoHist = append(rhoHist, 1/sy)
			if len(sHist) > lbfgsHistory {
				sHist = sHist[1:]
				yHist = yHist[1:]
				rhoHist = rhoHist[1:]
			}
		}

		copy(x, xNext)
		copy(grad, gradNext)
		cost = costNext

		if progress != nil {
			progress(iter, maxAbs(grad))
		}
	}
	return x, cost
}

// twoLoop computes the L-BFGS search direction into dir using the stored
// curvature pairs.
func twoLoop(grad []float64, sHist, yHist [][]float64, rhoHist []float64, dir []float64) {
	for i := range dir {
		dir[i] = -grad[i]
	}
	m := len(sHist)
	if m == 0 {
		return
	}

	alpha := make([]float64, m)
	for i := m - 1; i >= 0; i-- {
		alpha[i] = rhoHist[i] * dot(sHist[i], dir)
		axpy(dir, -alpha[i], yHist[i])
	}

	// Scale by the most recent curvature estimate.
	last := m - 1
	yy := dot(yHist[last], yHist[last])
	if yy > 0 {
		scaleVec(dir, 1/(rhoHist[last]*yy))
	}

	for i := 0; i < m; i++ {
		beta := rhoHist[i] * dot(yHist[i], dir)
		axpy(dir, alpha[i]-beta, sHist[i])
	}
}

// lineSearch backtracks along dir until the Armijo condition holds,
// evaluating the gradient at the accepted point. The step carries over
// between iterations and grows back slowly after short steps.
func lineSearch(fn objective, x, dir []float64, cost, descent float64, step *float64, xNext, gradNext []float64) (float64, bool) {
	t := *step
	for trial := 0; trial < lbfgsLineTrials; trial++ {
		for i := range x {
			xNext[i] = x[i] + t*dir[i]
		}
		costNext := fn(xNext, gradNext)
		if costNext <= cost+lbfgsArmijoC1*t*descent {
			*step = t / lbfgsBacktrack
			return costNext, true
		}
		t *= lbfgsBacktrack
	}
	return 0, false
}

func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}
