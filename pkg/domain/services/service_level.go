package services

import (
	"fmt"
	"math"
)

// NormCDF returns the standard normal cumulative distribution function at x
func NormCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// Coefficients for the Acklam rational approximation of the inverse
// normal CDF. Absolute error is below 1.15e-9 over the full range,
// more than enough for safety stock z factors.
var (
	acklamA = [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00,
	}
	acklamB = [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01,
	}
	acklamC = [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00,
	}
	acklamD = [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00,
		3.754408661907416e+00,
	}
)

// NormInv returns the z value such that NormCDF(z) = p. p must be in (0, 1).
func NormInv(p float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("probability must be between 0 and 1 exclusive, got %g", p)
	}

	const pLow = 0.02425
	const pHigh = 1 - pLow

	var z float64
	switch {
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		z = (((((acklamC[0]*q+acklamC[1])*q+acklamC[2])*q+acklamC[3])*q+acklamC[4])*q + acklamC[5]) /
			((((acklamD[0]*q+acklamD[1])*q+acklamD[2])*q+acklamD[3])*q + 1)
	case p <= pHigh:
		q := p - 0.5
		r := q * q
		z = (((((acklamA[0]*r+acklamA[1])*r+acklamA[2])*r+acklamA[3])*r+acklamA[4])*r + acklamA[5]) * q /
			(((((acklamB[0]*r+acklamB[1])*r+acklamB[2])*r+acklamB[3])*r+acklamB[4])*r + 1)
	default:
		q := math.Sqrt(-2 * math.Log(1-p))
		z = -(((((acklamC[0]*q+acklamC[1])*q+acklamC[2])*q+acklamC[3])*q+acklamC[4])*q + acklamC[5]) /
			((((acklamD[0]*q+acklamD[1])*q+acklamD[2])*q+acklamD[3])*q + 1)
	}

	// One step of Halley refinement tightens the tails
	e := NormCDF(z) - p
	u := e * math.Sqrt(2*math.Pi) * math.Exp(z*z/2)
	z = z - u/(1+z*u/2)

	return z, nil
}

// ServiceLevelZ returns the safety factor z for a cycle service level,
// e.g. 0.95 -> 1.645
func ServiceLevelZ(serviceLevel float64) (float64, error) {
	z, err := NormInv(serviceLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid service level: %w", err)
	}
	return z, nil
}
