// Package analytics holds the closed forms the simulation results are
// checked against. Rates and dividends are zero throughout, matching the
// models.
package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var gauss = distuv.UnitNormal

// Bachelier prices a call under a normal spot with absolute volatility vol.
func Bachelier(spot, strike, vol, mat float64) float64 {
	std := vol * math.Sqrt(mat)
	if std <= 1e-15 {
		return math.Max(spot-strike, 0)
	}
	d := (spot - strike) / std
	return (spot-strike)*gauss.CDF(d) + std*gauss.Prob(d)
}

// BachelierVega is the call sensitivity to the normal volatility.
func BachelierVega(spot, strike, vol, mat float64) float64 {
	std := vol * math.Sqrt(mat)
	if std <= 1e-15 {
		return 0
	}
	d := (spot - strike) / std
	return math.Sqrt(mat) * gauss.Prob(d)
}

// BlackScholes prices a call under a lognormal spot.
func BlackScholes(spot, strike, vol, mat float64) float64 {
	std := vol * math.Sqrt(mat)
	if std <= 1e-15 {
		return math.Max(spot-strike, 0)
	}
	d1 := math.Log(spot/strike)/std + 0.5*std
	d2 := d1 - std
	return spot*gauss.CDF(d1) - strike*gauss.CDF(d2)
}

// BlackScholesDelta is the call sensitivity to the spot.
func BlackScholesDelta(spot, strike, vol, mat float64) float64 {
	std := vol * math.Sqrt(mat)
	if std <= 1e-15 {
		if spot > strike {
			return 1
		}
		return 0
	}
	d1 := math.Log(spot/strike)/std + 0.5*std
	return gauss.CDF(d1)
}

// BlackScholesVega is the call sensitivity to the lognormal volatility.
func BlackScholesVega(spot, strike, vol, mat float64) float64 {
	std := vol * math.Sqrt(mat)
	if std <= 1e-15 {
		return 0
	}
	d1 := math.Log(spot/strike)/std + 0.5*std
	return spot * math.Sqrt(mat) * gauss.Prob(d1)
}

// BlackScholesImpliedVol inverts BlackScholes for a call price by bisection.
func BlackScholesImpliedVol(spot, strike, prem, mat float64) float64 {
	u := 0.5
	for BlackScholes(spot, strike, u, mat) < prem {
		u *= 2
	}
	l := 0.05
	for BlackScholes(spot, strike, l, mat) > prem {
		l /= 2
	}
	pu := BlackScholes(spot, strike, u, mat)
	pl := BlackScholes(spot, strike, l, mat)
	for u-l > 1e-12 {
		m := 0.5 * (u + l)
		pm := BlackScholes(spot, strike, m, mat)
		if pm > prem {
			u, pu = m, pm
		} else {
			l, pl = m, pm
		}
	}
	if pu == pl {
		return l
	}
	return l + (prem-pl)/(pu-pl)*(u-l)
}

// Merton prices a call under a jump diffusion with lognormal jumps, summing
// Black-Scholes prices conditional on the jump count. The Poisson sum is
// truncated once the remaining weight is negligible.
func Merton(spot, strike, vol, mat, intens, meanJmp, stdJmp float64) float64 {
	varJmp := stdJmp * stdJmp
	mv2 := meanJmp + 0.5*varJmp
	comp := intens * (math.Exp(mv2) - 1)
	variance := vol * vol
	intensT := intens * mat

	result := 0.0
	weight := math.Exp(-intensT)
	for n := 0; ; n++ {
		spotN := spot * math.Exp(float64(n)*mv2-comp*mat)
		volN := math.Sqrt(variance + float64(n)*varJmp/mat)
		result += weight * BlackScholes(spotN, strike, volN, mat)
		if float64(n) > intensT && weight < 1e-12 {
			break
		}
		weight *= intensT / float64(n+1)
	}
	return result
}
