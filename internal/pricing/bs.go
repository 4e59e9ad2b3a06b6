package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Inputs holds everything needed to price one European option.
type Inputs struct {
	Type  OptionType `json:"option_type"`
	S     float64    `json:"spot"`       // current underlying price
	K     float64    `json:"strike"`     // strike price
	T     float64    `json:"maturity"`   // time to maturity in years
	R     float64    `json:"rate"`       // annualized risk-free rate, decimal
	Sigma float64    `json:"volatility"` // annualized volatility, decimal
}

// Quote is a priced set of Inputs.
type Quote struct {
	Inputs
	Price float64 `json:"price"`
}

// Validate reports whether S, K, T and sigma are positive finite numbers.
// BlackScholesPrice does not call it; callers opt in.
func (in Inputs) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"S", in.S},
		{"K", in.K},
		{"T", in.T},
		{"sigma", in.Sigma},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidInputs, f.name, f.v)
		}
	}
	if math.IsNaN(in.R) || math.IsInf(in.R, 0) {
		return fmt.Errorf("%w: r must be finite, got %v", ErrInvalidInputs, in.R)
	}
	return nil
}

// Price evaluates BlackScholesPrice for in.
func (in Inputs) Price() (Quote, error) {
	p, err := BlackScholesPrice(in.Type, in.S, in.K, in.T, in.R, in.Sigma)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Inputs: in, Price: p}, nil
}

// BlackScholesPrice calculates the price of a European option using the Black-Scholes model.
//
// Parameters:
//   - optType: Call or Put
//   - S: spot price of the underlying asset
//   - K: strike price of the option
//   - T: time to expiry in years
//   - r: risk-free interest rate (annual, as a decimal)
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//
// Inputs outside the formula's domain yield ErrDomain: K == 0, S/K <= 0 (logarithm),
// T < 0 (square root) and sigma*sqrt(T) == 0 (division). An unknown optType yields
// ErrInvalidOptionType. NaN inputs are not rejected and come back as a NaN price.
func BlackScholesPrice(
	optType OptionType,
	S float64, // spot
	K float64, // strike
	T float64, // time to expiry in years
	r float64, // risk-free rate
	sigma float64, // volatility
) (float64, error) {

	if K == 0 {
		return 0, fmt.Errorf("%w: division by zero strike", ErrDomain)
	}
	if S/K <= 0 {
		return 0, fmt.Errorf("%w: log of non-positive S/K=%g", ErrDomain, S/K)
	}
	if T < 0 {
		return 0, fmt.Errorf("%w: square root of negative T=%g", ErrDomain, T)
	}
	sqrtT := math.Sqrt(T)
	if sigma*sqrtT == 0 {
		return 0, fmt.Errorf("%w: sigma*sqrt(T) is zero (sigma=%g, T=%g)", ErrDomain, sigma, T)
	}

	if err := optType.Validate(); err != nil {
		return 0, err
	}

	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	discount := K * math.Exp(-r*T)

	if optType == Call {
		return S*normCDF(d1) - discount*normCDF(d2), nil
	}
	return discount*normCDF(-d2) - S*normCDF(-d1), nil
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
