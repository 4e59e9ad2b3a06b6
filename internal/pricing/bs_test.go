package pricing

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestBlackScholesReferenceCase(t *testing.T) {
	tests := []struct {
		optType  OptionType
		expected float64
	}{
		{Call, 10.450583572185565},
		{Put, 5.573526022256971},
	}

	for _, test := range tests {
		actual, err := BlackScholesPrice(test.optType, 100, 100, 1, 0.05, 0.2)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", test.optType, err)
		}
		if !almostEqual(actual, test.expected, 1e-9) {
			t.Fatalf("%s: expected %f, got %f", test.optType, test.expected, actual)
		}
	}
}

func TestBlackScholesPutCallParity(t *testing.T) {
	spots := []float64{50, 90, 100, 110, 250}
	strikes := []float64{80, 100, 120}
	maturities := []float64{7.0 / 365.0, 0.5, 1, 3}
	rates := []float64{-0.01, 0, 0.03, 0.08}
	vols := []float64{0.05, 0.2, 0.6}

	for _, S := range spots {
		for _, K := range strikes {
			for _, T := range maturities {
				for _, r := range rates {
					for _, sigma := range vols {
						call, err := BlackScholesPrice(Call, S, K, T, r, sigma)
						if err != nil {
							t.Fatalf("call: %v", err)
						}
						put, err := BlackScholesPrice(Put, S, K, T, r, sigma)
						if err != nil {
							t.Fatalf("put: %v", err)
						}
						lhs := call - put
						rhs := S - K*math.Exp(-r*T)
						if !almostEqual(lhs, rhs, 1e-9*math.Max(1, S)) {
							t.Fatalf("put-call parity violated for S=%v K=%v T=%v r=%v sigma=%v: LHS=%f RHS=%f",
								S, K, T, r, sigma, lhs, rhs)
						}
					}
				}
			}
		}
	}
}

func TestBlackScholesIntrinsicLimit(t *testing.T) {
	const T = 1e-12

	tests := []struct {
		S, K     float64
		optType  OptionType
		expected float64
	}{
		{110, 100, Call, 10},
		{90, 100, Call, 0},
		{90, 100, Put, 10},
		{110, 100, Put, 0},
	}

	for _, test := range tests {
		actual, err := BlackScholesPrice(test.optType, test.S, test.K, T, 0.05, 0.2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(actual, test.expected, 1e-6) {
			t.Fatalf("%s S=%v K=%v: expected intrinsic %f, got %f", test.optType, test.S, test.K, test.expected, actual)
		}
	}
}

func TestBlackScholesInvalidOptionType(t *testing.T) {
	_, err := BlackScholesPrice(OptionType("invalid"), 100, 100, 1, 0.05, 0.2)
	if !errors.Is(err, ErrInvalidOptionType) {
		t.Fatalf("expected ErrInvalidOptionType, got %v", err)
	}
}

func TestBlackScholesDomainErrors(t *testing.T) {
	tests := []struct {
		name              string
		optType           OptionType
		S, K, T, r, sigma float64
	}{
		{"zero sigma", Call, 110, 100, 1, 0.05, 0},
		{"zero maturity S != K", Call, 110, 100, 0, 0.05, 0.2},
		{"zero maturity S == K", Put, 100, 100, 0, 0.05, 0.2},
		{"negative maturity", Call, 100, 100, -1, 0.05, 0.2},
		{"zero spot", Put, 0, 100, 1, 0.05, 0.2},
		{"negative spot", Put, -5, 100, 1, 0.05, 0.2},
		{"zero strike", Call, 100, 0, 1, 0.05, 0.2},
		{"negative strike", Call, 100, -100, 1, 0.05, 0.2},
		{"domain checked before option type", OptionType("invalid"), 100, 100, 1, 0.05, 0},
	}

	for _, test := range tests {
		p, err := BlackScholesPrice(test.optType, test.S, test.K, test.T, test.r, test.sigma)
		if !errors.Is(err, ErrDomain) {
			t.Fatalf("%s: expected ErrDomain, got price=%f err=%v", test.name, p, err)
		}
	}
}

func TestBlackScholesNaNInputPropagates(t *testing.T) {
	p, err := BlackScholesPrice(Call, math.NaN(), 100, 1, 0.05, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(p) {
		t.Fatalf("expected NaN, got %f", p)
	}
}

func TestBlackScholesNegativeVolatilityIsNotADomainError(t *testing.T) {
	// sigma only appears squared or in a non-zero denominator
	if _, err := BlackScholesPrice(Call, 100, 100, 1, 0.05, -0.2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseOptionType(t *testing.T) {
	tests := []struct {
		in       string
		expected OptionType
		wantErr  bool
	}{
		{"call", Call, false},
		{"CALL", Call, false},
		{"  Put \n", Put, false},
		{"calls", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		actual, err := ParseOptionType(test.in)
		if test.wantErr {
			if !errors.Is(err, ErrInvalidOptionType) {
				t.Fatalf("ParseOptionType(%q): expected ErrInvalidOptionType, got %v", test.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseOptionType(%q): unexpected error: %v", test.in, err)
		}
		if actual != test.expected {
			t.Fatalf("ParseOptionType(%q): expected %s, got %s", test.in, test.expected, actual)
		}
	}
}

func TestInputsValidate(t *testing.T) {
	good := Inputs{Type: Call, S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []Inputs{
		{Type: Call, S: 0, K: 100, T: 1, R: 0.05, Sigma: 0.2},
		{Type: Call, S: 100, K: -1, T: 1, R: 0.05, Sigma: 0.2},
		{Type: Call, S: 100, K: 100, T: 0, R: 0.05, Sigma: 0.2},
		{Type: Call, S: 100, K: 100, T: 1, R: 0.05, Sigma: 0},
		{Type: Call, S: math.Inf(1), K: 100, T: 1, R: 0.05, Sigma: 0.2},
		{Type: Call, S: 100, K: 100, T: 1, R: math.NaN(), Sigma: 0.2},
	}
	for _, in := range bad {
		if err := in.Validate(); !errors.Is(err, ErrInvalidInputs) {
			t.Fatalf("%+v: expected ErrInvalidInputs, got %v", in, err)
		}
	}
}

func TestInputsPrice(t *testing.T) {
	in := Inputs{Type: Put, S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2}
	q, err := in.Price()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Inputs != in {
		t.Fatalf("quote inputs changed: %+v", q.Inputs)
	}
	if !almostEqual(q.Price, 5.57, 0.01) {
		t.Fatalf("expected put ≈ 5.57, got %f", q.Price)
	}
}
