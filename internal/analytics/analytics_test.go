package analytics

import (
	"math"
	"testing"
)

func TestBlackScholesAtTheMoney(t *testing.T) {
	// S=K=100, vol 20%, one year: ~7.9656
	got := BlackScholes(100, 100, 0.2, 1)
	if math.Abs(got-7.9656) > 1e-3 {
		t.Errorf("BlackScholes(100,100,0.2,1) = %g, want ~7.9656", got)
	}
}

func TestBlackScholesLimits(t *testing.T) {
	if got := BlackScholes(120, 100, 0.2, 0); math.Abs(got-20) > 1e-12 {
		t.Errorf("zero maturity in the money = %g, want 20", got)
	}
	if got := BlackScholes(80, 100, 0, 1); got != 0 {
		t.Errorf("zero vol out of the money = %g, want 0", got)
	}
	deep := BlackScholes(1000, 100, 0.2, 1)
	if math.Abs(deep-900) > 1e-6 {
		t.Errorf("deep in the money = %g, want ~900", deep)
	}
}

func TestBachelierAtTheMoney(t *testing.T) {
	// ATM Bachelier price is vol*sqrt(mat)/sqrt(2*pi)
	got := Bachelier(100, 100, 15, 1)
	want := 15 / math.Sqrt(2*math.Pi)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("ATM Bachelier = %g, want %g", got, want)
	}
}

func TestImpliedVolRoundTrip(t *testing.T) {
	tests := []struct {
		spot, strike, vol, mat float64
	}{
		{100, 100, 0.2, 1},
		{100, 120, 0.15, 0.5},
		{100, 80, 0.35, 2},
	}
	for _, tt := range tests {
		prem := BlackScholes(tt.spot, tt.strike, tt.vol, tt.mat)
		ivol := BlackScholesImpliedVol(tt.spot, tt.strike, prem, tt.mat)
		if math.Abs(ivol-tt.vol) > 1e-8 {
			t.Errorf("ivol(K=%g) = %g, want %g", tt.strike, ivol, tt.vol)
		}
	}
}

func TestVegasMatchBumps(t *testing.T) {
	const h = 1e-6
	bsBump := (BlackScholes(100, 110, 0.2+h, 1) - BlackScholes(100, 110, 0.2-h, 1)) / (2 * h)
	if got := BlackScholesVega(100, 110, 0.2, 1); math.Abs(got-bsBump) > 1e-4 {
		t.Errorf("BlackScholesVega = %g, bump gives %g", got, bsBump)
	}
	baBump := (Bachelier(100, 110, 15+h, 1) - Bachelier(100, 110, 15-h, 1)) / (2 * h)
	if got := BachelierVega(100, 110, 15, 1); math.Abs(got-baBump) > 1e-4 {
		t.Errorf("BachelierVega = %g, bump gives %g", got, baBump)
	}
}

func TestDeltaMatchesBump(t *testing.T) {
	const h = 1e-5
	bump := (BlackScholes(100+h, 100, 0.2, 1) - BlackScholes(100-h, 100, 0.2, 1)) / (2 * h)
	if got := BlackScholesDelta(100, 100, 0.2, 1); math.Abs(got-bump) > 1e-6 {
		t.Errorf("BlackScholesDelta = %g, bump gives %g", got, bump)
	}
}

func TestMertonWithoutJumpsIsBlackScholes(t *testing.T) {
	got := Merton(100, 100, 0.2, 1, 0, 0, 0)
	want := BlackScholes(100, 100, 0.2, 1)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("Merton with zero intensity = %g, want BS price %g", got, want)
	}
}

func TestMertonJumpsAddValue(t *testing.T) {
	bs := BlackScholes(100, 100, 0.2, 1)
	jmp := Merton(100, 100, 0.2, 1, 0.5, -0.1, 0.2)
	if jmp <= bs {
		t.Errorf("jump risk should raise the ATM price, got %g vs BS %g", jmp, bs)
	}
}

func TestPutCallParityViaParity(t *testing.T) {
	// with zero rates: call - put = spot - strike
	call := BlackScholes(105, 100, 0.25, 2)
	put := call - 105 + 100
	if put <= 0 {
		t.Errorf("parity put = %g, want positive", put)
	}
}
