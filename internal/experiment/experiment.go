package experiment

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/mcsim/internal/aad"
	"github.com/san-kum/mcsim/internal/analytics"
	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/mc"
	"github.com/san-kum/mcsim/internal/stats"
)

// Greek is one named parameter sensitivity.
type Greek struct {
	Label string
	Value float64
}

// Result is a completed pricing run.
type Result struct {
	Payoffs []float64
	Summary stats.Summary
	Greeks  []Greek
	Elapsed time.Duration
}

// Price runs the configured simulation at plain float64 and summarizes the
// payoffs.
func Price(cfg *config.Config) (*Result, error) {
	prd, err := BuildProduct[mc.Plain](cfg)
	if err != nil {
		return nil, err
	}
	mdl, err := BuildModel[mc.Plain](cfg)
	if err != nil {
		return nil, err
	}
	r, err := BuildRNG(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var payoffs []float64
	if cfg.Parallel {
		payoffs = mc.ParallelSimulate(prd, mdl, r, cfg.Paths, cfg.Antithetic)
	} else {
		payoffs = mc.Simulate(prd, mdl, r, cfg.Paths, cfg.Antithetic)
	}
	elapsed := time.Since(start)

	return &Result{
		Payoffs: payoffs,
		Summary: stats.Describe(payoffs),
		Elapsed: elapsed,
	}, nil
}

// Greeks runs the configured simulation over the tape and returns the price
// together with the pathwise parameter sensitivities.
func Greeks(cfg *config.Config) (*Result, error) {
	prd, err := BuildProduct[aad.Number](cfg)
	if err != nil {
		return nil, err
	}
	mdl, err := BuildModel[aad.Number](cfg)
	if err != nil {
		return nil, err
	}
	r, err := BuildRNG(cfg)
	if err != nil {
		return nil, err
	}

	tape := aad.NewTape()
	start := time.Now()
	var (
		payoffs []float64
		used    mc.Model[aad.Number]
	)
	if cfg.Parallel {
		payoffs, used = mc.ParallelSimulateAAD(prd, mdl, r, cfg.Paths, cfg.Antithetic, tape)
	} else {
		payoffs, used = mc.SimulateAAD(prd, mdl, r, cfg.Paths, cfg.Antithetic, tape)
	}
	elapsed := time.Since(start)

	params := used.Parameters()
	labels := paramLabels(used, len(params))
	greeks := make([]Greek, len(params))
	for j, p := range params {
		greeks[j] = Greek{
			Label: labels[j],
			Value: p.Adjoint() / float64(cfg.Paths),
		}
	}

	return &Result{
		Payoffs: payoffs,
		Summary: stats.Describe(payoffs),
		Greeks:  greeks,
		Elapsed: elapsed,
	}, nil
}

func paramLabels(mdl mc.Model[aad.Number], n int) []string {
	if l, ok := mdl.(interface{ ParamLabels() []string }); ok {
		if labels := l.ParamLabels(); len(labels) == n {
			return labels
		}
	}
	labels := make([]string, n)
	for j := range labels {
		labels[j] = fmt.Sprintf("param%d", j)
	}
	return labels
}

// Reference returns the closed-form price for configurations that have one.
func Reference(cfg *config.Config) (float64, bool) {
	switch cfg.Product {
	case "european":
		switch cfg.Model {
		case "blackscholes":
			return analytics.BlackScholes(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity), true
		case "bachelier":
			return analytics.Bachelier(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity), true
		}
	case "european-put":
		// parity with zero rates: put = call - spot + strike
		switch cfg.Model {
		case "blackscholes":
			return analytics.BlackScholes(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity) - cfg.Spot + cfg.Strike, true
		case "bachelier":
			return analytics.Bachelier(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity) - cfg.Spot + cfg.Strike, true
		}
	}
	return math.NaN(), false
}
