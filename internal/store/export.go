package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/experiment"
)

type ExportData struct {
	Product    string             `json:"product"`
	Model      string             `json:"model"`
	RNG        string             `json:"rng"`
	Seed       uint64             `json:"seed"`
	Paths      int                `json:"paths"`
	Antithetic bool               `json:"antithetic"`
	Parallel   bool               `json:"parallel"`
	Price      float64            `json:"price"`
	StdErr     float64            `json:"std_err"`
	Greeks     map[string]float64 `json:"greeks,omitempty"`
	Payoffs    []float64          `json:"payoffs,omitempty"`
}

func buildExport(cfg *config.Config, result *experiment.Result, withPayoffs bool) ExportData {
	data := ExportData{
		Product:    cfg.Product,
		Model:      cfg.Model,
		RNG:        cfg.RNG,
		Seed:       cfg.Seed,
		Paths:      cfg.Paths,
		Antithetic: cfg.Antithetic,
		Parallel:   cfg.Parallel,
		Price:      result.Summary.Mean,
		StdErr:     result.Summary.StdErr,
	}
	if len(result.Greeks) > 0 {
		data.Greeks = make(map[string]float64, len(result.Greeks))
		for _, g := range result.Greeks {
			data.Greeks[g.Label] = g.Value
		}
	}
	if withPayoffs {
		data.Payoffs = result.Payoffs
	}
	return data
}

func writeExport(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, cfg *config.Config, result *experiment.Result, withPayoffs bool) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, buildExport(cfg, result, withPayoffs))
}

func ExportJSONStdout(cfg *config.Config, result *experiment.Result, withPayoffs bool) error {
	return writeExport(os.Stdout, buildExport(cfg, result, withPayoffs))
}
