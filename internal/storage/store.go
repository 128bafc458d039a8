package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/experiment"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Product    string             `json:"product"`
	Model      string             `json:"model"`
	RNG        string             `json:"rng"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       uint64             `json:"seed"`
	Paths      int                `json:"paths"`
	Antithetic bool               `json:"antithetic"`
	Parallel   bool               `json:"parallel"`
	Price      float64            `json:"price"`
	StdErr     float64            `json:"std_err"`
	Greeks     map[string]float64 `json:"greeks,omitempty"`
	ElapsedMs  float64            `json:"elapsed_ms"`
}

func (s *Store) Save(cfg *config.Config, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", cfg.Product, cfg.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Product:    cfg.Product,
		Model:      cfg.Model,
		RNG:        cfg.RNG,
		Timestamp:  time.Now(),
		Seed:       cfg.Seed,
		Paths:      cfg.Paths,
		Antithetic: cfg.Antithetic,
		Parallel:   cfg.Parallel,
		Price:      result.Summary.Mean,
		StdErr:     result.Summary.StdErr,
		ElapsedMs:  float64(result.Elapsed.Microseconds()) / 1000,
	}
	if len(result.Greeks) > 0 {
		meta.Greeks = make(map[string]float64, len(result.Greeks))
		for _, g := range result.Greeks {
			meta.Greeks[g.Label] = g.Value
		}
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "payoffs.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"path", "payoff"}); err != nil {
		return "", err
	}
	for i, p := range result.Payoffs {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(p, 'g', 17, 64)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadPayoffs(runID string) ([]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "payoffs.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []float64{}, nil
	}

	payoffs := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		p, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		payoffs = append(payoffs, p)
	}

	return payoffs, nil
}
