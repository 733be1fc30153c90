package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/bernoulli/internal/fluid"
	"github.com/san-kum/bernoulli/internal/solver"
)

// Store persists solve runs under a base directory, one subdirectory
// per run holding metadata.json and trace.csv.
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
	ID            string       `json:"id"`
	Timestamp     time.Time    `json:"timestamp"`
	Params        fluid.Params `json:"params"`
	X0            float64      `json:"x0"`
	X1            float64      `json:"x1"`
	Tolerance     float64      `json:"tolerance"`
	MaxIterations int          `json:"max_iterations"`
	Analytical    float64      `json:"analytical,omitempty"`
	HasAnalytical bool         `json:"has_analytical"`
	Root          float64      `json:"root,omitempty"`
	Converged     bool         `json:"converged"`
	Status        string       `json:"status"`
	Iterations    int          `json:"iterations"`
}

func (s *Store) Save(p fluid.Params, x0, x1 float64, opts solver.Options, analytical float64, hasAnalytical bool, out solver.Outcome) (string, error) {
	runID := fmt.Sprintf("solve_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Params:        p,
		X0:            x0,
		X1:            x1,
		Tolerance:     opts.Tolerance,
		MaxIterations: opts.MaxIterations,
		Analytical:    analytical,
		HasAnalytical: hasAnalytical,
		Converged:     out.Converged,
		Status:        out.Status.String(),
		Iterations:    len(out.Trace),
	}
	if root, ok := out.Solution(); ok {
		meta.Root = root
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

	csvPath := filepath.Join(runDir, "trace.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "candidate", "residual"}); err != nil {
		return "", err
	}

	for _, it := range out.Trace {
		row := []string{
			strconv.Itoa(it.Index),
			strconv.FormatFloat(it.Candidate, 'g', -1, 64),
			strconv.FormatFloat(it.Residual, 'g', -1, 64),
		}
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

func (s *Store) LoadTrace(runID string) ([]solver.Iteration, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trace.csv")
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
		return []solver.Iteration{}, nil
	}

	trace := make([]solver.Iteration, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		idx, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		candidate, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		residual, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		trace = append(trace, solver.Iteration{Index: idx, Candidate: candidate, Residual: residual})
	}

	return trace, nil
}
