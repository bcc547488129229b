package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/albapepper/capvalue/internal/config"
	"github.com/albapepper/capvalue/internal/reference"
)

const (
	testExport = `{
  "gameAttributes": {"season": 2025, "userTid": 0},
  "teams": [{"tid": 0, "abbrev": "BOS"}],
  "players": [{
    "pid": 1, "tid": 0, "firstName": "Ada", "lastName": "Stone",
    "born": {"year": 2001, "loc": "Ottawa, ON, Canada"},
    "ratings": [{"season": 2025, "pos": "C", "ovr": 80}],
    "salaries": [{"season": 2025, "amount": 4000}],
    "draft": {"year": 2019}
  }]
}`
	testCurves = "pos,age,ovr,variable,value\nC,24,80,ovr_1,81\nC,24,80,value_1,42.5\n"
	testModels = `{"C":{"coef":0.5,"intercept":2},"W":{"coef":0.5,"intercept":2},"D":{"coef":0.5,"intercept":2},"G":{"coef":0.5,"intercept":2}}`
	testSalary = `{"kind":"linear","coef":[0,0,0.1,0.5],"intercept":-2,"impute":[0,0,0,0]}`
)

func writeInputs(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"league.json": testExport,
		"curves.csv":  testCurves,
		"models.json": testModels,
		"salary.json": testSalary,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &config.Config{
		ExportPath:         filepath.Join(dir, "league.json"),
		ReferenceSource:    config.SourceFiles,
		ProgressionPath:    filepath.Join(dir, "curves.csv"),
		PositionModelsPath: filepath.Join(dir, "models.json"),
		SalaryModelPath:    filepath.Join(dir, "salary.json"),
		SalaryDivisor:      1000,
	}
}

func TestLoadInputs_Files(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := writeInputs(t)
	in, err := LoadInputs(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("LoadInputs error: %v", err)
	}
	defer in.Close()
	if in.DB != nil {
		t.Error("file source should not open a database")
	}
	if in.Dataset.Season != 2025 || len(in.Dataset.Salaries) != 1 || in.Dataset.Salaries[0].Amount != 4 {
		t.Errorf("dataset = %+v", in.Dataset)
	}

	panel, _, err := Run(context.Background(), in.Artifacts, in.Dataset, DefaultOptions(), logger)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	rows, _ := panel.Player(1)
	if *rows[0].Value != 42 || *rows[1].Value != 42.5 || rows[2].Value != nil {
		t.Errorf("values = %v %v %v", rows[0].Value, rows[1].Value, rows[2].Value)
	}
}

func TestLoadInputs_Errors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := writeInputs(t)
	cfg.ExportPath = ""
	if _, err := LoadInputs(context.Background(), cfg, logger); err == nil {
		t.Error("missing export path should fail")
	}

	cfg = writeInputs(t)
	cfg.SalaryModelPath = filepath.Join(t.TempDir(), "missing.json")
	_, err := LoadInputs(context.Background(), cfg, logger)
	var loadErr *reference.LoadError
	if !errors.As(err, &loadErr) || loadErr.Artifact != reference.ArtifactSalaryModel {
		t.Errorf("error = %v, want salary model LoadError", err)
	}
}
