package automation

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
)

const scenarioYAML = `name: smoke
description: two short runs
steps:
  - name: elastic
    bodies: 5
    seed: 7
    params:
      duration: 0.25
  - preset: inelastic
    seed: 7
    params:
      duration: 0.25
      restitution: 0.5
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 2 {
		t.Fatalf("got %+v", sc)
	}
	if sc.Steps[1].Params["restitution"] != 0.5 {
		t.Errorf("restitution param = %v", sc.Steps[1].Params["restitution"])
	}
}

func TestLoadScenarioBadYAML(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "steps: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	out, err := RunScenario(context.Background(), sc, &log)
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(out))
	}
	if out[0].Label != "elastic" || out[1].Label != "step-2" {
		t.Errorf("labels = %q, %q", out[0].Label, out[1].Label)
	}
	for _, o := range out {
		if o.Steps != 15 {
			t.Errorf("%s: steps = %d, want 15", o.Label, o.Steps)
		}
		if _, ok := o.Metrics["energy_drift"]; !ok {
			t.Errorf("%s: missing energy_drift metric in %v", o.Label, o.Metrics)
		}
	}
	if !strings.Contains(log.String(), "Running step 2/2") {
		t.Errorf("progress log = %q", log.String())
	}
}

func TestRunScenarioUnknownParam(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Params: map[string]float64{"warp": 1}}}}
	if _, err := RunScenario(context.Background(), sc, &bytes.Buffer{}); err == nil {
		t.Error("expected unknown parameter error")
	}
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Preset: "nope"}}}
	_, err := RunScenario(context.Background(), sc, &bytes.Buffer{})
	if !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Particles.Count = 6
	base.Particles.Seed = 3
	base.Timing.Duration = 0.2

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      base,
		ParamName: "restitution",
		ParamMin:  0,
		ParamMax:  1,
		NumSteps:  3,
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}

	want := []float64{0, 0.5, 1}
	if len(results) != len(want) {
		t.Fatalf("results = %d, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r.ParamValue != want[i] {
			t.Errorf("value %d = %v, want %v", i, r.ParamValue, want[i])
		}
	}
	if base.Physics.Restitution != config.DefaultRestitution {
		t.Error("sweep must not modify the base config")
	}
}

func TestRunSweepValidation(t *testing.T) {
	if _, err := RunSweep(context.Background(), &ParameterSweep{ParamName: "g", NumSteps: 0}, &bytes.Buffer{}); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("err = %v, want ErrParameterBounds", err)
	}
	if _, err := RunSweep(context.Background(), &ParameterSweep{ParamName: "warp", NumSteps: 2}, &bytes.Buffer{}); err == nil {
		t.Error("expected unknown parameter error")
	}
	_, err := RunSweep(context.Background(), &ParameterSweep{ParamName: "restitution", ParamMin: 0, ParamMax: 2, NumSteps: 2}, &bytes.Buffer{})
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("err = %v, want ErrParameterBounds for restitution 2", err)
	}
}
