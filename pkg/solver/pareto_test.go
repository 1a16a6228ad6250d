package solver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

func sixScenarioRows() []Row {
	return []Row{
		NewRow("rawDCW_190C_1hr", 0.139794, 0.023153, 0.814466),
		NewRow("rawDCW_190C_3hr", 0.197610, 0.021523, 0.767980),
		NewRow("rawDCW_220C_1hr", 0.194290, 0.021611, 0.747878),
		NewRow("rawDCW_220C_3hr", 0.197328, 0.023462, 0.814756),
		NewRow("rawDCW_250C_1hr", 0.204882, 0.022759, 0.756450),
		NewRow("rawDCW_250C_3hr", 0.226768, 0.023965, 0.792650),
	}
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestDominates(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want bool
	}{
		{name: "Test case 1: Strictly better everywhere", a: []float64{1, 1}, b: []float64{2, 2}, want: true},
		{name: "Test case 2: Better in one, equal in other", a: []float64{1, 2}, b: []float64{2, 2}, want: true},
		{name: "Test case 3: Identical vectors", a: []float64{1, 2}, b: []float64{1, 2}, want: false},
		{name: "Test case 4: Trade-off", a: []float64{1, 3}, b: []float64{2, 2}, want: false},
		{name: "Test case 5: Worse everywhere", a: []float64{3, 3}, b: []float64{2, 2}, want: false},
		{name: "Test case 6: Length mismatch", a: []float64{1}, b: []float64{2, 2}, want: false},
		{name: "Test case 7: Empty vectors", a: []float64{}, b: []float64{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dominates(tt.a, tt.b); got != tt.want {
				t.Errorf("Dominates(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDominates_IrreflexiveOverScenarioRows(t *testing.T) {
	for _, row := range sixScenarioRows() {
		clone := append([]float64(nil), row.Objectives...)
		if Dominates(row.Objectives, row.Objectives) {
			t.Errorf("%s dominates itself", row.Name)
		}
		if Dominates(row.Objectives, clone) || Dominates(clone, row.Objectives) {
			t.Errorf("%s and its copy dominate each other", row.Name)
		}
	}
}

func TestFrontAndPartition_SixScenarios(t *testing.T) {
	rows := sixScenarioRows()

	front, err := Front(rows)
	if err != nil {
		t.Fatalf("Front() failed: %v", err)
	}
	nonDominated, dominated, err := Partition(rows)
	if err != nil {
		t.Fatalf("Partition() failed: %v", err)
	}

	wantFront := []string{"rawDCW_190C_1hr", "rawDCW_190C_3hr", "rawDCW_220C_1hr"}
	wantDominated := []string{"rawDCW_220C_3hr", "rawDCW_250C_1hr", "rawDCW_250C_3hr"}
	if diff := cmp.Diff(wantFront, names(front)); diff != "" {
		t.Errorf("Front() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(names(front), names(nonDominated)); diff != "" {
		t.Errorf("Front() and Partition() disagree (-front +partition):\n%s", diff)
	}
	if diff := cmp.Diff(wantDominated, names(dominated)); diff != "" {
		t.Errorf("Partition() dominated mismatch (-want +got):\n%s", diff)
	}

	for _, row := range nonDominated {
		for _, other := range rows {
			if Dominates(other.Objectives, row.Objectives) {
				t.Errorf("front row %s is dominated by %s", row.Name, other.Name)
			}
		}
	}
	for _, row := range dominated {
		found := false
		for _, other := range rows {
			if Dominates(other.Objectives, row.Objectives) {
				found = true
			}
		}
		if !found {
			t.Errorf("dominated row %s has no dominator", row.Name)
		}
	}
}

func TestFrontAndPartition_Consistency(t *testing.T) {
	// A grid with ties and duplicates.
	var rows []Row
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			rows = append(rows, NewRow("", float64(i), float64(3-j), float64((i+j)%3)))
		}
	}
	rows = append(rows, NewRow("dup", 0, 0, 0), NewRow("dup", 0, 0, 0))

	front, err := Front(rows)
	if err != nil {
		t.Fatalf("Front() failed: %v", err)
	}
	nonDominated, dominated, err := Partition(rows)
	if err != nil {
		t.Fatalf("Partition() failed: %v", err)
	}
	if diff := cmp.Diff(front, nonDominated); diff != "" {
		t.Errorf("Front() and Partition() disagree (-front +partition):\n%s", diff)
	}
	if len(nonDominated)+len(dominated) != len(rows) {
		t.Errorf("partition sizes %d+%d, want %d", len(nonDominated), len(dominated), len(rows))
	}
	dups := 0
	for _, r := range front {
		if r.Name == "dup" {
			dups++
		}
	}
	if dups != 2 {
		t.Errorf("identical rows kept on front = %d, want 2", dups)
	}
}

func TestFront_MismatchedObjectives(t *testing.T) {
	rows := []Row{NewRow("a", 1, 2), NewRow("b", 1)}
	if _, err := Front(rows); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("Front() error = %v, want ErrInvalidParameter", err)
	}
	if _, _, err := Partition(rows); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("Partition() error = %v, want ErrInvalidParameter", err)
	}
}

func TestFrontValues(t *testing.T) {
	got, err := FrontValues(sixScenarioRows())
	if err != nil {
		t.Fatalf("FrontValues() failed: %v", err)
	}
	if len(got) != 3 || got[0][0] != 0.139794 {
		t.Errorf("FrontValues() = %v", got)
	}
}
