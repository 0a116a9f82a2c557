package series

import (
	"errors"
	"math"
	"testing"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

func TestCombine_Sum(t *testing.T) {
	a := mkSeries("A", "2023-01-01", 1.0, "2023-01-02", 2.0)
	b := mkSeries("B", "2023-01-01", 10.0, "2023-01-02", 20.0, "2023-01-03", 30.0)

	dates, err := IntersectDates(a, b)
	if err != nil {
		t.Fatal(err)
	}

	got := Combine("Sum", []models.NamedSeries{a, b}, dates, Sum)

	want := []models.Point{
		{Date: "2023-01-01", Value: 11},
		{Date: "2023-01-02", Value: 22},
	}
	if len(got.Points) != len(want) {
		t.Fatalf("Combine returned %d points, want %d", len(got.Points), len(want))
	}
	for i := range want {
		if got.Points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got.Points[i], want[i])
		}
	}
	if got.Name != "Sum" || len(got.Members) != 2 || got.Members[0] != "A" {
		t.Errorf("composite metadata = %q %v", got.Name, got.Members)
	}
}

func TestCombine_CombinerMayRetainValues(t *testing.T) {
	a := mkSeries("A", "2023-01-01", 1.0, "2023-01-02", 2.0)
	b := mkSeries("B", "2023-01-01", 10.0, "2023-01-02", 20.0)
	dates, err := IntersectDates(a, b)
	if err != nil {
		t.Fatal(err)
	}

	var seen [][]float64
	keep := func(values []float64) float64 {
		seen = append(seen, values)
		return Sum(values)
	}
	Combine("Sum", []models.NamedSeries{a, b}, dates, keep)

	if len(seen) != 2 {
		t.Fatalf("combiner called %d times, want 2", len(seen))
	}
	if seen[0][0] != 1 || seen[0][1] != 10 {
		t.Errorf("first date values changed to %v", seen[0])
	}
	if seen[1][0] != 2 || seen[1][1] != 20 {
		t.Errorf("second date values = %v", seen[1])
	}
}

func TestCombine_DropsNonFinite(t *testing.T) {
	a := mkSeries("A", "2023-01-01", 1.0, "2023-01-02", math.NaN(), "2023-01-03", 3.0)
	b := mkSeries("B", "2023-01-01", 1.0, "2023-01-02", 1.0, "2023-01-03", math.Inf(1))

	dates, err := IntersectDates(a, b)
	if err != nil {
		t.Fatal(err)
	}
	got := Combine("Sum", []models.NamedSeries{a, b}, dates, Sum)

	if len(got.Points) != 1 {
		t.Fatalf("Combine returned %d points, want 1: %+v", len(got.Points), got.Points)
	}
	if got.Points[0].Date != "2023-01-01" || got.Points[0].Value != 2 {
		t.Errorf("point = %+v", got.Points[0])
	}
	if len(got.Points) > len(dates) {
		t.Error("composite longer than aligned axis")
	}
}

func TestCombine_MissingMemberDropsPoint(t *testing.T) {
	first := mkSeries("First", "2023-01-01", 1.0, "2023-01-02", 2.0, "2023-01-03", 3.0)
	second := mkSeries("Second", "2023-01-01", 1.0, "2023-01-03", 1.0)

	// trust-first axis contains a date the second member lacks
	got := Combine("Sum", []models.NamedSeries{first, second}, first.Dates(), Sum)

	if len(got.Points) != 2 {
		t.Fatalf("Combine returned %d points, want 2", len(got.Points))
	}
	for _, p := range got.Points {
		if p.Date == "2023-01-02" {
			t.Error("date missing from a member should be dropped")
		}
	}
}

func TestCombine_FollowsAxisOrder(t *testing.T) {
	a := mkSeries("A", "2023-01-01", 1.0, "2023-01-02", 2.0)
	b := mkSeries("B", "2023-01-01", 1.0, "2023-01-02", 2.0)

	got := Combine("Sum", []models.NamedSeries{a, b}, []models.CalendarDate{"2023-01-02", "2023-01-01"}, Sum)
	if len(got.Points) != 2 || got.Points[0].Date != "2023-01-02" {
		t.Errorf("points = %+v, want axis order", got.Points)
	}
}

func TestFilterFinite(t *testing.T) {
	in := []models.Point{
		{Date: "2023-01-01", Value: 1},
		{Date: "2023-01-02", Value: math.NaN()},
		{Date: "2023-01-03", Value: math.Inf(-1)},
		{Date: "2023-01-04", Value: 0},
	}
	got := FilterFinite(in)
	if len(got) != 2 || got[0].Date != "2023-01-01" || got[1].Date != "2023-01-04" {
		t.Errorf("FilterFinite = %+v", got)
	}
	if len(in) != 4 {
		t.Error("input was modified")
	}
}

func TestCombine_Linear(t *testing.T) {
	a := mkSeries("A", "2023-01-01", 1200.5, "2023-01-02", 987654.25, "2023-01-03", 3.0)
	b := mkSeries("B", "2023-01-01", 17.0, "2023-01-02", 42.42, "2023-01-03", 1e9)
	members := []models.NamedSeries{a, b}

	dates, err := IntersectDates(a, b)
	if err != nil {
		t.Fatal(err)
	}

	for _, factor := range []float64{
		SelectFactor(false, false),
		SelectFactor(true, true),
		0.5,
		3,
	} {
		scaledThenCombined := Combine("S", []models.NamedSeries{Scale(a, factor), Scale(b, factor)}, dates, Sum)
		combinedThenScaled := Scale(Combine("S", members, dates, Sum).AsNamed(), factor)

		if len(scaledThenCombined.Points) != len(combinedThenScaled.Points) {
			t.Fatalf("factor %g: lengths differ", factor)
		}
		for i, p := range scaledThenCombined.Points {
			q := combinedThenScaled.Points[i]
			if p.Date != q.Date {
				t.Errorf("factor %g: date %s != %s", factor, p.Date, q.Date)
			}
			if diff := math.Abs(p.Value - q.Value); diff > 1e-12*math.Abs(q.Value) {
				t.Errorf("factor %g on %s: %g != %g", factor, p.Date, p.Value, q.Value)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	index := map[string]models.NamedSeries{
		"A": mkSeries("A", "2023-01-01", 1.0),
		"B": mkSeries("B", "2023-01-01", 2.0),
	}

	got, err := Lookup(index, "B", "A")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "B" || got[1].Name != "A" {
		t.Errorf("Lookup = %+v", got)
	}

	_, err = Lookup(index, "A", "Missing")
	if !errors.Is(err, ErrUnknownSeries) {
		t.Fatalf("Lookup error = %v, want ErrUnknownSeries", err)
	}
	var unknown *UnknownSeriesError
	if !errors.As(err, &unknown) || unknown.Name != "Missing" {
		t.Errorf("Lookup error = %#v, want name Missing", err)
	}
}

func TestAggregate(t *testing.T) {
	index := map[string]models.NamedSeries{
		"A": mkSeries("A", "2023-01-01", 1.0, "2023-01-02", 2.0, "2023-01-03", 3.0),
		"B": mkSeries("B", "2023-01-02", 10.0, "2023-01-03", 20.0),
	}

	tests := []struct {
		name        string
		members     []string
		mode        models.AlignMode
		validate    bool
		wantErr     error
		wantPoints  int
		wantAligned int
	}{
		{"Strict", []string{"A", "B"}, models.AlignStrict, true, nil, 2, 2},
		{"TrustFirstUnchecked", []string{"A", "B"}, models.AlignTrustFirst, false, nil, 2, 3},
		{"TrustFirstChecked", []string{"A", "B"}, models.AlignTrustFirst, true, ErrAxisMismatch, 0, 3},
		{"TrustFirstCovered", []string{"B", "A"}, models.AlignTrustFirst, true, nil, 2, 2},
		{"Unknown", []string{"A", "Z"}, models.AlignStrict, true, ErrUnknownSeries, 0, 0},
		{"Single", []string{"A"}, models.AlignStrict, true, ErrTooFewSeries, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, aligned, err := Aggregate("Total", index, tt.members, tt.mode, tt.validate)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Aggregate error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Aggregate failed: %v", err)
			}
			if len(got.Points) != tt.wantPoints {
				t.Errorf("points = %d, want %d", len(got.Points), tt.wantPoints)
			}
			if aligned != tt.wantAligned {
				t.Errorf("aligned = %d, want %d", aligned, tt.wantAligned)
			}
			if got.Name != "Total" {
				t.Errorf("name = %q", got.Name)
			}
		})
	}
}
