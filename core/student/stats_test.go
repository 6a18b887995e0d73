package student

import (
	"fmt"
	"testing"
)

func TestBuildStatsEmpty(t *testing.T) {
	stats := BuildStats(nil, date(2024, 5, 6), 0)

	if stats.Totals != (Totals{}) {
		t.Errorf("Totals = %+v, want zero", stats.Totals)
	}
	if stats.AvgStayDays != nil || stats.AvgStayPercent != nil {
		t.Error("average stay should be nil without any stay window")
	}
	if len(stats.StatusData) != 0 || len(stats.GenderData) != 0 {
		t.Error("pie charts should drop empty slices")
	}
	if len(stats.AgeBuckets) != 4 || len(stats.AgeGenderData) != 4 {
		t.Errorf("age charts = %d/%d buckets, want 4/4", len(stats.AgeBuckets), len(stats.AgeGenderData))
	}
	if len(stats.Arrivals) != 12 {
		t.Errorf("Arrivals len = %d, want 12", len(stats.Arrivals))
	}
}

func TestBuildStats(t *testing.T) {
	today := date(2024, 5, 6)
	roster := []Student{
		{FirstName: "Ana", Gender: GenderFemale, BirthDate: date(2004, 6, 1), BirthPlace: "Lisbonne",
			ArrivalDate: date(2024, 1, 8), DepartureDate: date(2024, 1, 18),
			PaidTotal: true, PreRegistration: true, Paid150: true, IsAuPair: boolPtr(true), ClassS1: "a1"},
		{FirstName: "Ben", Gender: GenderMale, BirthDate: date(1998, 2, 1), BirthPlace: "Lagos",
			ArrivalDate: date(2024, 2, 5), DepartureDate: date(2024, 2, 25),
			PaidTotal: true, IsAuPair: boolPtr(false), ClassS1: "A1", ClassS2: "B1"},
		{FirstName: "Chiara", BirthDate: date(1970, 1, 1), BirthPlace: "Rome",
			PreRegistration: true, Paid150: true, DossierNumber: "D-003"},
		{FirstName: "Dan", LeftEarly: true},
	}

	stats := BuildStats(roster, today, 172)

	want := Totals{Total: 4, Enrolled: 2, Pre: 1, Left: 1}
	if stats.Totals != want {
		t.Errorf("Totals = %+v, want %+v", stats.Totals, want)
	}

	// two enrolled, one of which went through pre-registration
	assertSlices(t, "EnrolledPreRegData", stats.EnrolledPreRegData, map[string]int{
		"Avec pré-inscription": 1, "Sans pré-inscription": 1,
	})
	assertSlices(t, "GenderData", stats.GenderData, map[string]int{"Homme": 1, "Femme": 1, "ND": 2})
	assertSlices(t, "AuPairData", stats.AuPairData, map[string]int{"Au pair": 1, "Non au pair": 1, "ND": 2})
	assertSlices(t, "StatusData", stats.StatusData, map[string]int{"Inscrits": 2, "Pre-inscrits": 1, "Sortis": 1})

	// class codes are case-folded; counts sorted descending
	if len(stats.ClassData) != 2 || stats.ClassData[0] != (LabelDatum{Label: "A1", Value: 2}) {
		t.Errorf("ClassData = %v", stats.ClassData)
	}

	// ages as of 2024-05-06: Ana 19 (<20), Ben 26 (20-30), Chiara 54 (50+)
	if stats.AgeBuckets[0].Value != 1 || stats.AgeBuckets[1].Value != 1 || stats.AgeBuckets[3].Value != 1 {
		t.Errorf("AgeBuckets = %v", stats.AgeBuckets)
	}
	if stats.AgeGenderData[0].F != 1 || stats.AgeGenderData[1].M != 1 || stats.AgeGenderData[3].ND != 1 {
		t.Errorf("AgeGenderData = %v", stats.AgeGenderData)
	}

	if stats.Arrivals[0].Value != 1 || stats.Arrivals[1].Value != 1 {
		t.Errorf("Arrivals = %v", stats.Arrivals)
	}

	// stays of 10 and 20 days average to 15, which is 15/172 of the season
	if stats.AvgStayDays == nil || *stats.AvgStayDays != 15 {
		t.Fatalf("AvgStayDays = %v, want 15", stats.AvgStayDays)
	}
	if stats.AvgStayPercent == nil {
		t.Fatal("AvgStayPercent = nil, want a value")
	}
	if got := fmt.Sprintf("%.2f", *stats.AvgStayPercent); got != "8.72" {
		t.Errorf("AvgStayPercent = %s, want 8.72", got)
	}
}

func TestBuildStatsBirthPlaceRanking(t *testing.T) {
	var roster []Student
	for i := 0; i < 10; i++ {
		// "P00".."P09" each once, plus a dominant place
		roster = append(roster,
			Student{BirthPlace: fmt.Sprintf("P%02d", i)},
			Student{BirthPlace: "Paris"},
		)
	}

	stats := BuildStats(roster, date(2024, 5, 6), 0)

	if len(stats.BirthPlaceData) != topBirthPlaces+1 {
		t.Fatalf("BirthPlaceData len = %d, want %d", len(stats.BirthPlaceData), topBirthPlaces+1)
	}
	if stats.BirthPlaceData[0] != (LabelDatum{Label: "Paris", Value: 10}) {
		t.Errorf("BirthPlaceData[0] = %+v, want Paris 10", stats.BirthPlaceData[0])
	}
	last := stats.BirthPlaceData[len(stats.BirthPlaceData)-1]
	if last.Label != "Autres" || last.Value != 3 {
		t.Errorf("overflow bucket = %+v, want Autres 3", last)
	}
}

func TestAgeBucketIndex(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{age: 15, want: 0},
		{age: 20, want: 0}, // 20 still counts as "<20"
		{age: 21, want: 1},
		{age: 30, want: 1},
		{age: 31, want: 2},
		{age: 50, want: 2},
		{age: 51, want: 3},
	}
	for _, tt := range tests {
		if got := ageBucketIndex(tt.age); got != tt.want {
			t.Errorf("ageBucketIndex(%d) = %d, want %d", tt.age, got, tt.want)
		}
	}
}

func assertSlices(t *testing.T, name string, got []ColorDatum, want map[string]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
		return
	}
	for _, d := range got {
		if want[d.Name] != d.Value {
			t.Errorf("%s[%s] = %d, want %d", name, d.Name, d.Value, want[d.Name])
		}
		if d.Color == "" {
			t.Errorf("%s[%s] has no color", name, d.Name)
		}
	}
}
