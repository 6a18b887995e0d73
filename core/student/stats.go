package student

import (
	"sort"
	"strings"
	"time"
)

// topBirthPlaces caps the birth place ranking; the remainder folds into
// an "Autres" bucket.
const topBirthPlaces = 8

// chart palette
const (
	colorEmerald = "#10B981"
	colorAmber   = "#F59E0B"
	colorSlate   = "#64748B"
	colorSky     = "#38BDF8"
	colorRose    = "#FB7185"
	colorViolet  = "#A78BFA"
	colorNeutral = "#CBD5F5"
)

var monthLabels = [12]string{"Jan", "Fev", "Mar", "Avr", "Mai", "Jun", "Jul", "Aou", "Sep", "Oct", "Nov", "Dec"}

var ageBucketLabels = [4]string{"<20", "20-30", "30-50", "50+"}

type (
	// ColorDatum is one pie chart slice.
	ColorDatum struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
		Color string `json:"color"`
	}

	// LabelDatum is one bar of a labelled bar chart.
	LabelDatum struct {
		Label string `json:"label"`
		Value int    `json:"value"`
	}

	// AgeGenderRow is one age bucket split by gender. ND counts rows
	// with no gender on record.
	AgeGenderRow struct {
		Label string `json:"label"`
		M     int    `json:"M"`
		F     int    `json:"F"`
		X     int    `json:"X"`
		ND    int    `json:"ND"`
	}

	ArrivalCount struct {
		Month string `json:"month"`
		Value int    `json:"value"`
	}

	Totals struct {
		Total    int `json:"total"`
		Enrolled int `json:"enrolled"`
		Pre      int `json:"pre"`
		Lead     int `json:"lead"`
		Left     int `json:"left"`
	}

	// Stats is the roster dashboard rollup.
	Stats struct {
		Totals Totals `json:"totals"`

		// nil when no student carries a complete stay window
		AvgStayDays *float64 `json:"avg_stay_days"`
		// average stay as a percentage of the season; nil without a
		// season length
		AvgStayPercent *float64 `json:"avg_stay_percent"`

		StatusData         []ColorDatum   `json:"status_data"`
		GenderData         []ColorDatum   `json:"gender_data"`
		AuPairData         []ColorDatum   `json:"au_pair_data"`
		EnrolledPreRegData []ColorDatum   `json:"enrolled_pre_reg_data"`
		ClassData          []LabelDatum   `json:"class_data"`
		BirthPlaceData     []LabelDatum   `json:"birth_place_data"`
		AgeBuckets         []LabelDatum   `json:"age_buckets"`
		AgeGenderData      []AgeGenderRow `json:"age_gender_data"`
		Arrivals           []ArrivalCount `json:"arrivals"`
	}
)

// BuildStats rolls a roster snapshot up into the dashboard statistics.
// today anchors the age computation; seasonDays (0 when unknown) scales
// the average stay into a percentage.
func BuildStats(students []Student, today time.Time, seasonDays int) Stats {
	var totals Totals
	var genderM, genderF, genderX, genderND int
	var auPairYes, auPairNo, auPairND int
	var enrolledPreYes, enrolledPreNo int
	classCounts := make(map[string]int)
	birthPlaceCounts := make(map[string]int)
	ageBuckets := make([]LabelDatum, len(ageBucketLabels))
	ageGender := make([]AgeGenderRow, len(ageBucketLabels))
	for i, label := range ageBucketLabels {
		ageBuckets[i].Label = label
		ageGender[i].Label = label
	}
	arrivals := make([]ArrivalCount, 12)
	for i := range arrivals {
		arrivals[i].Month = monthLabels[i]
	}
	var stayTotalDays, stayCount int

	totals.Total = len(students)
	for i := range students {
		s := &students[i]

		switch s.Kind() {
		case KindEnrolled:
			totals.Enrolled++
			if s.PreRegistration {
				enrolledPreYes++
			} else {
				enrolledPreNo++
			}
		case KindPreRegistered:
			totals.Pre++
		case KindLead:
			totals.Lead++
		case KindLeft:
			totals.Left++
		}

		switch s.Gender {
		case GenderMale:
			genderM++
		case GenderFemale:
			genderF++
		case GenderOther:
			genderX++
		default:
			genderND++
		}

		switch {
		case s.IsAuPair == nil:
			auPairND++
		case *s.IsAuPair:
			auPairYes++
		default:
			auPairNo++
		}

		for _, class := range []string{s.ClassS1, s.ClassS2} {
			if class = strings.ToUpper(strings.TrimSpace(class)); class != "" {
				classCounts[class]++
			}
		}

		if place := strings.TrimSpace(s.BirthPlace); place != "" {
			birthPlaceCounts[place]++
		}

		if age, ok := s.Age(today); ok {
			idx := ageBucketIndex(age)
			ageBuckets[idx].Value++
			switch s.Gender {
			case GenderMale:
				ageGender[idx].M++
			case GenderFemale:
				ageGender[idx].F++
			case GenderOther:
				ageGender[idx].X++
			default:
				ageGender[idx].ND++
			}
		}

		if !s.ArrivalDate.IsZero() {
			arrivals[s.ArrivalDate.Month()-1].Value++
		}

		if days, ok := s.StayDays(); ok {
			stayTotalDays += days
			stayCount++
		}
	}

	stats := Stats{
		Totals:        totals,
		ClassData:     sortedCounts(classCounts),
		AgeBuckets:    ageBuckets,
		AgeGenderData: ageGender,
		Arrivals:      arrivals,
	}

	birthPlaces := sortedCounts(birthPlaceCounts)
	if len(birthPlaces) > topBirthPlaces {
		var rest int
		for _, place := range birthPlaces[topBirthPlaces:] {
			rest += place.Value
		}
		birthPlaces = append(birthPlaces[:topBirthPlaces], LabelDatum{Label: "Autres", Value: rest})
	}
	stats.BirthPlaceData = birthPlaces

	if stayCount > 0 {
		avg := float64(stayTotalDays) / float64(stayCount)
		stats.AvgStayDays = &avg
		if seasonDays > 0 {
			pct := avg / float64(seasonDays) * 100
			stats.AvgStayPercent = &pct
		}
	}

	stats.StatusData = withColors([]ColorDatum{
		{Name: "Inscrits", Value: totals.Enrolled, Color: colorEmerald},
		{Name: "Pre-inscrits", Value: totals.Pre, Color: colorAmber},
		{Name: "Leads", Value: totals.Lead, Color: colorSky},
		{Name: "Sortis", Value: totals.Left, Color: colorRose},
	})
	stats.GenderData = withColors([]ColorDatum{
		{Name: "Homme", Value: genderM, Color: colorAmber},
		{Name: "Femme", Value: genderF, Color: colorSky},
		{Name: "X", Value: genderX, Color: colorViolet},
		{Name: "ND", Value: genderND, Color: colorNeutral},
	})
	stats.AuPairData = withColors([]ColorDatum{
		{Name: "Au pair", Value: auPairYes, Color: colorSky},
		{Name: "Non au pair", Value: auPairNo, Color: colorSlate},
		{Name: "ND", Value: auPairND, Color: colorNeutral},
	})
	stats.EnrolledPreRegData = withColors([]ColorDatum{
		{Name: "Avec pré-inscription", Value: enrolledPreYes, Color: colorEmerald},
		{Name: "Sans pré-inscription", Value: enrolledPreNo, Color: colorSlate},
	})

	return stats
}

// ageBucketIndex maps an age to its bucket. 20 still counts as "<20";
// the upper bounds are inclusive.
func ageBucketIndex(age int) int {
	switch {
	case age <= 20:
		return 0
	case age <= 30:
		return 1
	case age <= 50:
		return 2
	}
	return 3
}

// withColors drops the empty slices so pie charts only show what exists.
func withColors(data []ColorDatum) []ColorDatum {
	filtered := make([]ColorDatum, 0, len(data))
	for _, d := range data {
		if d.Value > 0 {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func sortedCounts(counts map[string]int) []LabelDatum {
	data := make([]LabelDatum, 0, len(counts))
	for label, value := range counts {
		data = append(data, LabelDatum{Label: label, Value: value})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Value != data[j].Value {
			return data[i].Value > data[j].Value
		}
		return data[i].Label < data[j].Label
	})
	return data
}
