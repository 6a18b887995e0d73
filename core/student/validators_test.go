package student

import (
	"testing"
	"time"

	"github.com/mbokela/shule/core"
)

func TestNewStudentValidation(t *testing.T) {
	validate, translator := core.NewValidators()
	RegisterValidators(validate, translator)

	tests := []struct {
		name    string
		ns      NewStudent
		wantErr bool
	}{
		{
			name: "lead with names only",
			ns:   NewStudent{FirstName: "Ana", LastName: "Silva"},
		},
		{
			name: "full pre-registration",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva", Gender: GenderFemale,
				ArrivalDate: date(2024, time.January, 8), DepartureDate: date(2024, time.June, 28),
				PreRegistration: true, Paid150: true, DossierNumber: "D-001",
			},
		},
		{
			name: "enrolled",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva",
				PreRegistration: true, Paid150: true, PaidTotal: true, DossierNumber: "D-001",
			},
		},
		{
			name:    "missing names",
			ns:      NewStudent{},
			wantErr: true,
		},
		{
			name: "unknown gender",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva", Gender: "Z",
			},
			wantErr: true,
		},
		{
			name: "inverted stay",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva",
				ArrivalDate: date(2024, time.June, 28), DepartureDate: date(2024, time.January, 8),
			},
			wantErr: true,
		},
		{
			name: "pre-registration without dossier",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva",
				PreRegistration: true, Paid150: true,
			},
			wantErr: true,
		},
		{
			name: "deposit without pre-registration",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva", Paid150: true,
			},
			wantErr: true,
		},
		{
			name: "paid total without deposit",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva",
				PreRegistration: true, PaidTotal: true, DossierNumber: "D-001",
			},
			wantErr: true,
		},
		{
			name: "pre-registration without any payment",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva",
				PreRegistration: true, DossierNumber: "D-001",
			},
			wantErr: true,
		},
		{
			name: "bad family email",
			ns: NewStudent{
				FirstName: "Ana", LastName: "Silva", FamilyEmail: "not-an-email",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ns.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateStudentValidation(t *testing.T) {
	validate, translator := core.NewValidators()
	RegisterValidators(validate, translator)

	tests := []struct {
		name    string
		us      UpdateStudent
		wantErr bool
	}{
		{
			name: "empty update is fine",
			us:   UpdateStudent{},
		},
		{
			name: "names only",
			us:   UpdateStudent{FirstName: "Ana"},
		},
		{
			// the service re-validates after merging with the stored record
			name: "departure alone passes",
			us:   UpdateStudent{DepartureDate: date(2024, time.June, 28)},
		},
		{
			name: "inverted stay when both bounds travel",
			us: UpdateStudent{
				ArrivalDate: date(2024, time.June, 28), DepartureDate: date(2024, time.January, 8),
			},
			wantErr: true,
		},
		{
			name:    "unknown gender",
			us:      UpdateStudent{Gender: "Z"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.us.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
