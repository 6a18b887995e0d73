package student

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/mbokela/shule/core"
)

var (
	genderTag  = "gender"
	genderText = "invalid gender"

	departureTag  = "departure"
	departureText = "departure date cannot be before arrival date"

	dossierTag  = "dossier"
	dossierText = "a dossier number is required past the lead stage"

	depositTag  = "deposit"
	depositText = "deposit and pre-registration flags are inconsistent"
)

// RegisterValidators registers the student payload validators.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(genderTag, genderValidation)
	core.RegisterCustomTranslation(validate, translator, genderTag, genderText)

	validate.RegisterStructValidation(newStudentStructValidation, NewStudent{})
	validate.RegisterStructValidation(updateStudentStructValidation, UpdateStudent{})
	core.RegisterCustomTranslation(validate, translator, departureTag, departureText)
	core.RegisterCustomTranslation(validate, translator, dossierTag, dossierText)
	core.RegisterCustomTranslation(validate, translator, depositTag, depositText)
}

func genderValidation(fl validator.FieldLevel) bool {
	return Gender(fl.Field().String()).Valid()
}

func newStudentStructValidation(sl validator.StructLevel) {
	ns := sl.Current().Interface().(NewStudent)

	if !ns.DepartureDate.IsZero() && !ns.ArrivalDate.IsZero() && ns.DepartureDate.Before(ns.ArrivalDate) {
		sl.ReportError(ns.DepartureDate, "departure_date", "DepartureDate", departureTag, "")
	}

	// past the lead stage a record must carry its dossier number
	if (ns.PaidTotal || ns.PreRegistration) && ns.DossierNumber == "" {
		sl.ReportError(ns.DossierNumber, "dossier_number", "DossierNumber", dossierTag, "")
	}

	// the 150€ deposit belongs to the pre-registration step
	switch {
	case ns.Paid150 && !ns.PreRegistration:
		sl.ReportError(ns.Paid150, "paid_150", "Paid150", depositTag, "")
	case ns.PreRegistration && ns.PaidTotal && !ns.Paid150:
		sl.ReportError(ns.Paid150, "paid_150", "Paid150", depositTag, "")
	case ns.PreRegistration && !ns.Paid150 && !ns.PaidTotal:
		sl.ReportError(ns.Paid150, "paid_150", "Paid150", depositTag, "")
	}
}

func updateStudentStructValidation(sl validator.StructLevel) {
	us := sl.Current().Interface().(UpdateStudent)

	// the window can only be checked when both bounds travel together;
	// the service re-validates after merging with the stored record
	if !us.ArrivalDate.IsZero() && !us.DepartureDate.IsZero() && us.DepartureDate.Before(us.ArrivalDate) {
		sl.ReportError(us.DepartureDate, "departure_date", "DepartureDate", departureTag, "")
	}
}
