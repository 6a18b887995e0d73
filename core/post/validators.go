package post

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/mbokela/shule/core"
)

var (
	postTypeTag  = "posttype"
	postTypeText = "invalid post type"

	endDateTag  = "enddate"
	endDateText = "end date cannot be before start date"
)

// RegisterValidators registers the post payload validators.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(postTypeTag, postTypeValidation)
	core.RegisterCustomTranslation(validate, translator, postTypeTag, postTypeText)

	validate.RegisterStructValidation(newPostStructValidation, NewPost{})
	validate.RegisterStructValidation(updatePostStructValidation, UpdatePost{})
	core.RegisterCustomTranslation(validate, translator, endDateTag, endDateText)
}

func postTypeValidation(fl validator.FieldLevel) bool {
	return Type(fl.Field().String()).Valid()
}

func newPostStructValidation(sl validator.StructLevel) {
	np := sl.Current().Interface().(NewPost)
	validateDateRange(sl, np.StartAt, np.EndAt)
}

func updatePostStructValidation(sl validator.StructLevel) {
	up := sl.Current().Interface().(UpdatePost)
	if up.StartAt.IsZero() {
		return // end alone cannot be checked; the service merges with the original
	}
	validateDateRange(sl, up.StartAt, up.EndAt)
}

// validateDateRange rejects inverted ranges at ingestion. Already-stored
// inverted ranges (legacy rows) still flow through the pure calendar
// functions untouched.
func validateDateRange(sl validator.StructLevel, start, end time.Time) {
	if !end.IsZero() && end.Before(start) {
		sl.ReportError(end, "end_at", "EndAt", endDateTag, "")
	}
}
