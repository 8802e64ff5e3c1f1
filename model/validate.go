package model

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Constraints live in struct
// tags on the model types and run once at construction time; instances
// are immutable afterwards so no re-validation is needed.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkModel runs tag validation over a freshly built model, mapping the
// first failure to a ValidationError carrying the offending field path.
func checkModel(m any) error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Path: fe.Namespace(), Msg: "failed " + fe.Tag() + " constraint"}
	}
	return err
}
