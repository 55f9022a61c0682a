package transfer

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Field names reported in ValidationError.
const (
	FieldPlayer        = "player"
	FieldDestination   = "destination_club_id"
	FieldReleaseClause = "release_clause"
	FieldStart         = "contract_start"
	FieldEnd           = "contract_end"
)

type submission struct {
	PlayerID      int       `json:"player" validate:"gt=0"`
	CurrentClubID int       `json:"current_club_id"`
	DestinationID int       `json:"destination_club_id" validate:"gt=0,nefield=CurrentClubID"`
	ReleaseClause int64     `json:"release_clause" validate:"gt=0"`
	Start         time.Time `json:"contract_start" validate:"required"`
	End           time.Time `json:"contract_end" validate:"required,gtefield=Start"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateSubmission(v *validator.Validate, s submission) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		if fe.Field() == FieldPlayer || fe.Field() == FieldDestination {
			return "must be selected"
		}
		return "must be greater than zero"
	case "nefield":
		return "must differ from the player's current club"
	case "gtefield":
		return "must not be before the contract start"
	case "required":
		return "is required"
	default:
		return "is invalid"
	}
}
