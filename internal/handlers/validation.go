package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"campaignhub/internal/models"
	"campaignhub/internal/services"
)

var (
	phonePattern = regexp.MustCompile(`^01[0-9]-?[0-9]{4}-?[0-9]{4}$`)
	biznoPattern = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{5}$`)
)

// NewValidator returns a validator that reports fields by their JSON names
// and knows the phone, ymd and bizno tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bizno", func(fl validator.FieldLevel) bool {
		return biznoPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.DateLayout, fl.Field().String())
		return err == nil
	})
	return v
}

// decodeAndValidate reads a JSON body into dst and validates it, writing
// the 400 response itself when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, code string, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, services.CodeInvalidRequest, "Invalid request body", nil)
		return false
	}
	if err := v.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, code, "Validation failed", fieldErrors(err))
		return false
	}
	return true
}

func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		out[field] = tag
	}
	return out
}
