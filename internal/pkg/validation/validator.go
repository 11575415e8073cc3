package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const LocationBody = "body"

// FieldError is the wire shape of a single failed check.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

func Required(param, msg string) FieldError {
	return FieldError{Msg: msg, Param: param, Location: LocationBody}
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
	})
	return validate
}

// Struct validates s using its `validate` tags. The message of a failing
// field comes from its `msg` tag.
func Struct(s any) []FieldError {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Msg: err.Error(), Location: LocationBody}}
	}

	t := reflect.Indirect(reflect.ValueOf(s)).Type()
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if m := f.Tag.Get("msg"); m != "" {
				msg = m
			}
		}
		out = append(out, FieldError{Msg: msg, Param: fe.Field(), Location: LocationBody})
	}
	return out
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
