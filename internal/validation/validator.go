// Package validation holds the form schemas for registrations, admin auth and the contact form.
// Forms are plain structs validated with go-playground/validator tags. Inputs are trimmed first and
// failures come back as field -> message using the form's JSON field names.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tournamentpro/backend/pkg/apperror"
)

var (
	personNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	digitsRe     = regexp.MustCompile(`^\d+$`)
	inMobileRe   = regexp.MustCompile(`^[6-9]\d{9}$`)
	teamNameRe   = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Engine returns the shared validator with the custom tags registered.
func Engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonName)
		mustRegister(v, "personname", personNameRe)
		mustRegister(v, "digits", digitsRe)
		mustRegister(v, "inmobile", inMobileRe)
		mustRegister(v, "teamname", teamNameRe)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// FieldErrors maps a JSON field name to the first failing rule's message.
type FieldErrors map[string]string

// Err converts non-empty FieldErrors to a validation apperror.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return apperror.Validation(fe)
}

// Struct trims every string field of form (a pointer to a struct) and validates it.
// It returns nil when the form is valid.
func Struct(form interface{}) FieldErrors {
	Trim(form)
	err := Engine().Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": err.Error()}
	}
	kinds := messageKinds(reflect.TypeOf(form))
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = messageFor(kinds[fe.Field()], fe)
	}
	return out
}

// Trim strips leading and trailing whitespace from every string field, following embedded structs.
// Fields tagged trim:"false" are left alone.
func Trim(form interface{}) {
	v := reflect.ValueOf(form)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	trimValue(v.Elem())
}

func trimValue(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !f.CanSet() || t.Field(i).Tag.Get("trim") == "false" {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Struct:
			trimValue(f)
		}
	}
}

// messageKinds maps JSON field name -> msg tag for a form type, following embedded structs.
func messageKinds(t reflect.Type) map[string]string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			for k, v := range messageKinds(f.Type) {
				out[k] = v
			}
			continue
		}
		if name := jsonName(f); name != "" {
			out[name] = f.Tag.Get("msg")
		}
	}
	return out
}

var messages = map[string]map[string]string{
	"name": {
		"min":        "Name must be at least 3 characters",
		"max":        "Name must be less than 50 characters",
		"personname": "Name should only contain letters",
	},
	"gameid": {
		"min":    "Game ID must be at least 5 characters",
		"max":    "Game ID must be less than 20 characters",
		"digits": "Game ID must contain only numbers",
	},
	"whatsapp": {
		"*": "Please enter valid 10-digit Indian mobile number",
	},
	"txn": {
		"min": "Transaction ID must be at least 8 characters",
		"max": "Transaction ID must be less than 50 characters",
	},
	"team": {
		"min":      "Team name must be at least 3 characters",
		"max":      "Team name must be less than 30 characters",
		"teamname": "Team name should only contain letters and numbers",
	},
	"vote": {
		"*": "YouTube streaming vote must be true or false",
	},
	"email": {
		"*": "Please enter a valid email address",
	},
	"password": {
		"min": "Password must be at least 8 characters",
	},
	"loginpassword": {
		"min": "Password must be at least 6 characters",
	},
	"confirm": {
		"*": "Passwords don't match",
	},
	"contactname": {
		"min": "Name must be at least 2 characters",
		"max": "Name must be less than 100 characters",
	},
	"contactemail": {
		"*": "Invalid email address",
	},
	"contactphone": {
		"min": "Phone number must be at least 10 digits",
		"max": "Phone number must be less than 15 digits",
	},
	"subject": {
		"min": "Subject must be at least 5 characters",
		"max": "Subject must be less than 200 characters",
	},
	"message": {
		"min": "Message must be at least 10 characters",
		"max": "Message must be less than 1000 characters",
	},
}

// messageFor picks the human message for a failed rule. An empty required field reports the min-length message.
func messageFor(kind string, fe validator.FieldError) string {
	if m, ok := messages[kind]; ok {
		if msg, ok := m[fe.Tag()]; ok {
			return msg
		}
		if fe.Tag() == "required" {
			if msg, ok := m["min"]; ok {
				return msg
			}
		}
		if msg, ok := m["*"]; ok {
			return msg
		}
	}
	if fe.Tag() == "required" {
		return fe.Field() + " is required"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
