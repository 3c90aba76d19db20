// Package validation runs declarative field rules against an HTTP request's
// path parameters and JSON body.
//
// Every rule of a chain is evaluated on its own, so one field may produce
// several errors. Rules see values the way they arrive over the wire,
// normalized to text: a missing or null field is "", numbers keep their
// decimal form, booleans become "true" or "false" and objects or arrays,
// which have no scalar text, become "".
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Location is the part of the request a field is read from.
type Location string

const (
	LocationParams Location = "params"
	LocationBody   Location = "body"
)

// FieldError is a single failed rule.
type FieldError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
	Value    string   `json:"value"`
}

// Rule checks one predicate, expressed as a validator tag, against one field.
type Rule struct {
	Location Location
	Field    string
	Tag      string
	Message  string
}

// Chain is an ordered list of rules.
type Chain []Rule

// Input holds the raw request values rules are evaluated against.
type Input struct {
	Params map[string]string
	Body   map[string]any
}

// Value returns the normalized text of a field.
func (in Input) Value(loc Location, field string) string {
	switch loc {
	case LocationParams:
		return in.Params[field]
	case LocationBody:
		return stringify(in.Body[field])
	default:
		return ""
	}
}

// DecodeBody parses a JSON object body. Numbers are kept as json.Number so
// their text survives unchanged. An empty body decodes to an empty object.
func DecodeBody(raw []byte) (map[string]any, error) {
	body := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return body, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return decimalText(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// decimalText rewrites exponent notation (1e2) as plain decimal text (100).
func decimalText(n json.Number) string {
	text := n.String()
	if !strings.ContainsAny(text, "eE") {
		return text
	}
	f, err := n.Float64()
	if err != nil {
		return text
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Validator evaluates rule chains.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the custom "integer", "positive" and
// "boolstring" tags registered.
func New() (*Validator, error) {
	v := validator.New()

	if err := v.RegisterValidation("integer", validateInteger); err != nil {
		return nil, fmt.Errorf("register integer validator: %w", err)
	}
	if err := v.RegisterValidation("positive", validatePositive); err != nil {
		return nil, fmt.Errorf("register positive validator: %w", err)
	}

	if err := v.RegisterValidation("boolstring", validateBoolString); err != nil {
		return nil, fmt.Errorf("register boolstring validator: %w", err)
	}

	return &Validator{v: v}, nil
}

// Check runs every rule of chain and returns the failures in rule order.
// A nil result means the input is valid.
func (v *Validator) Check(in Input, chain Chain) []FieldError {
	var errs []FieldError
	for _, rule := range chain {
		value := in.Value(rule.Location, rule.Field)
		if err := v.v.Var(value, rule.Tag); err != nil {
			errs = append(errs, FieldError{
				Field:    rule.Field,
				Message:  rule.Message,
				Location: rule.Location,
				Value:    value,
			})
		}
	}
	return errs
}

func validateInteger(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil
}

func validatePositive(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f > 0
}

// validateBoolString accepts true, false, 1 and 0 only.
func validateBoolString(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "true", "false", "1", "0":
		return true
	default:
		return false
	}
}
