package application

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nareshkanna-nk/Young-wealth/pkg/validation"
)

// Fields is raw request input keyed by field name. A present key means the
// field was provided, whatever its value; absent keys are left untouched on update.
type Fields map[string]string

func (f Fields) Get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

// Attachment is an uploaded file that has passed size and type checks but is not
// stored yet. Store is only called once the rest of the input is valid.
type Attachment interface {
	Store(ctx context.Context) (string, error)
}

// validate is shared by every pipeline; validator.Validate is safe for concurrent use.
var validate = validation.New()

// collect folds validator errors into fe, keyed by JSON field name.
func collect(fe fieldErrors, err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.add("payload", "invalid payload")
		return
	}
	for _, e := range verrs {
		fe.add(e.Field(), validation.Message(e))
	}
}

// parseBoolFlag treats only the literal "true" as true.
func parseBoolFlag(s string) bool {
	return strings.TrimSpace(s) == "true"
}

func parsePrice(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseMinutes(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
