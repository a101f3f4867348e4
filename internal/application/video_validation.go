package application

import (
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/pkg/helpers"
)

type videoForm struct {
	Title       string `json:"title" validate:"min=3"`
	Description string `json:"description" validate:"min=10"`
	Duration    int    `json:"duration" validate:"gt=0"`
}

// VideoChanges is a sparse set of validated video fields.
type VideoChanges struct {
	Title       *string
	Description *string
	Duration    *int
	VideoURL    *string
}

func (ch VideoChanges) Apply(v *entity.Video) {
	if ch.Title != nil {
		v.Title = *ch.Title
	}
	if ch.Description != nil {
		v.Description = *ch.Description
	}
	if ch.Duration != nil {
		v.Duration = *ch.Duration
	}
	if ch.VideoURL != nil {
		v.VideoURL = *ch.VideoURL
	}
}

// ValidateVideoCreate requires title, description, duration and an uploaded file.
func ValidateVideoCreate(in Fields, hasFile bool) (VideoChanges, error) {
	fe := fieldErrors{}
	for _, k := range []string{"title", "description", "duration"} {
		if _, ok := in[k]; !ok {
			fe.add(k, "is required")
		}
	}
	if !hasFile {
		fe.add("video", "is required")
	}
	ch := validateVideoFields(in, fe)
	return ch, fe.err()
}

// ValidateVideoUpdate validates only the fields present in the input.
func ValidateVideoUpdate(in Fields) (VideoChanges, error) {
	fe := fieldErrors{}
	ch := validateVideoFields(in, fe)
	return ch, fe.err()
}

func validateVideoFields(in Fields, fe fieldErrors) VideoChanges {
	var (
		form    videoForm
		ch      VideoChanges
		partial []string
	)
	if v, ok := in.Get("title"); ok {
		form.Title = helpers.CleanText(v)
		ch.Title = &form.Title
		partial = append(partial, "Title")
	}
	if v, ok := in.Get("description"); ok {
		form.Description = helpers.CleanText(v)
		ch.Description = &form.Description
		partial = append(partial, "Description")
	}
	if v, ok := in.Get("duration"); ok {
		if d, ok := parseMinutes(v); ok {
			form.Duration = d
			ch.Duration = &form.Duration
			partial = append(partial, "Duration")
		} else {
			fe.add("duration", "must be a whole number of minutes")
		}
	}
	if len(partial) > 0 {
		collect(fe, validate.StructPartial(form, partial...))
	}
	return ch
}
