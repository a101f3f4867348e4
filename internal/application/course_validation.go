package application

import (
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/pkg/helpers"
)

// courseForm holds parsed course input; tags carry the field rules.
type courseForm struct {
	Title       string  `json:"title" validate:"min=3"`
	Description string  `json:"description" validate:"min=10"`
	Category    string  `json:"category" validate:"oneof=school college employee"`
	Level       string  `json:"level" validate:"oneof=beginner intermediate advanced"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    int     `json:"duration" validate:"gt=0"`
}

// CourseChanges is a sparse set of validated course fields. Nil means "not provided".
type CourseChanges struct {
	Title       *string
	Description *string
	Category    *entity.Category
	Level       *entity.Level
	Price       *float64
	Duration    *int
	IsActive    *bool
	Thumbnail   *string
}

// Apply merges the provided fields onto c. Timestamps are left to the caller.
func (ch CourseChanges) Apply(c *entity.Course) {
	if ch.Title != nil {
		c.Title = *ch.Title
	}
	if ch.Description != nil {
		c.Description = *ch.Description
	}
	if ch.Category != nil {
		c.Category = *ch.Category
	}
	if ch.Level != nil {
		c.Level = *ch.Level
	}
	if ch.Price != nil {
		c.Price = *ch.Price
	}
	if ch.Duration != nil {
		c.Duration = *ch.Duration
	}
	if ch.IsActive != nil {
		c.IsActive = *ch.IsActive
	}
	if ch.Thumbnail != nil {
		c.Thumbnail = ch.Thumbnail
	}
}

var courseFieldNames = map[string]string{
	"title":       "Title",
	"description": "Description",
	"category":    "Category",
	"level":       "Level",
	"price":       "Price",
	"duration":    "Duration",
}

var courseRequired = []string{"title", "description", "category", "level", "price", "duration"}

// ValidateCourseCreate requires every course field and reports all violations together.
func ValidateCourseCreate(in Fields) (CourseChanges, error) {
	fe := fieldErrors{}
	for _, k := range courseRequired {
		if _, ok := in[k]; !ok {
			fe.add(k, "is required")
		}
	}
	ch := validateCourseFields(in, fe)
	if err := fe.err(); err != nil {
		return CourseChanges{}, err
	}
	if ch.IsActive == nil {
		active := true
		ch.IsActive = &active
	}
	return ch, nil
}

// ValidateCourseUpdate validates only the fields present in the input.
func ValidateCourseUpdate(in Fields) (CourseChanges, error) {
	fe := fieldErrors{}
	ch := validateCourseFields(in, fe)
	if err := fe.err(); err != nil {
		return CourseChanges{}, err
	}
	return ch, nil
}

func validateCourseFields(in Fields, fe fieldErrors) CourseChanges {
	var (
		form    courseForm
		ch      CourseChanges
		partial []string
	)

	if v, ok := in.Get("title"); ok {
		form.Title = helpers.CleanText(v)
		ch.Title = &form.Title
		partial = append(partial, courseFieldNames["title"])
	}
	if v, ok := in.Get("description"); ok {
		form.Description = helpers.CleanText(v)
		ch.Description = &form.Description
		partial = append(partial, courseFieldNames["description"])
	}
	if v, ok := in.Get("category"); ok {
		form.Category = v
		cat := entity.Category(v)
		ch.Category = &cat
		partial = append(partial, courseFieldNames["category"])
	}
	if v, ok := in.Get("level"); ok {
		form.Level = v
		lvl := entity.Level(v)
		ch.Level = &lvl
		partial = append(partial, courseFieldNames["level"])
	}
	if v, ok := in.Get("price"); ok {
		if p, ok := parsePrice(v); ok {
			form.Price = p
			ch.Price = &form.Price
			partial = append(partial, courseFieldNames["price"])
		} else {
			fe.add("price", "must be a valid number")
		}
	}
	if v, ok := in.Get("duration"); ok {
		if d, ok := parseMinutes(v); ok {
			form.Duration = d
			ch.Duration = &form.Duration
			partial = append(partial, courseFieldNames["duration"])
		} else {
			fe.add("duration", "must be a whole number of minutes")
		}
	}
	if v, ok := in.Get("isActive"); ok {
		active := parseBoolFlag(v)
		ch.IsActive = &active
	}

	if len(partial) > 0 {
		collect(fe, validate.StructPartial(form, partial...))
	}
	return ch
}
