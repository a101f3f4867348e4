package application

import (
	"strings"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/pkg/helpers"
)

type userForm struct {
	FullName   string `json:"fullName" validate:"min=2"`
	Email      string `json:"email" validate:"email"`
	Password   string `json:"password" validate:"pwd,max=72"`
	Role       string `json:"role" validate:"oneof=school-student college-student employee admin"`
	SchoolType string `json:"schoolType" validate:"omitempty,oneof=government private"`
}

// UserChanges is a sparse set of validated user fields. Password is still plaintext here.
type UserChanges struct {
	FullName   *string
	Email      *string
	Password   *string
	Role       *entity.Role
	SchoolType *string // "" clears
	IsActive   *bool
}

// ValidateUserCreate requires fullName, email, password and role.
func ValidateUserCreate(in Fields) (UserChanges, error) {
	fe := fieldErrors{}
	for _, k := range []string{"fullName", "email", "password", "role"} {
		if _, ok := in[k]; !ok {
			fe.add(k, "is required")
		}
	}
	ch := validateUserFields(in, fe)
	return ch, fe.err()
}

// ValidateUserUpdate validates only the fields present in the input.
func ValidateUserUpdate(in Fields) (UserChanges, error) {
	fe := fieldErrors{}
	ch := validateUserFields(in, fe)
	return ch, fe.err()
}

func validateUserFields(in Fields, fe fieldErrors) UserChanges {
	var (
		form    userForm
		ch      UserChanges
		partial []string
	)
	if v, ok := in.Get("fullName"); ok {
		form.FullName = helpers.CleanText(v)
		ch.FullName = &form.FullName
		partial = append(partial, "FullName")
	}
	if v, ok := in.Get("email"); ok {
		form.Email = strings.ToLower(strings.TrimSpace(v))
		ch.Email = &form.Email
		partial = append(partial, "Email")
	}
	if v, ok := in.Get("password"); ok {
		form.Password = v
		ch.Password = &form.Password
		partial = append(partial, "Password")
	}
	if v, ok := in.Get("role"); ok {
		form.Role = strings.TrimSpace(v)
		role := entity.Role(form.Role)
		ch.Role = &role
		partial = append(partial, "Role")
	}
	if v, ok := in.Get("schoolType"); ok {
		form.SchoolType = strings.TrimSpace(v)
		ch.SchoolType = &form.SchoolType
		partial = append(partial, "SchoolType")
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
