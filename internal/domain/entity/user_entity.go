package entity

import (
	"time"
)

// Role is the audience a user account belongs to.
type Role string

const (
	RoleSchoolStudent  Role = "school-student"
	RoleCollegeStudent Role = "college-student"
	RoleEmployee       Role = "employee"
	RoleAdmin          Role = "admin"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleSchoolStudent, RoleCollegeStudent, RoleEmployee, RoleAdmin}

// SchoolType only applies to school students.
type SchoolType string

const (
	SchoolGovernment SchoolType = "government"
	SchoolPrivate    SchoolType = "private"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field and never serialized.
//
// Users are soft deleted: IsActive=false, the record stays in storage.
type User struct {
	ID         string      `json:"id"`
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	Password   string      `json:"-"`
	Role       Role        `json:"role"`
	SchoolType *SchoolType `json:"schoolType"`
	IsActive   bool        `json:"isActive"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy so stored records are never aliased by callers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.SchoolType != nil {
		st := *u.SchoolType
		cp.SchoolType = &st
	}
	return &cp
}
