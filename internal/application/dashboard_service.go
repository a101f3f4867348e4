package application

import (
	"context"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	repo "github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
)

// DashboardService recomputes aggregate counts on every call; nothing is cached.
type DashboardService struct {
	Courses repo.CourseRepository
	Users   repo.UserRepository
}

func NewDashboardService(courses repo.CourseRepository, users repo.UserRepository) *DashboardService {
	return &DashboardService{Courses: courses, Users: users}
}

func (s *DashboardService) Stats(ctx context.Context) (entity.DashboardStats, error) {
	var st entity.DashboardStats

	courses, err := s.Courses.List(ctx)
	if err != nil {
		return st, err
	}
	for _, c := range courses {
		st.TotalCourses++
		if c.IsActive {
			st.ActiveCourses++
		}
		st.TotalVideos += len(c.Videos)
	}

	users, err := s.Users.List(ctx)
	if err != nil {
		return st, err
	}
	for _, u := range users {
		switch u.Role {
		case entity.RoleAdmin:
			continue
		case entity.RoleSchoolStudent:
			st.SchoolStudents++
		case entity.RoleCollegeStudent:
			st.CollegeStudents++
		case entity.RoleEmployee:
			st.Employees++
		}
		st.TotalUsers++
	}
	return st, nil
}
