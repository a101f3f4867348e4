package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/memory"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	courseRepo := memory.NewCourseRepository()
	userRepo := memory.NewUserRepository()
	courses := NewCourseService(courseRepo, nil, nil)
	users := NewUserService(userRepo, nil, nil)
	dash := NewDashboardService(courseRepo, userRepo)

	a, err := courses.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)
	_, err = courses.Create(ctx, validCourseInput(), nil)
	require.NoError(t, err)
	inactive := validCourseInput()
	inactive["isActive"] = "false"
	_, err = courses.Create(ctx, inactive, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = courses.AddVideo(ctx, a.ID, validVideoInput(), &fakeAttachment{path: "/uploads/videos/v.mp4"})
		require.NoError(t, err)
	}

	mk := func(email, role string) *entity.User {
		u, err := users.Create(ctx, Fields{"fullName": "User " + email, "email": email, "password": "password1", "role": role})
		require.NoError(t, err)
		return u
	}
	mk("admin@example.com", "admin")
	mk("s1@example.com", "school-student")
	mk("s2@example.com", "school-student")
	mk("c1@example.com", "college-student")
	mk("e1@example.com", "employee")
	gone := mk("e2@example.com", "employee")
	require.NoError(t, users.Delete(ctx, gone.ID))

	st, err := dash.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, entity.DashboardStats{
		TotalCourses:    3,
		ActiveCourses:   2,
		TotalUsers:      4,
		SchoolStudents:  2,
		CollegeStudents: 1,
		Employees:       1,
		TotalVideos:     2,
	}, st)
}
