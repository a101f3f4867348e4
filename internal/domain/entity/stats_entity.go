package entity

// DashboardStats is a read-only fold over the course and user collections.
type DashboardStats struct {
	TotalCourses    int `json:"totalCourses"`
	ActiveCourses   int `json:"activeCourses"`
	TotalUsers      int `json:"totalUsers"`
	SchoolStudents  int `json:"schoolStudents"`
	CollegeStudents int `json:"collegeStudents"`
	Employees       int `json:"employees"`
	TotalVideos     int `json:"totalVideos"`
}
