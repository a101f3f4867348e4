package entity

import "time"

type Category string

const (
	CategorySchool   Category = "school"
	CategoryCollege  Category = "college"
	CategoryEmployee Category = "employee"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Course owns its videos; a video never exists outside exactly one course.
// Courses are hard deleted together with their videos.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Level       Level     `json:"level"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"` // minutes
	Thumbnail   *string   `json:"thumbnail"`
	IsActive    bool      `json:"isActive"`
	Videos      []Video   `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Video is a lesson inside a course, kept in upload order.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoUrl"`
	Duration    int       `json:"duration"` // minutes
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy, including the video list.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Thumbnail != nil {
		th := *c.Thumbnail
		cp.Thumbnail = &th
	}
	cp.Videos = make([]Video, len(c.Videos))
	copy(cp.Videos, c.Videos)
	return &cp
}

// FindVideo returns the index of the video with the given id, or -1.
func (c *Course) FindVideo(videoID string) int {
	for i := range c.Videos {
		if c.Videos[i].ID == videoID {
			return i
		}
	}
	return -1
}
