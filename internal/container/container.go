package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/config"
	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/notify"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/search"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/upload"
	"github.com/nareshkanna-nk/Young-wealth/pkg/helpers"
)

// Container holds the components constructed once at process start.
// It is passed explicitly to the router; nothing here is a package global.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	// Optional infrastructure; nil when disabled.
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	Users   repository.UserRepository
	Courses repository.CourseRepository
	Uploads upload.Storage

	UserSvc      *application.UserService
	CourseSvc    *application.CourseService
	AuthSvc      *application.AuthService
	DashboardSvc *application.DashboardService
}

func New(cfg *config.Config, logger *logrus.Logger, users repository.UserRepository, courses repository.CourseRepository, uploads upload.Storage) *Container {
	return &Container{Config: cfg, Logger: logger, Users: users, Courses: courses, Uploads: uploads}
}

// Build wires the services from whatever infrastructure has been set.
func (c *Container) Build() *Container {
	var idx application.CourseIndex
	if c.ES != nil {
		idx = search.NewCourseIndex(c.ES, c.Config.ESCoursesIndex)
	}
	var n application.Notifier
	if c.RabbitPub != nil {
		n = notify.NewEmailNotifier(c.RabbitPub, c.Config)
	}

	c.UserSvc = application.NewUserService(c.Users, n, c.Logger)
	c.CourseSvc = application.NewCourseService(c.Courses, idx, c.Logger)
	c.AuthSvc = application.NewAuthService(c.UserSvc, c.Logger)
	c.DashboardSvc = application.NewDashboardService(c.Courses, c.Users)
	return c
}
