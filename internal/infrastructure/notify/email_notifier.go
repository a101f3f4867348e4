package notify

import (
	"context"
	"time"

	"github.com/nareshkanna-nk/Young-wealth/config"
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/entity"
	"github.com/nareshkanna-nk/Young-wealth/pkg/mailer"
	mailtpl "github.com/nareshkanna-nk/Young-wealth/pkg/mailer/templates"
)

// Publisher puts a JSON message on the email queue. *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier turns account lifecycle events into queued email jobs for cmd/email_worker.
type EmailNotifier struct {
	Pub Publisher
	Cfg *config.Config
	Now func() time.Time
}

func NewEmailNotifier(pub Publisher, cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{Pub: pub, Cfg: cfg, Now: func() time.Time { return time.Now().UTC() }}
}

func (n *EmailNotifier) UserCreated(ctx context.Context, u *entity.User) error {
	return n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.Cfg, u.FullName, u.Email, string(u.Role), mailtpl.WithTime(n.Now())),
	})
}

func (n *EmailNotifier) UserDeactivated(ctx context.Context, u *entity.User) error {
	return n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.AccountDeactivated,
		Data:     mailtpl.NewAccountDeactivatedData(n.Cfg, u.FullName, u.Email, mailtpl.WithTime(n.Now())),
	})
}

func (n *EmailNotifier) publish(ctx context.Context, job mailer.EmailJob) error {
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return n.Pub.PublishJSON(c, job)
}
