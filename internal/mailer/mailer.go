// Package mailer доставка писем со ссылкой на сброс пароля.
package mailer

import (
	"context"

	"github.com/thereayou/geoguess/internal/logger"
)

// LogMailer вместо отправки пишет письмо в лог; годится для разработки
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	logger.Infof("password reset requested for %s", email)
	logger.Debugf("password reset token for %s: %s", email, token)
	return nil
}
