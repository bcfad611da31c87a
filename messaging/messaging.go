// Package messaging is the outbound customer notification channel. Messages
// are written to the structured log; an SMS or email provider can be plugged
// in behind the same Service later.
package messaging

import (
	"fmt"

	"github.com/MrPouyaSaad/rivaland-backend/models"
	"go.uber.org/zap"
)

type Service struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Service {
	return &Service{log: log}
}

func (s *Service) Send(to, content, msgType string) {
	s.log.Infow("message", "type", msgType, "to", to, "content", content)
}

func recipient(user *models.User) string {
	if user.Phone != "" {
		return user.Phone
	}
	if user.Email != "" {
		return user.Email
	}
	return user.Username
}

func (s *Service) SendOrderStatusUpdate(user *models.User, orderID uint, status, trackingCode string) {
	message := fmt.Sprintf("سفارش #%d شما به وضعیت «%s» تغییر یافت.", orderID, status)
	if status == "shipped" && trackingCode != "" {
		message += " کد رهگیری: " + trackingCode
	}
	s.Send(recipient(user), message, "order-status")
}

func (s *Service) SendPaymentUpdate(user *models.User, orderID uint, status, method string) {
	message := fmt.Sprintf("پرداخت سفارش #%d با روش %s در وضعیت «%s» قرار گرفت.", orderID, method, status)
	s.Send(recipient(user), message, "payment")
}

func (s *Service) SendLoginCode(phone, code string) {
	s.Send(phone, "کد ورود شما: "+code, "login-code")
}
