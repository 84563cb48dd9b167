package service

import "Lee_Groups/internal/pkg"

type EmailService struct {
	emailCfg pkg.SMTPConfig
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg}
}

// SendWelcome 注册成功后发送欢迎邮件
func (s *EmailService) SendWelcome(email, firstName string) error {
	html := pkg.WelcomeHTML(firstName)
	return pkg.SendEmail(s.emailCfg, email, "欢迎加入 Lee Groups", html)
}
