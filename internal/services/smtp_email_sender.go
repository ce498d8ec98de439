package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

type SMTPSender struct {
	Host   string
	Port   string
	User   string
	Pass   string
	From   string
	UseTLS bool
}

func (s *SMTPSender) buildMessage(to, subject, body string) []byte {
	headers := [][2]string{
		{"From", s.From},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=\"utf-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", h[0], h[1]))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return []byte(msg.String())
}

func (s *SMTPSender) auth() smtp.Auth {
	if s.User == "" {
		return nil
	}
	return smtp.PlainAuth("", s.User, s.Pass, s.Host)
}

func (s *SMTPSender) Send(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := net.JoinHostPort(s.Host, s.Port)
	msg := s.buildMessage(to, subject, body)

	if !s.UseTLS {
		return smtp.SendMail(addr, s.auth(), s.From, []string{to}, msg)
	}

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Quit()
	if auth := s.auth(); auth != nil {
		if err := c.Auth(auth); err != nil {
			return err
		}
	}
	if err := c.Mail(s.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	_, err = w.Write(msg)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}
