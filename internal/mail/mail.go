// Package mail delivers registration verification codes.
package mail

import (
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
)

type Sender interface {
	SendOTP(to, code string) error
}

// SMTPSender sends the code over SMTPS (implicit TLS, typically port 465).
type SMTPSender struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (s *SMTPSender) SendOTP(to, code string) error {
	addr := net.JoinHostPort(s.Host, s.Port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.Host})
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}
	if err := client.Mail(s.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your OTP for ResumeBot\r\n\r\nYour OTP is: %s\nIt expires in 5 minutes.\r\n",
		s.From, to, code)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// SimulatedSender logs the code instead of sending it. Used whenever SMTP
// is unconfigured, so local setups can still complete registration.
type SimulatedSender struct{}

func (SimulatedSender) SendOTP(to, code string) error {
	log.Printf("INFO: simulated OTP delivery to %s: %s", to, code)
	return nil
}
