package smtp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Provider interface {
	SendEMail(to, subject, htmlBody string) error
	SendEMailWithAttachment(to, subject, htmlBody, attachmentPath, attachmentName string) error
}

func Connect(user, password, host, port, from string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		from:       from,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	from       string
	tlsEnabled bool
}

func (i impl) configured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) sender() string {
	if i.from != "" {
		return i.from
	}
	return i.user
}

func (i impl) SendEMail(to, subject, htmlBody string) (err error) {
	logger := log.WithField("to", to)
	if !i.configured() {
		logger.Warn("e-posta gönderilmedi, smtp istemcisi yapılandırılmamış")
		return nil
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n"
	body := strings.NewReader(fmt.Sprintf("Subject: %s\n%s\r\n%s\r\n", subject, mimeHeaders, htmlBody))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.sender(), sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.sender(), sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("e-posta gönderim hatası")
		return err
	}
	logger.Info("e-posta gönderildi")
	return nil
}

func (i impl) SendEMailWithAttachment(to, subject, htmlBody, attachmentPath, attachmentName string) error {
	logger := log.WithField("to", to)
	if !i.configured() {
		logger.Warn("e-posta gönderilmedi, smtp istemcisi yapılandırılmamış")
		return nil
	}
	port, err := strconv.Atoi(i.port)
	if err != nil {
		return errors.Wrap(err, "geçersiz smtp portu")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", i.sender())
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	m.Attach(attachmentPath, gomail.Rename(attachmentName))

	d := gomail.NewDialer(i.host, port, i.user, i.password)
	if err := d.DialAndSend(m); err != nil {
		logger.WithError(err).Error("ekli e-posta gönderim hatası")
		return err
	}
	logger.Info("ekli e-posta gönderildi")
	return nil
}
