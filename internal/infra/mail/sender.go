package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendBatchReport avisa a operação quando um lote de sync termina com
// falhas. O detalhe registro a registro fica na auditoria; aqui vai só
// o resumo.
func (s *EmailSender) SendBatchReport(to, jobID, direction string, successful, failed int) error {
	data := BatchReportData{
		JobID:      jobID,
		Direction:  direction,
		Successful: successful,
		Failed:     failed,
	}

	tmplPath := filepath.Join("templates", "batch_report.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("⚠️ Batch sync %s terminou com %d falhas", jobID, failed))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
