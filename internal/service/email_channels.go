package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"jobtrackr/internal/entity"

	"github.com/resend/resend-go/v2"
)

// channelForSetting maps a provider row to its delivery strategy. Provider
// types without an implemented strategy (ses) are rejected here and surface
// as UnsupportedProvider.
func channelForSetting(setting *entity.EmailProviderSetting) (EmailChannel, error) {
	switch setting.ProviderType {
	case entity.ProviderSMTP:
		channel := smtpChannel{useTLS: setting.UseTLS, useSSL: setting.UseSSL}
		if setting.Host != nil {
			channel.host = *setting.Host
		}
		if setting.Port != nil {
			channel.port = *setting.Port
		}
		if setting.Username != nil {
			channel.username = *setting.Username
		}
		if setting.Password != nil {
			channel.password = *setting.Password
		}
		return channel, nil
	case entity.ProviderSendGrid:
		return sendgridChannel{apiKey: stringValue(setting.APIKey)}, nil
	case entity.ProviderMailgun:
		return mailgunChannel{apiKey: stringValue(setting.APIKey), domain: stringValue(setting.Host)}, nil
	case entity.ProviderResend:
		return resendChannel{apiKey: stringValue(setting.APIKey)}, nil
	default:
		return nil, fmt.Errorf("unsupported email provider type %q", setting.ProviderType)
	}
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

type smtpChannel struct {
	host     string
	port     int
	username string
	password string
	useTLS   bool
	useSSL   bool
}

func (c smtpChannel) Send(_ context.Context, from string, to []string, subject string, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", c.host, c.port)

	var client *smtp.Client
	var err error
	if c.useSSL {
		conn, dialErr := tls.Dial("tcp", addr, &tls.Config{ServerName: c.host})
		if dialErr != nil {
			return dialErr
		}
		client, err = smtp.NewClient(conn, c.host)
	} else {
		client, err = smtp.Dial(addr)
	}
	if err != nil {
		return err
	}
	defer client.Close()

	if !c.useSSL && c.useTLS {
		if err := client.StartTLS(&tls.Config{ServerName: c.host}); err != nil {
			return err
		}
	}

	if c.username != "" {
		auth := smtp.PlainAuth("", c.username, c.password, c.host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return err
		}
	}

	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(buildMIMEMessage(from, to, subject, htmlBody)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMIMEMessage(from string, to []string, subject string, htmlBody string) []byte {
	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, "From: %s\r\n", from)
	fmt.Fprintf(&buffer, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buffer, "Subject: %s\r\n", subject)
	buffer.WriteString("MIME-Version: 1.0\r\n")
	buffer.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buffer.WriteString("\r\n")
	buffer.WriteString(htmlBody)
	return buffer.Bytes()
}

type sendgridChannel struct {
	apiKey string
}

func (c sendgridChannel) Send(ctx context.Context, from string, to []string, subject string, htmlBody string) error {
	recipients := make([]map[string]string, 0, len(to))
	for _, address := range to {
		recipients = append(recipients, map[string]string{"email": address})
	}
	payload := map[string]any{
		"personalizations": []map[string]any{{"to": recipients}},
		"from":             map[string]string{"email": from},
		"subject":          subject,
		"content": []map[string]string{
			{"type": "text/html", "value": htmlBody},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.sendgrid.com/v3/mail/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := defaultHTTPClient().Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

type mailgunChannel struct {
	apiKey string
	domain string
}

func (c mailgunChannel) Send(ctx context.Context, from string, to []string, subject string, htmlBody string) error {
	form := url.Values{}
	form.Set("from", from)
	for _, recipient := range to {
		form.Add("to", recipient)
	}
	form.Set("subject", subject)
	form.Set("html", htmlBody)

	endpoint := fmt.Sprintf("https://api.mailgun.net/v3/%s/messages", c.domain)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	request.SetBasicAuth("api", c.apiKey)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := defaultHTTPClient().Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return fmt.Errorf("mailgun returned status %d", response.StatusCode)
	}
	return nil
}

type resendChannel struct {
	apiKey string
}

func (c resendChannel) Send(_ context.Context, from string, to []string, subject string, htmlBody string) error {
	client := resend.NewClient(c.apiKey)
	_, err := client.Emails.Send(&resend.SendEmailRequest{
		From:    from,
		To:      to,
		Subject: subject,
		Html:    htmlBody,
	})
	return err
}
