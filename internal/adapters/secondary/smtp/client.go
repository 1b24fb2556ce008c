// Package smtp is the email fallback channel for participants with no
// registered push devices.
package smtp

import (
	"gopkg.in/gomail.v2"
)

type Client struct {
	dialer *gomail.Dialer
	from   string
}

func NewClient(dialer *gomail.Dialer, from string) *Client {
	return &Client{
		dialer: dialer,
		from:   from,
	}
}

func (c *Client) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return c.dialer.DialAndSend(m)
}
