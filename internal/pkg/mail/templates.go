package mail

import (
	"bytes"
	"html/template"
)

const contactNotifyTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">New contact form message</h2>
  <p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt;{{if .Phone}} ({{.Phone}}){{end}} wrote:</p>
  {{if .Subject}}<p style="color:#555"><em>{{.Subject}}</em></p>{{end}}
  <div style="background:#f3f4f6;border-radius:8px;padding:12px 16px;white-space:pre-wrap">{{.Message}}</div>
  <p style="color:#999;font-size:12px;margin-top:24px">Sent automatically from the ClearView Retreat website.</p>
</div>
</body>
</html>`

const newsletterWelcomeTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">Welcome to the ClearView Retreat newsletter</h2>
  <p>Thank you for subscribing! We'll keep you posted about upcoming retreats and events.</p>
  <p style="margin-top:24px;color:#999;font-size:12px">
    Didn't sign up? You can unsubscribe at any time:
    <a href="{{.UnsubscribeURL}}">unsubscribe</a>.
  </p>
</div>
</body>
</html>`

const registrationNotifyTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">New event registration</h2>
  <p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt; registered for <strong>{{.EventTitle}}</strong>{{if .Guests}} with {{.Guests}} guest(s){{end}}.</p>
  {{if .Note}}<div style="background:#f3f4f6;border-radius:8px;padding:12px 16px;white-space:pre-wrap">{{.Note}}</div>{{end}}
</div>
</body>
</html>`

var (
	contactNotify      = template.Must(template.New("contact_notify").Parse(contactNotifyTpl))
	newsletterWelcome  = template.Must(template.New("newsletter_welcome").Parse(newsletterWelcomeTpl))
	registrationNotify = template.Must(template.New("registration_notify").Parse(registrationNotifyTpl))
)

// ContactNotifyData fills the contact form notification template.
type ContactNotifyData struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// WelcomeData fills the newsletter welcome template.
type WelcomeData struct {
	UnsubscribeURL string
}

// RegistrationNotifyData fills the event registration template.
type RegistrationNotifyData struct {
	Name       string
	Email      string
	EventTitle string
	Guests     int
	Note       string
}

func RenderContactNotify(data ContactNotifyData) (string, error) {
	return render(contactNotify, data)
}

func RenderNewsletterWelcome(data WelcomeData) (string, error) {
	return render(newsletterWelcome, data)
}

func RenderRegistrationNotify(data RegistrationNotifyData) (string, error) {
	return render(registrationNotify, data)
}

func render(tpl *template.Template, data interface{}) (string, error) {
	var out bytes.Buffer
	if err := tpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
