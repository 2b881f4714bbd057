// Package emailtmpl renders the transactional emails sent by FloorEase.
package emailtmpl

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/shandysiswandi/floorease/internal/pkg/mail"
)

//go:embed templates/*
var files embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(files, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(files, "templates/*.txt"))
)

type ResetOtpData struct {
	FullName     string
	Code         string
	ValidMinutes int
	Year         int
}

// ResetOtp renders the password reset code email. From and To are left to
// the caller.
func ResetOtp(d ResetOtpData) (mail.Message, error) {
	if d.Year == 0 {
		d.Year = time.Now().Year()
	}
	return render("Password Reset OTP - FloorEase", "reset_otp", d)
}

type BookingCreatedData struct {
	BookingID     int64
	FullName      string
	ServiceType   string
	FlooringType  string
	AreaSize      float64
	Address       string
	PreferredDate string
	PreferredTime string
	Year          int
}

func BookingCreated(d BookingCreatedData) (mail.Message, error) {
	if d.Year == 0 {
		d.Year = time.Now().Year()
	}
	return render("Booking Received - FloorEase", "booking_created", d)
}

func render(subject, name string, data any) (mail.Message, error) {
	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html", data); err != nil {
		return mail.Message{}, err
	}
	if err := textTemplates.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		Subject:  subject,
		HTMLBody: html.String(),
		TextBody: strings.TrimSpace(text.String()),
	}, nil
}
