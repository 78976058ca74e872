package contracts

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

// SendReport mails the finished CSV to the configured recipients.
func SendReport(ctx context.Context, cfg NotifyConfig, csvPath string, stats Stats) error {
	_, span := tracer.Start(ctx, "SendReport")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Contract Reports <%s>", cfg.Smtp.EmailAddress)
	mail.To = cfg.To
	mail.Subject = "Contract extraction report"

	body := fmt.Sprintf(`The contract extraction run has finished.

Contracts discovered: %d
Accepted into the report: %d
Rejected by the district filter: %d
Detail fetches failed: %d

The full report is attached.`,
		stats.Discovered, stats.Accepted, stats.Rejected, stats.FetchFailed)
	mail.Text = []byte(body)

	_, err := mail.AttachFile(csvPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to attach report")
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Smtp.Server, cfg.Smtp.Port)
	err = mail.Send(addr, smtp.PlainAuth("", cfg.Smtp.EmailAddress, cfg.Smtp.Password, cfg.Smtp.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send report email")
		return err
	}

	return nil
}
