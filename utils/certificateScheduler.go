package utils

import (
	"context"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	courseModels "learnhub/models/course"
)

// PendingCounter counts certificate requests by status
type PendingCounter interface {
	CountByStatus(ctx context.Context, status courseModels.CertificateStatus) (int64, error)
	CountCreatedSince(ctx context.Context, status courseModels.CertificateStatus, since time.Time) (int64, error)
}

// Digest is what one digest run found
type Digest struct {
	Pending int64
	Today   int64
}

// SendPendingDigest mails the number of pending requests to the educator,
// including how many arrived since the start of the day. Nothing is sent when
// there are none.
func SendPendingDigest(ctx context.Context, counter PendingCounter, mailer Mailer, to string) (Digest, error) {
	var d Digest
	var err error
	if d.Pending, err = counter.CountByStatus(ctx, courseModels.StatusPending); err != nil {
		return d, err
	}
	if d.Pending == 0 {
		return d, nil
	}
	if d.Today, err = counter.CountCreatedSince(ctx, courseModels.StatusPending, now.BeginningOfDay()); err != nil {
		return d, err
	}
	subject, body := PendingDigestEmail(d.Pending, d.Today)
	return d, mailer.Send(ctx, []string{to}, subject, body)
}

// InitializeCertificateDigest schedules the pending request digest. It returns
// nil when no educator address is configured.
func InitializeCertificateDigest(spec, to string, counter PendingCounter, mailer Mailer, log *logrus.Entry) (*cron.Cron, error) {
	log = log.WithField("component", "certificate-digest")
	if to == "" {
		log.Info("EDUCATOR_EMAIL not set, digest disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		d, err := SendPendingDigest(ctx, counter, mailer, to)
		if err != nil {
			log.WithError(err).Error("pending digest failed")
			return
		}
		log.WithFields(logrus.Fields{"pending": d.Pending, "today": d.Today}).Info("pending digest processed")
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.WithField("schedule", spec).Info("certificate digest scheduler started")
	return c, nil
}
