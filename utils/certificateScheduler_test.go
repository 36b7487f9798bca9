package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "learnhub/models/course"
)

type stubCounter struct {
	pending int64
	today   int64
	since   *time.Time
	err     error
}

func (s stubCounter) CountByStatus(_ context.Context, status courseModels.CertificateStatus) (int64, error) {
	if status != courseModels.StatusPending {
		return 0, nil
	}
	return s.pending, s.err
}

func (s stubCounter) CountCreatedSince(_ context.Context, _ courseModels.CertificateStatus, since time.Time) (int64, error) {
	if s.since != nil {
		*s.since = since
	}
	return s.today, nil
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(_ context.Context, to []string, subject, htmlBody string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func TestSendPendingDigest(t *testing.T) {
	ctx := context.Background()

	t.Run("sends when requests are pending", func(t *testing.T) {
		mailer := &recordingMailer{}
		var since time.Time
		d, err := SendPendingDigest(ctx, stubCounter{pending: 3, today: 2, since: &since}, mailer, "edu@example.com")
		require.NoError(t, err)
		assert.Equal(t, Digest{Pending: 3, Today: 2}, d)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, []string{"edu@example.com"}, mailer.sent[0].to)
		assert.Contains(t, mailer.sent[0].subject, "3 certificate request(s)")
		assert.Contains(t, mailer.sent[0].body, "<strong>3</strong>")
		assert.Contains(t, mailer.sent[0].body, "2 of them submitted today")

		y, m, day := time.Now().Date()
		assert.Equal(t, time.Date(y, m, day, 0, 0, 0, 0, time.Local), since)
	})

	t.Run("quiet when nothing is pending", func(t *testing.T) {
		mailer := &recordingMailer{}
		d, err := SendPendingDigest(ctx, stubCounter{}, mailer, "edu@example.com")
		require.NoError(t, err)
		assert.Zero(t, d.Pending)
		assert.Empty(t, mailer.sent)
	})

	t.Run("count failure", func(t *testing.T) {
		mailer := &recordingMailer{}
		_, err := SendPendingDigest(ctx, stubCounter{err: errors.New("db down")}, mailer, "edu@example.com")
		assert.Error(t, err)
		assert.Empty(t, mailer.sent)
	})
}

func TestInitializeCertificateDigest(t *testing.T) {
	logger, _ := test.NewNullLogger()
	entry := logrus.NewEntry(logger)

	c, err := InitializeCertificateDigest("0 9 * * *", "", stubCounter{}, &recordingMailer{}, entry)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = InitializeCertificateDigest("not a schedule", "edu@example.com", stubCounter{}, &recordingMailer{}, entry)
	assert.Error(t, err)

	c, err = InitializeCertificateDigest("@every 1h", "edu@example.com", stubCounter{}, &recordingMailer{}, entry)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}
