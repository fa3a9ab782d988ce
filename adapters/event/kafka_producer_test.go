package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/bunny-go/pkg/logger"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishJobAssignsID(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaProducerWithWriter(w, logger.NewNopLogger())

	id, err := p.PublishJob(context.Background(), JobPayload{
		Type:    JobStorageUpload,
		Folder:  "avatars",
		Name:    "me.png",
		Content: []byte{0x89, 'P', 'N', 'G'},
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, id, string(w.msgs[0].Key))

	decoded, err := DecodeJobPayload(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, id, decoded.JobID)
	assert.Equal(t, JobStorageUpload, decoded.Type)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, decoded.Content)

	p.Close()
	assert.True(t, w.closed)
}

func TestPublishJobKeepsGivenID(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaProducerWithWriter(w, logger.NewNopLogger())

	id, err := p.PublishJob(context.Background(), JobPayload{JobID: "fixed", Type: JobStreamFetch, URL: "https://example.com/v.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}

func TestPublishJobWriterFailure(t *testing.T) {
	p := NewKafkaProducerWithWriter(&fakeWriter{err: errors.New("broker down")}, logger.NewNopLogger())

	_, err := p.PublishJob(context.Background(), JobPayload{Type: JobStreamFetch})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestDecodeJobPayloadRejectsUntyped(t *testing.T) {
	_, err := DecodeJobPayload([]byte(`{"job_id":"x"}`))
	assert.Error(t, err)

	_, err = DecodeJobPayload([]byte(`not json`))
	assert.Error(t, err)
}
