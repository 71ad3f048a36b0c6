//go:build integration
// +build integration

package stream

import (
	"context"
	"testing"
	"time"

	"github.com/roamvista/roamvista/internal/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReadWrite(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	suite := redis.InitSuite(ctx, t)
	err := suite.Redis.FlushAll(ctx).Err()
	require.Nil(t, err)

	client, err := Init(ctx, zap.NewNop(), suite.Redis, "stream-testing")
	require.Nil(t, err)

	payload := []byte(`{"kind":"user_signed_up"}`)

	t.Run("write", func(t *testing.T) {
		err := client.Write(ctx, payload)
		assert.Nil(t, err)
	})

	var message *Message

	t.Run("read", func(t *testing.T) {
		message, err = client.Read(ctx)
		assert.Nil(t, err)
		assert.Equal(t, payload, message.Payload)
	})

	t.Run("ack", func(t *testing.T) {
		err := client.Ack(ctx, message)
		assert.Nil(t, err)
	})

	t.Run("claim with empty pending set", func(t *testing.T) {
		_, err := client.Claim(ctx, time.Nanosecond)
		assert.ErrorIs(t, err, ErrNoPending)
	})
}
