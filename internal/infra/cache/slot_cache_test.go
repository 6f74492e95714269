package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID    uint `json:"id"`
	Spots int  `json:"spots"`
}

func TestSlotCache_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSlotCache(db, time.Minute)
	ctx := context.Background()

	mock.ExpectGet("slots:v:1").RedisNil()
	mock.ExpectGet("slots:1:0:k").RedisNil()

	v, err := c.Version(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0", v)

	var got []entry
	hit, err := c.Get(ctx, 1, v, "k", &got)

	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotCache_SetThenHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSlotCache(db, time.Minute)
	ctx := context.Background()

	mock.ExpectSet("slots:1:3:k", `[{"id":5,"spots":2}]`, time.Minute).SetVal("OK")
	mock.ExpectGet("slots:1:3:k").SetVal(`[{"id":5,"spots":2}]`)

	require.NoError(t, c.Set(ctx, 1, "3", "k", []entry{{ID: 5, Spots: 2}}))

	var got []entry
	hit, err := c.Get(ctx, 1, "3", "k", &got)

	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []entry{{ID: 5, Spots: 2}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotCache_WriteAfterInvalidateKeepsReadVersion(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSlotCache(db, time.Minute)
	ctx := context.Background()

	mock.ExpectGet("slots:v:1").SetVal("0")
	mock.ExpectGet("slots:1:0:k").RedisNil()
	mock.ExpectIncr("slots:v:1").SetVal(1)
	mock.ExpectSet("slots:1:0:k", `[{"id":5,"spots":1}]`, time.Minute).SetVal("OK")
	mock.ExpectGet("slots:v:1").SetVal("1")
	mock.ExpectGet("slots:1:1:k").RedisNil()

	v, err := c.Version(ctx, 1)
	require.NoError(t, err)

	var got []entry
	hit, err := c.Get(ctx, 1, v, "k", &got)
	require.NoError(t, err)
	require.False(t, hit)

	// a confirm commits and invalidates while the listing is being built
	require.NoError(t, c.Invalidate(ctx, 1))
	require.NoError(t, c.Set(ctx, 1, v, "k", []entry{{ID: 5, Spots: 1}}))

	next, err := c.Version(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "1", next)

	hit, err = c.Get(ctx, 1, next, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSlotCache(db, time.Minute)

	mock.ExpectIncr("slots:v:9").SetVal(1)

	require.NoError(t, c.Invalidate(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotCache_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSlotCache(db, time.Minute)
	ctx := context.Background()

	mock.ExpectGet("slots:v:1").SetErr(errors.New("conn refused"))

	v, err := c.Version(ctx, 1)
	assert.Error(t, err)
	assert.Empty(t, v)

	var got []entry
	hit, err := c.Get(ctx, 1, v, "k", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(ctx, 1, v, "k", got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotCache_NilClient(t *testing.T) {
	c := NewSlotCache(nil, 0)
	ctx := context.Background()

	v, err := c.Version(ctx, 1)
	assert.NoError(t, err)

	var got []entry
	hit, err := c.Get(ctx, 1, v, "k", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(ctx, 1, v, "k", got))
	assert.NoError(t, c.Invalidate(ctx, 1))
}
