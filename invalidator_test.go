package onecache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vearutop/onecache"
)

func TestInvalidator_Invalidate(t *testing.T) {
	res1 := &testResource{ttl: time.Hour, exp: time.Now().Add(time.Hour)}
	res2 := &testResource{ttl: time.Hour, exp: time.Now().Add(time.Hour)}

	s1 := onecache.New(res1)
	s2 := onecache.New(res2)

	i := &onecache.Invalidator{}
	err := i.Invalidate()
	assert.Error(t, err) // nothing to invalidate

	onecache.Attach(i, s1)
	onecache.Attach(i, s2)

	ctx := context.Background()

	_, err = s1.Get(ctx)
	assert.NoError(t, err)

	_, err = s2.Get(ctx)
	assert.NoError(t, err)

	assert.EqualValues(t, 0, res1.refreshed.Load())
	assert.EqualValues(t, 0, res2.refreshed.Load())

	err = i.Invalidate()
	assert.NoError(t, err)

	_, err = s1.Get(ctx)
	assert.NoError(t, err)

	_, err = s2.Get(ctx)
	assert.NoError(t, err)

	assert.EqualValues(t, 1, res1.refreshed.Load())
	assert.EqualValues(t, 1, res2.refreshed.Load())

	err = i.Invalidate()
	assert.ErrorIs(t, err, onecache.ErrAlreadyInvalidated)
}
