package onecache_test

import (
	"context"
	"fmt"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"github.com/vearutop/onecache"
)

func ExampleNew() {
	// A rotating credential fetched from a remote issuer.
	token := onecache.NewRenewable(time.Minute, func(_ context.Context) (string, error) {
		return "tok-1", nil
	})

	// Create store instance.
	s := onecache.New(token, onecache.Config{
		Name:   "api_token",
		Logger: &ctxd.LoggerMock{},
		Stats:  &stats.TrackerMock{},

		// Callers joining an in-flight refresh give up after this long.
		WaitTimeout: 100 * time.Millisecond,
	})

	// Use context if available.
	ctx := context.TODO()

	// Concurrent Get calls on an expired value run a single refresh.
	h, err := s.Get(ctx)
	if err != nil {
		fmt.Println(err)

		return
	}

	h.With(func(value *onecache.Renewable[string]) {
		fmt.Println(value.Value())
	})

	// Output:
	// tok-1
}
