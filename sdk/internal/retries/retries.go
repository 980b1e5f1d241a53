package retries

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"
)

var (
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMu     sync.Mutex
)

// ManageRetries invokes fn until it reports that no retry is warranted, the
// maximum number of attempts has been made, or ctx is canceled. Between
// attempts it sleeps for a jittered, exponentially increasing interval capped
// at maxBackoff. fn returns true if the attempt failed in a way that may
// succeed if retried. The error from the final attempt is returned as is.
func ManageRetries(
	ctx context.Context,
	process string,
	maxAttempts int,
	maxBackoff time.Duration,
	fn func() (bool, error),
) error {
	var failedAttempts int
	for {
		retry, err := fn()
		if !retry {
			return err
		}
		failedAttempts++
		if failedAttempts >= maxAttempts {
			log.Printf(
				"WARNING: failed %d attempt(s) to %s; giving up: %s",
				failedAttempts,
				process,
				err,
			)
			return err
		}
		delay := jitteredExpBackoff(failedAttempts, maxBackoff)
		log.Printf(
			"WARNING: failed %d attempts(s) to %s; will retry in %s: %s",
			failedAttempts,
			process,
			delay,
			err,
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func jitteredExpBackoff(
	failureCount int,
	maxDelay time.Duration,
) time.Duration {
	base := math.Pow(2, float64(failureCount))
	capped := math.Min(base, maxDelay.Seconds())
	randMu.Lock()
	jitter := seededRand.Float64()
	randMu.Unlock()
	jittered := (1 + jitter) * (capped / 2)
	scaled := jittered * float64(time.Second)
	return time.Duration(scaled)
}
