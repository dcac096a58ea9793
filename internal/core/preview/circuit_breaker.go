package preview

import (
	"fmt"
	"log"
	"sync"
	"time"
)

type circuitState int

const (
	stateClosed   circuitState = iota // normal operation
	stateOpen                         // strategy failing, skip it
	stateHalfOpen                     // open period elapsed, allow one probe
)

// circuitBreaker tracks consecutive failures per strategy so a broken
// upstream (provider outage, sustained blocking) is skipped instead of
// adding its timeout to every resolution.
type circuitBreaker struct {
	failures         map[string]int
	lastFailure      map[string]time.Time
	state            map[string]circuitState
	failureThreshold int
	openDuration     time.Duration
	mu               sync.Mutex
}

func newCircuitBreaker() *circuitBreaker {
	return &circuitBreaker{
		failureThreshold: 3,
		openDuration:     5 * time.Minute,
		failures:         make(map[string]int),
		lastFailure:      make(map[string]time.Time),
		state:            make(map[string]circuitState),
	}
}

// canAttempt reports whether the strategy should be tried. While the
// circuit is open the returned error says when the next probe is allowed.
func (cb *circuitBreaker) canAttempt(strategy string) (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state[strategy] {
	case stateOpen:
		if time.Since(cb.lastFailure[strategy]) > cb.openDuration {
			cb.state[strategy] = stateHalfOpen
			log.Printf("[PREVIEW-CIRCUIT] Circuit for strategy '%s' is now HALF-OPEN (testing)", strategy)
			return true, nil
		}
		nextRetry := cb.lastFailure[strategy].Add(cb.openDuration)
		return false, fmt.Errorf(
			"circuit breaker open for strategy '%s' (failures: %d, next retry: %s)",
			strategy, cb.failures[strategy], nextRetry.Format("15:04:05"),
		)
	default:
		return true, nil
	}
}

// recordSuccess resets failure tracking for the strategy.
func (cb *circuitBreaker) recordSuccess(strategy string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state[strategy] != stateClosed {
		log.Printf("[PREVIEW-CIRCUIT] Circuit for strategy '%s' is now CLOSED (recovered)", strategy)
	}

	delete(cb.failures, strategy)
	delete(cb.lastFailure, strategy)
	cb.state[strategy] = stateClosed
}

// recordFailure counts a failed attempt and opens the circuit once the
// threshold is reached.
func (cb *circuitBreaker) recordFailure(strategy string, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures[strategy]++
	cb.lastFailure[strategy] = time.Now()

	if cb.failures[strategy] >= cb.failureThreshold {
		if cb.state[strategy] != stateOpen {
			log.Printf(
				"[PREVIEW-CIRCUIT] Opening circuit for strategy '%s' after %d consecutive failures. Last error: %v",
				strategy, cb.failures[strategy], err,
			)
		}
		cb.state[strategy] = stateOpen
		return
	}

	log.Printf("[PREVIEW-CIRCUIT] Failure %d/%d for strategy '%s': %v",
		cb.failures[strategy], cb.failureThreshold, strategy, err)
}
