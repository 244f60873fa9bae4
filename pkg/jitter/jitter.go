// Package jitter считает задержки повторов с джиттером, чтобы повторные попытки
// нескольких клиентов не совпадали по времени.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает d, увеличенную на случайную долю из [0, jitterFactor).
// Результат находится в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	f := globalRand.Float64()
	randMutex.Unlock()

	return apply(d, jitterFactor, f)
}

// ExponentialBackoff удваивает base на каждую попытку (attempt с нуля), не превышая max,
// и добавляет джиттер. Непозитивный base возвращает 0.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	return Duration(backoff(base, max, attempt), jitterFactor)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}

	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if max > 0 && d >= max {
			return max
		}
	}
	if max > 0 && d > max {
		return max
	}

	return d
}

func apply(d time.Duration, jitterFactor, f float64) time.Duration {
	if jitterFactor <= 0 {
		return d
	}

	return d + time.Duration(f*jitterFactor*float64(d))
}
