/* Copyright (C) 2016 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */


package gotracks

/* -------------------------------------------------------------------------- */

import "context"
import "time"

/* -------------------------------------------------------------------------- */

// Backoff policy for requests that failed with a transport error. Other
// errors are never retried.
type RetryPolicy struct {
  MaxAttempts   int           `yaml:"max_attempts"`
  InitialDelay  time.Duration `yaml:"initial_delay"`
  MaxDelay      time.Duration `yaml:"max_delay"`
  BackoffFactor float64       `yaml:"backoff_factor"`
}

// A single attempt, i.e. no retries.
func DefaultRetryPolicy() RetryPolicy {
  return RetryPolicy{
    MaxAttempts  : 1,
    InitialDelay : 100*time.Millisecond,
    MaxDelay     : 5*time.Second,
    BackoffFactor: 2.0 }
}

func (policy RetryPolicy) delay(attempt int) time.Duration {
  d := float64(policy.InitialDelay)
  for i := 1; i < attempt; i++ {
    d *= policy.BackoffFactor
  }
  if policy.MaxDelay > 0 && time.Duration(d) > policy.MaxDelay {
    return policy.MaxDelay
  }
  return time.Duration(d)
}

// Call f until it succeeds, fails with an error that is not retryable,
// or the maximum number of attempts is reached.
func (policy RetryPolicy) Do(ctx context.Context, f func() error) error {
  var err error
  for attempt := 1; ; attempt++ {
    if err = f(); err == nil || !IsRetryable(err) || attempt >= policy.MaxAttempts {
      return err
    }
    timer := time.NewTimer(policy.delay(attempt))
    select {
    case <-ctx.Done():
      timer.Stop()
      return err
    case <-timer.C:
    }
  }
}
