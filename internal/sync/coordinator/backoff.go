package coordinator

import "time"

// backoffUnit is the delay added per consecutive failure
const backoffUnit = time.Second

// nextDelay maps the consecutive failure count to the wait before the next
// cycle: the nominal interval when healthy, otherwise a linear ramp of one
// unit per failure, capped at the nominal interval so repeated failures
// never slow the loop below its normal cadence.
func nextDelay(failures int, nominal time.Duration) time.Duration {
	if failures <= 0 {
		return nominal
	}

	delay := time.Duration(failures) * backoffUnit
	if delay > nominal {
		return nominal
	}
	return delay
}
