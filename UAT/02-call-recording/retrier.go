// Package uat02 is acceptance-test material: a retrying caller whose
// interactions with its callback are verified through a recording masque.
package uat02

// Retry invokes attempt up to limit times, stopping at the first success.
// It reports whether any attempt succeeded.
func Retry(limit int, attempt func(try int) bool) bool {
	for try := range limit {
		if attempt(try) {
			return true
		}
	}

	return false
}
