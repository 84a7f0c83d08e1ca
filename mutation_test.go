//go:build mutation

package masque

import (
	"testing"

	"github.com/gtramontina/ooze"
)

func TestMutation(t *testing.T) {
	ooze.Release(
		t,
		ooze.WithTestCommand("go test ./..."),
		ooze.Parallel(),
		ooze.IgnoreSourceFiles("UAT/.*|.*_test.go"),
		ooze.WithMinimumThreshold(0.85),
		ooze.WithRepositoryRoot("."),
		ooze.ForceColors(),
	)
}
