package billing

import "time"

// Clock supplies document dates. Injected so creation and validity dates are
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by the wall clock in UTC.
func SystemClock() Clock { return systemClock{} }
