package pageobj

import "time"

// SessionOption is a session option.
type SessionOption = func(*Session)

// WithLogf is a session option to specify a func to receive general logging.
func WithLogf(f func(string, ...interface{})) SessionOption {
	return func(s *Session) { s.logf = f }
}

// WithDebugf is a session option to specify a func to receive debug logging
// (ie, every driver command and wait).
func WithDebugf(f func(string, ...interface{})) SessionOption {
	return func(s *Session) { s.debugf = f }
}

// WithErrorf is a session option to specify a func to receive error logging.
func WithErrorf(f func(string, ...interface{})) SessionOption {
	return func(s *Session) { s.errorf = f }
}

// WithPollInterval is a session option to set the interval between two
// evaluations of a condition. It takes precedence over the driver's own
// interval.
func WithPollInterval(interval time.Duration) SessionOption {
	return func(s *Session) { s.interval = interval }
}

// WithWaitTimeout is a session option to set the timeout used by the WaitFor*
// and FindWait* funcs when passed a non-positive timeout. It defaults to 10
// seconds.
func WithWaitTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) { s.waitTimeout = timeout }
}

// WithUntilTimeout is a session option to set the timeout used by WaitUntil
// when passed a non-positive timeout. It defaults to 30 seconds.
func WithUntilTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) { s.untilTimeout = timeout }
}

// WithBaseURL is a session option to set the URL that relative page URLs are
// resolved against when navigating.
func WithBaseURL(urlstr string) SessionOption {
	return func(s *Session) { s.baseURL = urlstr }
}
