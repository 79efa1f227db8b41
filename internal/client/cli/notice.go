package cli

import "time"

// Notice durations, for front ends that show transient messages.
const (
	StatusNoticeDuration = 3 * time.Second
	ErrorNoticeDuration  = 5 * time.Second
)

// Notice is a user-facing outcome of an action.
type Notice struct {
	Message  string
	IsError  bool
	Duration time.Duration
}

// NoticeSink receives notices. The terminal sink prints them.
type NoticeSink func(Notice)

func statusNotice(msg string) Notice {
	return Notice{Message: msg, Duration: StatusNoticeDuration}
}

func errorNotice(msg string) Notice {
	return Notice{Message: msg, IsError: true, Duration: ErrorNoticeDuration}
}

func printNotice(n Notice) {
	if n.IsError {
		printlnFn("Error: " + n.Message)
		return
	}
	printlnFn(n.Message)
}
