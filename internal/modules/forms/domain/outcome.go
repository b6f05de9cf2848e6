package domain

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is the one message a submission surfaces to the user.
type Notification struct {
	Level   Level
	Message string
}

func Success(msg string) Notification {
	return Notification{Level: LevelInfo, Message: msg}
}

func Failure(msg string) Notification {
	return Notification{Level: LevelError, Message: msg}
}

// BackendFailure formats a reason reported by the server.
func BackendFailure(reason string) Notification {
	return Failure("Error: " + reason)
}

// Outcome is the result of one pass through the submission states.
type Outcome struct {
	State        State
	Notification Notification
}

// Reply is the backend's verdict on a submitted record.
type Reply struct {
	OK     bool
	Reason string
}
