package kafka

const (
	EventUserRegistered = "user.registered"
	EventClickRecorded  = "click.recorded"
)
