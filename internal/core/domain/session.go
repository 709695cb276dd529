package domain

type SessionState string

const (
	SessionAnonymous SessionState = "anonymous"
	SessionNamed     SessionState = "named"
	SessionVoted     SessionState = "voted"
	SessionFinished  SessionState = "finished"
)
