package common

const (
	// AdminIdentity is the reserved identity allowed to list and delete
	// accounts and to export aggregate data.
	AdminIdentity = "admin"

	// TimestampLayout is the format of every persisted timestamp.
	TimestampLayout = "2006-01-02 15:04:05"

	// MinConfidence and MaxConfidence bound the confidence scale.
	MinConfidence = 1
	MaxConfidence = 5

	// DefaultConfidence is preselected when a question has no prior answer.
	DefaultConfidence = 3
)
