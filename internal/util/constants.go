package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// Context keys and headers shared by middleware and controllers.
const (
	ContextSessionKey = "session"
	HeaderDeviceID    = "X-Device-ID"
)

const (
	ArchiveNone  = "none"
	ArchiveMinio = "minio"
)

const (
	MaxDeviceIDLength = 64
)
