package domain

type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Breadcrumb struct {
	Category string
	Message  string
	Level    Level
}
