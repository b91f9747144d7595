package security

import "go.uber.org/zap/zapcore"

// Severity is derived from the EventType, never from caller input.
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityMEDIUM   Severity = "MEDIUM"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

var EventSeverityMap = map[EventType]Severity{
	EventLoginSuccess:    SeverityINFO,
	EventRegistered:      SeverityINFO,
	EventPasswordChanged: SeverityINFO,
	EventAdminAction:     SeverityINFO,

	EventLoginFailed:        SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventUploadRejected:     SeverityWARN,

	EventLoginBlocked:       SeverityHIGH,
	EventUnauthorizedAccess: SeverityHIGH,
	EventForbiddenAccess:    SeverityHIGH,

	EventMalwareDetected: SeverityCRITICAL,
}

// GetSeverity defaults to MEDIUM for unmapped events.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

func IsHighOrAbove(eventType EventType) bool {
	severity := GetSeverity(eventType)
	return severity == SeverityHIGH || severity == SeverityCRITICAL
}

func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH, SeverityCRITICAL:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
