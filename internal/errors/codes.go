package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	CodeTransportError      Code = "TRANSPORT_ERROR"
	CodeHTTPStatusError     Code = "HTTP_STATUS_ERROR"
	CodeResourceUnsupported Code = "RESOURCE_UNSUPPORTED"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeParseError          Code = "PARSE_ERROR"

	CodeTranscriptWriteError Code = "TRANSCRIPT_WRITE_ERROR"
)

func (c Code) String() string {
	return string(c)
}
