package domain

// Closed set of error codes surfaced by the API.
const (
	CodeInvalidPostalCode      = "INVALID_POSTAL_CODE"
	CodeAddressNotFound        = "ADDRESS_NOT_FOUND"
	CodeCoordinatesUnavailable = "COORDINATES_UNAVAILABLE"
	CodeCalculationError       = "CALCULATION_ERROR"
	CodeMissingInput           = "MISSING_INPUT"
	CodeEmptyAddress           = "EMPTY_ADDRESS"
	CodeNotFound               = "NOT_FOUND"
	CodeInternalError          = "INTERNAL_ERROR"
)

// CodedError carries one of the closed error codes above through the
// resolver and calculator stages. Callers branch on Code; Message is
// safe to return to clients.
type CodedError struct {
	Code    string
	Message string
}

func (e *CodedError) Error() string { return e.Message }

func NewCodedError(code, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}
