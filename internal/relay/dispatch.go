package relay

// DispatchResult is the uniform outcome of a single send attempt.
type DispatchResult struct {
	// OK reports whether the provider accepted the message
	OK bool
	// ID is the provider's message identifier, when one was returned
	ID string
	// Kind classifies the failure when OK is false
	Kind ErrorKind
	// Detail is the raw provider error text, for logs and non-production
	// responses only
	Detail string
}

// Success builds a successful dispatch result
func Success(id string) DispatchResult {
	return DispatchResult{OK: true, ID: id}
}

// Failure classifies a send error into a dispatch result
func Failure(err error) DispatchResult {
	re := ClassifySendError(err)
	return DispatchResult{OK: false, Kind: re.Kind, Detail: re.Error()}
}
