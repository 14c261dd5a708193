package search

import "rentalsearch/platform/apperr"

// Stable error codes reported by a session and its gateway.
const (
	CodeMissingCenter    = 450
	CodeMissingPickup    = 451
	CodeGatewayFailure   = 451
	CodeMissingDropoff   = 452
	CodeInvalidDateRange = 453
	CodeFetchInProgress  = 454
)

func errMissingCenter() error {
	return apperr.Validation("A center point for the search is required.").
		WithCode(CodeMissingCenter).
		WithMoreInfo("No center point set for the request").
		WithOp("search.FetchResults")
}

func errMissingPickup() error {
	return apperr.Validation("A pickup date is required.").
		WithCode(CodeMissingPickup).
		WithMoreInfo("No pickup date set for the request").
		WithOp("search.FetchResults")
}

func errMissingDropoff() error {
	return apperr.Validation("A dropoff date is required.").
		WithCode(CodeMissingDropoff).
		WithMoreInfo("No dropoff date set for the request").
		WithOp("search.FetchResults")
}

func errInvalidDateRange() error {
	return apperr.Validation("The dropoff date must be after the pickup date.").
		WithCode(CodeInvalidDateRange).
		WithMoreInfo("Dropoff date is not after pickup date").
		WithOp("search.FetchResults")
}

func errFetchInProgress() error {
	return apperr.Conflict("A search is already in progress.").
		WithCode(CodeFetchInProgress).
		WithMoreInfo("Wait for the current search to finish before starting another").
		WithOp("search.FetchResults")
}

// GatewayError builds the structured error a Gateway returns when the
// remote search fails. message and moreInfo come from the remote payload
// when it has them.
func GatewayError(message, moreInfo string, cause error) *apperr.Error {
	if message == "" {
		message = "Unknown error"
	}
	e := apperr.Wrap(apperr.KindUpstream, message, cause).WithCode(CodeGatewayFailure)
	if moreInfo != "" {
		e = e.WithMoreInfo(moreInfo)
	}
	return e
}
