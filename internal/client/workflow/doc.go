// Package workflow implements the two state machines of the sharelink client.
//
// UploadWorkflow takes staged content through submission:
//
//	Idle(mode, staged) -> Submitting(progress) -> Succeeded(result) | Failed(error)
//
// LinkWorkflow resolves a short identifier into something viewable:
//
//	Loading -> Ready(metadata) | Expired | NotFound
//
// Both are safe for concurrent use. Backend failures never escape as errors;
// they become Failed, Expired or NotFound with a short user-facing message.
// Methods return an error only when called in a state that does not allow
// them (ErrInvalidTransition) or when input is rejected at the boundary.
//
// Clock, clipboard, navigator and logger are injected with Options.
package workflow
