package domain

// ErrorKind enumerates the transport-independent error taxonomy of spec
// §7. The HTTP boundary is the only place that knows about status codes;
// everything below it deals only in Kind.
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "InvalidInput"
	KindUnauthorized          ErrorKind = "Unauthorized"
	KindDraftNotFound         ErrorKind = "DraftNotFound"
	KindAssetNotFound         ErrorKind = "AssetNotFound"
	KindDraftExpired          ErrorKind = "DraftExpired"
	KindDraftAlreadyCommitted ErrorKind = "DraftAlreadyCommitted"
	KindCommitInProgress      ErrorKind = "CommitInProgress"
	KindPreviewUnsafe         ErrorKind = "PreviewUnsafe"
	KindInternal              ErrorKind = "Internal"
)

// KindedError carries one of the ErrorKind values through the core
// unchanged, so the HTTP boundary can map it to a status code without the
// core ever importing net/http (spec §7 "Propagation policy").
type KindedError struct {
	Kind    ErrorKind
	Message string
	// Details is optional structured context; the HTTP boundary copies it
	// into the error envelope's details field.
	Details any
}

func (e *KindedError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &KindedError{Kind: X}) match any KindedError of
// the same Kind, regardless of Message/Details — an error built with
// NewKindedError and its own message still compares equal to the
// zero-detail sentinel of that kind below.
func (e *KindedError) Is(target error) bool {
	other, ok := target.(*KindedError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func NewKindedError(kind ErrorKind, message string) *KindedError {
	return &KindedError{Kind: kind, Message: message}
}

func NewKindedErrorWithDetails(kind ErrorKind, message string, details any) *KindedError {
	return &KindedError{Kind: kind, Message: message, Details: details}
}

// Sentinel zero-detail instances for errors.Is comparisons at call sites
// that don't need to carry details themselves.
var (
	ErrDraftNotFound    = &KindedError{Kind: KindDraftNotFound, Message: "draft not found"}
	ErrDraftExpired     = &KindedError{Kind: KindDraftExpired, Message: "draft expired"}
	ErrAssetNotFound    = &KindedError{Kind: KindAssetNotFound, Message: "asset not found"}
	ErrUnauthorized     = &KindedError{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrCommitInProgress = &KindedError{Kind: KindCommitInProgress, Message: "commit already in progress"}
	ErrPreviewUnsafe    = &KindedError{Kind: KindPreviewUnsafe, Message: "unsafe content detected in preview"}
	ErrInternal         = &KindedError{Kind: KindInternal, Message: "internal error"}
)
