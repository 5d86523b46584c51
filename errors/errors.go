package errors

import "fmt"

var (
	ErrModelUnavailable       = fmt.Errorf("trained model artifact not found")
	ErrEmptyCorpus            = fmt.Errorf("training corpus contains no examples")
	ErrEnrichmentUnavailable  = fmt.Errorf("enrichment service unavailable")
	ErrOrderNotFound          = fmt.Errorf("order not found")
	ErrProductNotFound        = fmt.Errorf("product not found")
	ErrMissingSessionID       = fmt.Errorf("session id is required")
	ErrInvalidSessionID       = fmt.Errorf("session id is invalid")
	ErrTurnBufferFull         = fmt.Errorf("turn log buffer is full")
	ErrWorkerPanic            = fmt.Errorf("worker panic")
	ErrVocabularyNotFitted    = fmt.Errorf("vectorizer has not been fitted")
	ErrArtifactVersionUnknown = fmt.Errorf("unsupported model artifact version")
)
