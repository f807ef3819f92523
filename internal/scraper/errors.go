package scraper

import (
	"errors"
	"fmt"
)

// Причины прерывания прохода. Текст ошибки уходит в ListResult.Error как есть.
var (
	ErrLoginRequired        = errors.New("Login required")
	ErrNoItemsFound         = errors.New("No items found")
	ErrReadinessTimeout     = errors.New("Readiness timeout")
	ErrReadinessInterrupted = errors.New("Readiness wait interrupted")
	ErrDocumentUnavailable  = errors.New("Document unavailable")
)

// ErrCardRejected — у карточки нет title или company
var ErrCardRejected = errors.New("card rejected")

var abortReasons = []error{
	ErrLoginRequired,
	ErrNoItemsFound,
	ErrReadinessTimeout,
	ErrReadinessInterrupted,
	ErrDocumentUnavailable,
}

// abortReason возвращает короткую причину для поля error результата
func abortReason(err error) string {
	for _, reason := range abortReasons {
		if errors.Is(err, reason) {
			return reason.Error()
		}
	}
	return err.Error()
}

// CardError — ошибка обработки одной карточки (проход продолжается)
type CardError struct {
	Index int
	Err   error
}

func (e *CardError) Error() string {
	return fmt.Sprintf("card %d: %v", e.Index, e.Err)
}

func (e *CardError) Unwrap() error {
	return e.Err
}
