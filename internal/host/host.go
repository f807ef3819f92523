package host

import (
	"context"

	"jobboard-scraper/internal/dom"
)

// ReadyComplete — значение document.readyState после полной загрузки
const ReadyComplete = "complete"

// Host — окружение, из которого экстрактор читает страницу:
// текущий URL, сигнал готовности и дерево документа.
type Host interface {
	URL() string

	// ReadyState возвращает текущее значение document.readyState
	ReadyState(ctx context.Context) (string, error)

	// WaitLoad блокирует до однократного события загрузки или отмены ctx
	WaitLoad(ctx context.Context) error

	Document(ctx context.Context) (dom.Node, error)
}

// Opener открывает страницу и возвращает её вместе с функцией освобождения
type Opener interface {
	Open(ctx context.Context, url string) (Host, func(), error)
}
