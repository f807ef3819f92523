package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Node — минимальный интерфейс дерева документа: поиск по селектору, текст, атрибуты.
// Экстракторы работают только через него, поэтому тесты могут подставлять свои деревья.
type Node interface {
	// Find возвращает потомков, подходящих под селектор, в порядке документа
	Find(selector string) ([]Node, error)

	// Closest ищет ближайший элемент (включая сам узел) вверх по дереву
	Closest(selector string) (Node, bool, error)

	// Text возвращает сырой текст узла без нормализации
	Text() string

	Attr(name string) (string, bool)

	// HTML возвращает внутренний HTML узла
	HTML() (string, error)
}

type selectionNode struct {
	sel *goquery.Selection
}

// Parse парсит HTML и возвращает корень документа
func Parse(html string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &selectionNode{sel: doc.Selection}, nil
}

func compile(selector string) (cascadia.Selector, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, fmt.Errorf("empty selector")
	}
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return m, nil
}

func (n *selectionNode) Find(selector string) ([]Node, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}

	found := n.sel.FindMatcher(m)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &selectionNode{sel: s})
	})
	return nodes, nil
}

func (n *selectionNode) Closest(selector string) (Node, bool, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, false, err
	}

	found := n.sel.ClosestMatcher(m)
	if found.Length() == 0 {
		return nil, false, nil
	}
	return &selectionNode{sel: found.First()}, true, nil
}

func (n *selectionNode) Text() string {
	return n.sel.Text()
}

func (n *selectionNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n *selectionNode) HTML() (string, error) {
	return n.sel.Html()
}
