package scraper

import (
	"strings"

	"jobboard-scraper/internal/dom"
	"jobboard-scraper/internal/normalize"
)

// Field — результат разрешения одного поля: значение либо отсутствие.
// Node и Selector заполнены, если какой-то кандидат сработал.
type Field struct {
	Value    string
	Raw      string
	Node     dom.Node
	Selector string
}

// Present — у поля есть непустой текст
func (f Field) Present() bool {
	return f.Value != ""
}

// Resolve пробует кандидатов по очереди; побеждает первый селектор,
// нашедший хотя бы один элемент (берётся первый в порядке документа).
// Ошибки и паники отдельного кандидата означают "не найдено".
func Resolve(container dom.Node, candidates []string) Field {
	for _, selector := range candidates {
		node, ok := findFirst(container, selector)
		if !ok {
			continue
		}
		raw, ok := readText(node)
		if !ok {
			continue
		}
		return Field{Value: normalize.Text(raw), Raw: raw, Node: node, Selector: selector}
	}
	return Field{}
}

// ResolveAttr — как Resolve, но значение берётся из первого непустого атрибута
func ResolveAttr(container dom.Node, candidates []string, attrs ...string) Field {
	for _, selector := range candidates {
		node, ok := findFirst(container, selector)
		if !ok {
			continue
		}
		field := Field{Node: node, Selector: selector}
		for _, attr := range attrs {
			if v, ok := readAttr(node, attr); ok && strings.TrimSpace(v) != "" {
				field.Raw = v
				field.Value = strings.TrimSpace(v)
				break
			}
		}
		return field
	}
	return Field{}
}

// ResolveAll собирает непустые тексты всех совпадений всех кандидатов
// (сначала по кандидатам, внутри кандидата в порядке документа)
func ResolveAll(container dom.Node, candidates []string) []string {
	values := []string{}
	for _, selector := range candidates {
		nodes, ok := findAll(container, selector)
		if !ok {
			continue
		}
		values = appendTexts(values, nodes)
	}
	return values
}

// ResolveOrdered собирает непустые тексты совпадений всех кандидатов одной группой:
// в порядке документа, узел под несколькими кандидатами попадает один раз.
func ResolveOrdered(container dom.Node, candidates []string) []string {
	values := []string{}
	if len(candidates) == 0 {
		return values
	}

	if nodes, ok := findAll(container, strings.Join(candidates, ", ")); ok {
		return appendTexts(values, nodes)
	}

	// группа не скомпилировалась целиком: оставляем только рабочих кандидатов
	usable := make([]string, 0, len(candidates))
	for _, selector := range candidates {
		if _, ok := findFirst(container, selector); ok {
			usable = append(usable, selector)
		}
	}
	if len(usable) == 0 {
		return values
	}
	if nodes, ok := findAll(container, strings.Join(usable, ", ")); ok {
		return appendTexts(values, nodes)
	}
	return ResolveAll(container, usable)
}

func appendTexts(values []string, nodes []dom.Node) []string {
	for _, node := range nodes {
		raw, ok := readText(node)
		if !ok {
			continue
		}
		if text := normalize.Text(raw); text != "" {
			values = append(values, text)
		}
	}
	return values
}

// Exists — есть ли хоть одно совпадение; возвращает сработавший селектор
func Exists(container dom.Node, candidates []string) (string, bool) {
	for _, selector := range candidates {
		if _, ok := findFirst(container, selector); ok {
			return selector, true
		}
	}
	return "", false
}

func findAll(container dom.Node, selector string) (nodes []dom.Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			nodes, ok = nil, false
		}
	}()

	nodes, err := container.Find(selector)
	if err != nil || len(nodes) == 0 {
		return nil, false
	}
	return nodes, true
}

func findFirst(container dom.Node, selector string) (dom.Node, bool) {
	nodes, ok := findAll(container, selector)
	if !ok {
		return nil, false
	}
	return nodes[0], true
}

func readText(node dom.Node) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()
	return node.Text(), true
}

func readAttr(node dom.Node, name string) (value string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			value, ok = "", false
		}
	}()
	return node.Attr(name)
}
