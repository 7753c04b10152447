// Package shadowtest is a pure-Go fake DOM implementing the bridge
// interfaces, used by property and scenario tests that exercise the Shadow
// DOM Mirror and Layout Tracker without a real browser.
package shadowtest

import (
	"strings"
	"sync"

	"github.com/ozanturksever/claritygo/bridge"
)

// Element implements bridge.DOMElement over an in-memory tree.
type Element struct {
	mu             sync.RWMutex
	tagName        string
	id             string
	className      string
	textContent    string
	innerHTML      string
	attributes     map[string]string
	style          *Style
	children       []*Element
	parent         *Element
	eventListeners map[string][]func(bridge.DOMEvent)
	box            box
}

type box struct {
	x, y, width, height   float64
	scrollX, scrollY      float64
	scrollable            bool
}

// NewElement creates a detached element with the given tag name.
func NewElement(tagName string) *Element {
	return &Element{
		tagName:        tagName,
		attributes:     make(map[string]string),
		style:          NewStyle(),
		eventListeners: make(map[string][]func(bridge.DOMEvent)),
	}
}

func (e *Element) TagName() string { e.mu.RLock(); defer e.mu.RUnlock(); return e.tagName }
func (e *Element) ID() string      { e.mu.RLock(); defer e.mu.RUnlock(); return e.id }

func (e *Element) SetID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.id = id
	e.attributes["id"] = id
}

func (e *Element) ClassName() string { e.mu.RLock(); defer e.mu.RUnlock(); return e.className }

func (e *Element) SetClassName(className string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.className = className
	e.attributes["class"] = className
}

func (e *Element) GetAttribute(name string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attributes[name]
}

func (e *Element) SetAttribute(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attributes[name] = value
	switch name {
	case "class":
		e.className = value
	case "id":
		e.id = value
	}
}

func (e *Element) RemoveAttribute(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.attributes, name)
	switch name {
	case "class":
		e.className = ""
	case "id":
		e.id = ""
	}
}

func (e *Element) HasClass(className string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range strings.Fields(e.className) {
		if c == className {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(className string) {
	if e.HasClass(className) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.className == "" {
		e.className = className
	} else {
		e.className += " " + className
	}
}

func (e *Element) RemoveClass(className string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var kept []string
	for _, c := range strings.Fields(e.className) {
		if c != className {
			kept = append(kept, c)
		}
	}
	e.className = strings.Join(kept, " ")
}

func (e *Element) ToggleClass(className string) {
	if e.HasClass(className) {
		e.RemoveClass(className)
	} else {
		e.AddClass(className)
	}
}

func (e *Element) QuerySelector(selector string) bridge.DOMElement {
	e.mu.RLock()
	children := append([]*Element(nil), e.children...)
	e.mu.RUnlock()
	for _, c := range children {
		if matches(c, selector) {
			return c
		}
		if found := c.QuerySelector(selector); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) QuerySelectorAll(selector string) []bridge.DOMElement {
	e.mu.RLock()
	children := append([]*Element(nil), e.children...)
	e.mu.RUnlock()
	var out []bridge.DOMElement
	for _, c := range children {
		if matches(c, selector) {
			out = append(out, c)
		}
		out = append(out, c.QuerySelectorAll(selector)...)
	}
	return out
}

func (e *Element) AddEventListener(eventType string, listener func(bridge.DOMEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eventListeners[eventType] = append(e.eventListeners[eventType], listener)
}

func (e *Element) RemoveEventListener(eventType string, _ func(bridge.DOMEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.eventListeners, eventType)
}

func (e *Element) Fire(eventType string, event bridge.DOMEvent) {
	e.mu.RLock()
	listeners := append([]func(bridge.DOMEvent){}, e.eventListeners[eventType]...)
	e.mu.RUnlock()
	for _, l := range listeners {
		l(event)
	}
}

func (e *Element) Click() { e.Fire("click", NewEvent("click", e)) }
func (e *Element) Focus() { e.Fire("focus", NewEvent("focus", e)) }
func (e *Element) Blur()  { e.Fire("blur", NewEvent("blur", e)) }

func (e *Element) InnerHTML() string { e.mu.RLock(); defer e.mu.RUnlock(); return e.innerHTML }
func (e *Element) SetInnerHTML(html string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.innerHTML = html
}

func (e *Element) TextContent() string { e.mu.RLock(); defer e.mu.RUnlock(); return e.textContent }
func (e *Element) SetTextContent(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.textContent = text
}

func (e *Element) Value() string         { return e.GetAttribute("value") }
func (e *Element) SetValue(value string) { e.SetAttribute("value", value) }

func (e *Element) Style() bridge.DOMStyle { return e.style }

func (e *Element) Parent() bridge.DOMElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *Element) Children() []bridge.DOMElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]bridge.DOMElement, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

func (e *Element) AppendChild(child bridge.DOMElement) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.children = append(e.children, c)
	c.parent = e
}

func (e *Element) RemoveChild(child bridge.DOMElement) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, ch := range e.children {
		if ch == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (e *Element) Remove() {
	e.mu.RLock()
	parent := e.parent
	e.mu.RUnlock()
	if parent != nil {
		parent.RemoveChild(e)
	}
}

func (e *Element) Clone(deep bool) bridge.DOMElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	clone := NewElement(e.tagName)
	clone.id = e.id
	clone.className = e.className
	clone.textContent = e.textContent
	clone.innerHTML = e.innerHTML
	for k, v := range e.attributes {
		clone.attributes[k] = v
	}
	if deep {
		for _, c := range e.children {
			clone.AppendChild(c.Clone(true))
		}
	}
	return clone
}

func (e *Element) IsVisible() bool {
	return e.style.Get("display") != "none"
}

func (e *Element) Raw() interface{} { return e }

// SetBoundingBox fixes the element's box for BoundingBox to report, letting
// tests construct elements with known geometry without a real layout engine.
func (e *Element) SetBoundingBox(x, y, width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.box.x, e.box.y, e.box.width, e.box.height = x, y, width, height
}

// SetScrollable marks the element as overflowing (or not), and sets its
// current scroll offset.
func (e *Element) SetScrollable(scrollable bool, scrollX, scrollY float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.box.scrollable = scrollable
	e.box.scrollX, e.box.scrollY = scrollX, scrollY
}

// BoundingBox implements bridge.Geometric.
func (e *Element) BoundingBox() (x, y, width, height, scrollX, scrollY float64, scrollable bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.box.x, e.box.y, e.box.width, e.box.height, e.box.scrollX, e.box.scrollY, e.box.scrollable
}

func matches(e *Element, selector string) bool {
	selector = strings.TrimSpace(selector)
	switch {
	case strings.HasPrefix(selector, "#"):
		return e.ID() == selector[1:]
	case strings.HasPrefix(selector, "."):
		return e.HasClass(selector[1:])
	default:
		return strings.EqualFold(e.TagName(), selector)
	}
}

// Style implements bridge.DOMStyle.
type Style struct {
	mu         sync.RWMutex
	properties map[string]string
}

func NewStyle() *Style { return &Style{properties: make(map[string]string)} }

func (s *Style) Get(property string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties[property]
}

func (s *Style) Set(property, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[property] = value
}

func (s *Style) Remove(property string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.properties, property)
}

// Event implements bridge.DOMEvent.
type Event struct {
	eventType string
	target    bridge.DOMElement
	prevented bool
	stopped   bool
}

func NewEvent(eventType string, target bridge.DOMElement) *Event {
	return &Event{eventType: eventType, target: target}
}

func (e *Event) Type() string               { return e.eventType }
func (e *Event) Target() bridge.DOMElement  { return e.target }
func (e *Event) PreventDefault()            { e.prevented = true }
func (e *Event) StopPropagation()           { e.stopped = true }
func (e *Event) IsDefaultPrevented() bool   { return e.prevented }
func (e *Event) IsPropagationStopped() bool { return e.stopped }

// Document implements bridge.DOMDocument over a fake Element tree rooted at
// a synthetic body element.
type Document struct {
	mu        sync.RWMutex
	body      *Element
	elements  map[string]*Element
	listeners map[string][]func(bridge.DOMEvent)
	title     string
}

func NewDocument() *Document {
	return &Document{
		body:      NewElement("body"),
		elements:  make(map[string]*Element),
		listeners: make(map[string][]func(bridge.DOMEvent)),
	}
}

// Body exposes the fake document's root element for tests to build a tree
// under.
func (d *Document) Body() bridge.DOMElement { return d.body }
func (d *Document) Head() bridge.DOMElement { return NewElement("head") }
func (d *Document) Title() string           { d.mu.RLock(); defer d.mu.RUnlock(); return d.title }
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}
func (d *Document) URL() string        { return "http://localhost/" }
func (d *Document) ReadyState() string { return "complete" }

func (d *Document) GetElementByID(id string) bridge.DOMElement {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if el, ok := d.elements[id]; ok {
		return el
	}
	return nil
}

// Register tracks el under id so GetElementByID can find it, mirroring how a
// page assigns ids to elements it creates.
func (d *Document) Register(id string, el *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el.SetID(id)
	d.elements[id] = el
}

func (d *Document) QuerySelector(selector string) bridge.DOMElement {
	if selector == "body" {
		return d.body
	}
	return d.body.QuerySelector(selector)
}

func (d *Document) QuerySelectorAll(selector string) []bridge.DOMElement {
	if selector == "body" {
		return []bridge.DOMElement{d.body}
	}
	return d.body.QuerySelectorAll(selector)
}

func (d *Document) CreateElement(tagName string) bridge.DOMElement { return NewElement(tagName) }

func (d *Document) CreateTextNode(text string) bridge.DOMElement {
	n := NewElement("#text")
	n.SetTextContent(text)
	return n
}

func (d *Document) AddEventListener(eventType string, listener func(bridge.DOMEvent)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

func (d *Document) RemoveEventListener(eventType string, _ func(bridge.DOMEvent)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.listeners, eventType)
}
