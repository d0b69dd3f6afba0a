// Package browser drives a remote browser session.
//
// The scraper only depends on the Session and Element interfaces, so it can
// be exercised against an in-memory fake. Remote implements them on top of a
// Selenium/WebDriver hub.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// By identifies how a Selector locates elements
type By string

const (
	ByID   By = "id"
	ByName By = "name"
	ByCSS  By = "css selector"
)

// Selector locates one or more elements on the page
type Selector struct {
	By    By
	Value string
}

// ID selects elements by their id attribute
func ID(value string) Selector { return Selector{By: ByID, Value: value} }

// Name selects elements by their name attribute
func Name(value string) Selector { return Selector{By: ByName, Value: value} }

// CSS selects elements with a CSS selector
func CSS(value string) Selector { return Selector{By: ByCSS, Value: value} }

// String returns a readable form such as `name=password`
func (s Selector) String() string {
	return fmt.Sprintf("%s=%s", s.By, s.Value)
}

var (
	// ErrTimeout is returned when a bounded wait expires
	ErrTimeout = errors.New("browser: timed out")

	// ErrNoSuchElement is returned when a lookup matches nothing
	ErrNoSuchElement = errors.New("browser: no such element")
)

// Element is a single node on the current page
type Element interface {
	Click() error
	SendKeys(text string) error
	Text() (string, error)
	Attribute(name string) (string, error)

	// Find returns the first descendant matching sel
	Find(sel Selector) (Element, error)
}

// Session is an exclusively owned browser session
type Session interface {
	Navigate(url string) error
	CurrentURL() (string, error)

	// Find returns the first element matching sel, or ErrNoSuchElement
	Find(sel Selector) (Element, error)

	// WaitFor blocks until at least one element matches sel and returns all
	// matches, or ErrTimeout once timeout has elapsed
	WaitFor(sel Selector, timeout time.Duration) ([]Element, error)

	// WaitForURLChange blocks until the current URL differs from url
	WaitForURLChange(url string, timeout time.Duration) error

	// Close terminates the browser session
	Close() error
}

// Dialer starts a new Session
type Dialer func(ctx context.Context) (Session, error)
