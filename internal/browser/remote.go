package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tebeka/selenium"
)

// Remote is a Session backed by a WebDriver hub
type Remote struct {
	wd selenium.WebDriver
}

// RemoteDialer returns a Dialer that connects to the WebDriver hub at hubURL
// and requests the given browser engine (e.g. "chrome")
func RemoteDialer(hubURL, browserName string) Dialer {
	return func(ctx context.Context) (Session, error) {
		r, err := Dial(ctx, hubURL, browserName)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// Dial opens a new session on the WebDriver hub at hubURL
func Dial(ctx context.Context, hubURL, browserName string) (*Remote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	caps := selenium.Capabilities{"browserName": browserName}
	wd, err := selenium.NewRemote(caps, hubURL)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s session at %s: %w", browserName, hubURL, err)
	}

	return &Remote{wd: wd}, nil
}

// Navigate loads url in the current window
func (r *Remote) Navigate(url string) error {
	if err := r.wd.Get(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CurrentURL returns the URL of the current page
func (r *Remote) CurrentURL() (string, error) {
	return r.wd.CurrentURL()
}

// Find returns the first element matching sel
func (r *Remote) Find(sel Selector) (Element, error) {
	el, err := r.wd.FindElement(string(sel.By), sel.Value)
	if err != nil {
		return nil, wrapFindError(sel, err)
	}
	return &remoteElement{el: el}, nil
}

// WaitFor polls until at least one element matches sel
func (r *Remote) WaitFor(sel Selector, timeout time.Duration) ([]Element, error) {
	var found []selenium.WebElement

	condition := func(wd selenium.WebDriver) (bool, error) {
		els, err := wd.FindElements(string(sel.By), sel.Value)
		if err != nil {
			return false, nil
		}
		found = els
		return len(els) > 0, nil
	}

	if err := r.wd.WaitWithTimeout(condition, timeout); err != nil {
		return nil, fmt.Errorf("%w waiting for %s: %v", ErrTimeout, sel, err)
	}

	elements := make([]Element, len(found))
	for i, el := range found {
		elements[i] = &remoteElement{el: el}
	}
	return elements, nil
}

// WaitForURLChange polls until the current URL is no longer url
func (r *Remote) WaitForURLChange(url string, timeout time.Duration) error {
	condition := func(wd selenium.WebDriver) (bool, error) {
		current, err := wd.CurrentURL()
		if err != nil {
			return false, nil
		}
		return current != url, nil
	}

	if err := r.wd.WaitWithTimeout(condition, timeout); err != nil {
		return fmt.Errorf("%w waiting for URL to leave %s: %v", ErrTimeout, url, err)
	}
	return nil
}

// Close quits the browser and ends the WebDriver session
func (r *Remote) Close() error {
	return r.wd.Quit()
}

type remoteElement struct {
	el selenium.WebElement
}

func (e *remoteElement) Click() error {
	return e.el.Click()
}

func (e *remoteElement) SendKeys(text string) error {
	return e.el.SendKeys(text)
}

func (e *remoteElement) Text() (string, error) {
	return e.el.Text()
}

func (e *remoteElement) Attribute(name string) (string, error) {
	return e.el.GetAttribute(name)
}

func (e *remoteElement) Find(sel Selector) (Element, error) {
	el, err := e.el.FindElement(string(sel.By), sel.Value)
	if err != nil {
		return nil, wrapFindError(sel, err)
	}
	return &remoteElement{el: el}, nil
}

// wrapFindError maps WebDriver "no such element" responses to ErrNoSuchElement
func wrapFindError(sel Selector, err error) error {
	if strings.Contains(err.Error(), "no such element") {
		return fmt.Errorf("%w: %s", ErrNoSuchElement, sel)
	}
	return fmt.Errorf("failed to find %s: %w", sel, err)
}
