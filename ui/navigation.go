package ui

import (
	"sync"
	"time"
)

// Page identifies a console page that can be navigated to.
type Page string

const (
	PageLogin      Page = "login"
	PageFeedback   Page = "feedback"
	PageDashboard  Page = "dashboard"
	PageCategories Page = "categories"
	PagePosts      Page = "posts"
	PageUsers      Page = "users"
	PageReports    Page = "reports"
	PageHomepage   Page = "homepage"
)

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(page Page)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(page Page)

func (f NavigatorFunc) Navigate(page Page) { f(page) }

// Redirector navigates now or after a delay. At most one delayed redirect is pending; scheduling
// another replaces it.
type Redirector struct {
	mu      sync.Mutex
	nav     Navigator
	timer   *time.Timer
	target  Page
	pending bool
	gen     uint64
}

func NewRedirector(nav Navigator) *Redirector {
	return &Redirector{nav: nav}
}

// Now cancels any pending redirect and navigates immediately.
func (r *Redirector) Now(page Page) {
	r.Stop()
	r.nav.Navigate(page)
}

// After schedules a redirect. A non-positive delay navigates immediately.
func (r *Redirector) After(delay time.Duration, page Page) {
	if delay <= 0 {
		r.Now(page)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.gen++
	gen := r.gen
	r.target = page
	r.pending = true
	r.timer = time.AfterFunc(delay, func() { r.fire(gen) })
}

func (r *Redirector) fire(gen uint64) {
	r.mu.Lock()
	if !r.pending || r.gen != gen {
		r.mu.Unlock()
		return
	}
	page := r.target
	r.pending = false
	r.timer = nil
	r.mu.Unlock()

	r.nav.Navigate(page)
}

// Pending reports the scheduled target, if any.
func (r *Redirector) Pending() (Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target, r.pending
}

// Flush fires a pending redirect immediately. It reports whether one was pending.
func (r *Redirector) Flush() bool {
	r.mu.Lock()
	if !r.pending {
		r.mu.Unlock()
		return false
	}
	gen := r.gen
	r.timer.Stop()
	r.mu.Unlock()

	r.fire(gen)
	return true
}

// Stop cancels a pending redirect without navigating.
func (r *Redirector) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = false
	r.gen++
}
