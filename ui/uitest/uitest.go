// Package uitest provides recording fakes for the ui collaborators.
package uitest

import (
	"sync"

	"github.com/jrsteele09/go-admin-console/ui"
)

// Note is a recorded notification.
type Note struct {
	Message string
	Kind    ui.Kind
}

// Notifier records every notification.
type Notifier struct {
	mu    sync.Mutex
	notes []Note
}

func (n *Notifier) Notify(message string, kind ui.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, Note{Message: message, Kind: kind})
}

func (n *Notifier) Notes() []Note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Note(nil), n.notes...)
}

// Last returns the most recent notification.
func (n *Notifier) Last() (Note, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notes) == 0 {
		return Note{}, false
	}
	return n.notes[len(n.notes)-1], true
}

// Navigator records every navigation.
type Navigator struct {
	mu    sync.Mutex
	pages []ui.Page
}

func (n *Navigator) Navigate(page ui.Page) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pages = append(n.pages, page)
}

func (n *Navigator) Pages() []ui.Page {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ui.Page(nil), n.pages...)
}

// Confirmer answers with a fixed value and records the prompts it was shown.
type Confirmer struct {
	mu      sync.Mutex
	Answer  bool
	prompts []string
}

func (c *Confirmer) Confirm(prompt string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	return c.Answer
}

func (c *Confirmer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}
