package pages

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"golang.org/x/text/cases"
)

const categoriesEndpoint = "/Categories"

type CategoriesState struct {
	Categories []adminmodel.Category
	Status     adminmodel.CategoryStatusFilter
	Search     string
}

// Visible returns the categories passing the current filter.
func (s CategoriesState) Visible() []adminmodel.Category {
	return adminmodel.FilterCategories(s.Categories, s.Status, s.Search)
}

// Categories manages the category list.
type Categories struct {
	env   *Env
	mu    sync.Mutex
	state CategoriesState
}

func NewCategories(env *Env) *Categories {
	return &Categories{env: env, state: CategoriesState{Status: adminmodel.CategoryFilterAll}}
}

func (c *Categories) State() CategoriesState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Categories) Open(ctx context.Context) error {
	if err := c.env.open(); err != nil {
		return err
	}
	return c.Load(ctx)
}

// Load replaces the list with the backend's, inactive categories included. On failure the
// list is emptied.
func (c *Categories) Load(ctx context.Context) error {
	done := c.env.busy()
	defer done()

	items, _, err := c.env.getList(ctx, categoriesEndpoint, nil, apiclient.WithQuery("includeInactive", "true"))
	if err != nil {
		c.mu.Lock()
		c.state.Categories = []adminmodel.Category{}
		c.mu.Unlock()
		return c.env.fail(err, "Failed to load categories")
	}

	categories := adminmodel.NormalizeCategories(items)
	c.mu.Lock()
	c.state.Categories = categories
	c.mu.Unlock()
	return nil
}

func (c *Categories) SetFilter(status adminmodel.CategoryStatusFilter, search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Status = status
	c.state.Search = strings.TrimSpace(search)
}

// Find returns the loaded category with id.
func (c *Categories) Find(id int64) (adminmodel.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range c.state.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return adminmodel.Category{}, false
}

// validate rejects an empty name and a name that matches another category under Unicode case
// folding. exceptID is the category being edited, 0 on create.
func (c *Categories) validate(name string, exceptID int64) error {
	if name == "" {
		return errors.Wrapf(errors.ErrValidation, "category name is required")
	}
	fold := cases.Fold()
	folded := fold.String(name)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range c.state.Categories {
		if cat.ID != exceptID && fold.String(strings.TrimSpace(cat.Name)) == folded {
			return errors.Wrapf(errors.ErrDuplicateName, "category %q", name)
		}
	}
	return nil
}

// Create adds a category. Empty or duplicate names fail before any request is sent.
func (c *Categories) Create(ctx context.Context, in adminmodel.CategoryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := c.validate(in.Name, 0); err != nil {
		return c.env.fail(err, "Failed to create category")
	}

	done := c.env.busy()
	_, err := c.env.Client.Post(ctx, categoriesEndpoint, in)
	done()
	if err != nil {
		return c.env.fail(err, "Failed to create category")
	}
	c.env.success("Category created")
	return c.Load(ctx)
}

func (c *Categories) Update(ctx context.Context, id int64, in adminmodel.CategoryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := c.validate(in.Name, id); err != nil {
		return c.env.fail(err, "Failed to update category")
	}

	done := c.env.busy()
	_, err := c.env.Client.Put(ctx, fmt.Sprintf("%s/%d", categoriesEndpoint, id), in)
	done()
	if err != nil {
		return c.env.fail(err, "Failed to update category")
	}
	c.env.success("Category updated")
	return c.Load(ctx)
}

// ToggleStatus flips a category between active and inactive.
func (c *Categories) ToggleStatus(ctx context.Context, id int64) error {
	done := c.env.busy()
	_, err := c.env.Client.Post(ctx, fmt.Sprintf("%s/%d/toggle-status", categoriesEndpoint, id), nil)
	done()
	if err != nil {
		return c.env.fail(err, "Failed to change category status")
	}
	c.env.success("Category status changed")
	return c.Load(ctx)
}

// Delete removes a category after confirmation. A refusal sends nothing.
func (c *Categories) Delete(ctx context.Context, id int64) error {
	if err := c.env.confirm("Delete this category? This cannot be undone."); err != nil {
		return err
	}

	done := c.env.busy()
	_, err := c.env.Client.Delete(ctx, fmt.Sprintf("%s/%d", categoriesEndpoint, id))
	done()
	if err != nil {
		return c.env.fail(err, "Failed to delete category")
	}
	c.env.success("Category deleted")
	return c.Load(ctx)
}
