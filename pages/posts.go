package pages

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	postsEndpoint          = "/Posts"
	postCategoriesEndpoint = "/Posts/categories"
	postsPageSize          = 50
)

type PostsState struct {
	Posts      []adminmodel.Post
	Categories []adminmodel.Category
	Filter     adminmodel.PostFilter
	Pagination adminmodel.Pagination
}

// Visible returns the posts passing the current filter in the selected order.
func (s PostsState) Visible() []adminmodel.Post {
	return adminmodel.FilterPosts(s.Posts, s.Filter)
}

// Posts manages the post listing.
type Posts struct {
	env   *Env
	mu    sync.Mutex
	state PostsState
}

func NewPosts(env *Env) *Posts {
	return &Posts{
		env: env,
		state: PostsState{
			Filter:     adminmodel.PostFilter{Sort: adminmodel.PostSortNewest},
			Pagination: adminmodel.Pagination{CurrentPage: 1, TotalPages: 1, PageSize: postsPageSize},
		},
	}
}

func (p *Posts) State() PostsState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Stats counts the loaded page of posts.
func (p *Posts) Stats() adminmodel.PostStats {
	s := p.State()
	return adminmodel.ComputePostStats(s.Posts, p.env.Now())
}

func (p *Posts) Open(ctx context.Context) error {
	if err := p.env.open(); err != nil {
		return err
	}
	return p.Load(ctx)
}

// Load fetches the categories and the current page of posts together. Either failing leaves
// the state as it was.
func (p *Posts) Load(ctx context.Context) error {
	return p.load(ctx, p.State().Pagination.CurrentPage)
}

// load fetches page; the page number is only committed together with its posts.
func (p *Posts) load(ctx context.Context, page int) error {
	done := p.env.busy()
	defer done()

	var (
		categories []adminmodel.Category
		posts      []adminmodel.Post
		pagination adminmodel.Pagination
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, _, err := p.env.getList(gctx, postCategoriesEndpoint, nil)
		if err != nil {
			return err
		}
		categories = adminmodel.NormalizeCategories(items)
		return nil
	})
	g.Go(func() error {
		items, resp, err := p.env.getList(gctx, postsEndpoint, []string{"data.posts", "posts"},
			apiclient.WithQuery("status", "all"),
			apiclient.WithQuery("page", strconv.Itoa(page)),
			apiclient.WithQuery("pageSize", strconv.Itoa(postsPageSize)))
		if err != nil {
			return err
		}
		posts = adminmodel.NormalizePosts(items)
		pagination = adminmodel.NormalizePagination(resp.JSON().Get("data.pagination"))
		pagination.CurrentPage = page
		pagination.PageSize = postsPageSize
		return nil
	})
	if err := g.Wait(); err != nil {
		return p.env.fail(err, "Failed to load posts")
	}

	p.mu.Lock()
	p.state.Categories = categories
	p.state.Posts = posts
	p.state.Pagination = pagination
	p.mu.Unlock()
	return nil
}

func (p *Posts) SetFilter(f adminmodel.PostFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Filter = f
}

// GoToPage loads page n of the listing.
func (p *Posts) GoToPage(ctx context.Context, n int) error {
	s := p.State()
	if n < 1 || n > s.Pagination.TotalPages {
		return errors.Wrapf(errors.ErrValidation, "page %d out of range 1-%d", n, s.Pagination.TotalPages)
	}
	return p.load(ctx, n)
}

// Detail fetches a single post.
func (p *Posts) Detail(ctx context.Context, id int64) (adminmodel.Post, error) {
	if err := p.env.open(); err != nil {
		return adminmodel.Post{}, err
	}
	done := p.env.busy()
	defer done()

	r, err := p.env.getObject(ctx, fmt.Sprintf("%s/%d", postsEndpoint, id))
	if err != nil {
		return adminmodel.Post{}, p.env.fail(err, "Failed to load post")
	}
	return adminmodel.NormalizePost(r), nil
}

// ToggleStatus flips a post between active and passive after confirmation.
func (p *Posts) ToggleStatus(ctx context.Context, id int64) error {
	if err := p.env.confirm("Change the status of this post?"); err != nil {
		return err
	}

	done := p.env.busy()
	_, err := p.env.Client.Post(ctx, fmt.Sprintf("%s/%d/toggle-status", postsEndpoint, id), nil)
	done()
	if err != nil {
		return p.env.fail(err, "Failed to change post status")
	}
	p.env.success("Post status changed")
	return p.Load(ctx)
}

func (p *Posts) Delete(ctx context.Context, id int64) error {
	if err := p.env.confirm("Delete this post? This cannot be undone."); err != nil {
		return err
	}

	done := p.env.busy()
	_, err := p.env.Client.Delete(ctx, fmt.Sprintf("%s/%d", postsEndpoint, id))
	done()
	if err != nil {
		return p.env.fail(err, "Failed to delete post")
	}
	p.env.success("Post deleted")
	return p.Load(ctx)
}
