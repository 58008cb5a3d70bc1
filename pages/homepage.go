package pages

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/internal/utils"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const homePageEndpoint = "/HomePage"

// Collection is one editable list of homepage records, e.g. the sponsors.
type Collection[T adminmodel.HomeRecord] struct {
	env       *Env
	endpoint  string
	query     []apiclient.RequestOption
	noun      string
	normalize func(gjson.Result) T

	mu    sync.Mutex
	items []T
}

func newCollection[T adminmodel.HomeRecord](env *Env, path, noun string, normalize func(gjson.Result) T, includeInactive bool) *Collection[T] {
	c := &Collection[T]{
		env:       env,
		endpoint:  homePageEndpoint + "/" + path,
		noun:      noun,
		normalize: normalize,
		items:     []T{},
	}
	if includeInactive {
		c.query = []apiclient.RequestOption{apiclient.WithQuery("includeInactive", "true")}
	}
	return c
}

func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Find returns the loaded record with id.
func (c *Collection[T]) Find(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Load(ctx context.Context) error {
	list, _, err := c.env.getList(ctx, c.endpoint, nil, c.query...)
	if err != nil {
		return c.env.fail(err, "Failed to load "+c.noun+"s")
	}
	items := make([]T, 0, len(list))
	for _, r := range list {
		items = append(items, c.normalize(r))
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Create adds item; its ID is ignored.
func (c *Collection[T]) Create(ctx context.Context, item T) error {
	done := c.env.busy()
	_, err := c.env.Client.Post(ctx, c.endpoint, item)
	done()
	if err != nil {
		return c.env.fail(err, "Failed to add "+c.noun)
	}
	c.env.success(utils.UpperFirst(c.noun) + " added")
	return c.Load(ctx)
}

func (c *Collection[T]) Update(ctx context.Context, id int64, item T) error {
	done := c.env.busy()
	_, err := c.env.Client.Put(ctx, fmt.Sprintf("%s/%d", c.endpoint, id), item)
	done()
	if err != nil {
		return c.env.fail(err, "Failed to update "+c.noun)
	}
	c.env.success(utils.UpperFirst(c.noun) + " updated")
	return c.Load(ctx)
}

func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	if err := c.env.confirm(fmt.Sprintf("Delete this %s?", c.noun)); err != nil {
		return err
	}

	done := c.env.busy()
	_, err := c.env.Client.Delete(ctx, fmt.Sprintf("%s/%d", c.endpoint, id))
	done()
	if err != nil {
		return c.env.fail(err, "Failed to delete "+c.noun)
	}
	c.env.success(utils.UpperFirst(c.noun) + " deleted")
	return c.Load(ctx)
}

// Homepage edits the public landing page content.
type Homepage struct {
	env *Env

	Stats    *Collection[adminmodel.HeroStat]
	Features *Collection[adminmodel.Feature]
	Sponsors *Collection[adminmodel.Sponsor]
	AppLinks *Collection[adminmodel.AppLink]

	mu       sync.Mutex
	hero     adminmodel.HeroSection
	cta      adminmodel.CTASection
	settings []adminmodel.PageSetting
}

func NewHomepage(env *Env) *Homepage {
	return &Homepage{
		env:      env,
		Stats:    newCollection(env, "hero-stats", "statistic", adminmodel.NormalizeHeroStat, false),
		Features: newCollection(env, "features", "feature", adminmodel.NormalizeFeature, true),
		Sponsors: newCollection(env, "sponsors", "sponsor", adminmodel.NormalizeSponsor, true),
		AppLinks: newCollection(env, "app-links", "app link", adminmodel.NormalizeAppLink, false),
		settings: []adminmodel.PageSetting{},
	}
}

// Open loads every section. Sections load independently: one failing is reported and the
// others still show.
func (h *Homepage) Open(ctx context.Context) error {
	if err := h.env.open(); err != nil {
		return err
	}
	done := h.env.busy()
	defer done()

	var g errgroup.Group
	g.Go(func() error { return h.LoadHero(ctx) })
	g.Go(func() error { return h.Stats.Load(ctx) })
	g.Go(func() error { return h.Features.Load(ctx) })
	g.Go(func() error { return h.Sponsors.Load(ctx) })
	g.Go(func() error { return h.LoadCTA(ctx) })
	g.Go(func() error { return h.AppLinks.Load(ctx) })
	g.Go(func() error { return h.LoadSettings(ctx) })
	return g.Wait()
}

func (h *Homepage) Hero() adminmodel.HeroSection {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hero
}

func (h *Homepage) CTA() adminmodel.CTASection {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cta
}

func (h *Homepage) Settings() []adminmodel.PageSetting {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]adminmodel.PageSetting(nil), h.settings...)
}

func (h *Homepage) LoadHero(ctx context.Context) error {
	r, err := h.env.getObject(ctx, homePageEndpoint+"/hero")
	if err != nil {
		return h.env.fail(err, "Failed to load the hero section")
	}
	hero := adminmodel.NormalizeHeroSection(r)
	h.mu.Lock()
	h.hero = hero
	h.mu.Unlock()
	return nil
}

// SaveHero replaces the hero section. The backend's copy of the result is kept when it sends
// one back.
func (h *Homepage) SaveHero(ctx context.Context, hero adminmodel.HeroSection) error {
	done := h.env.busy()
	resp, err := h.env.Client.Put(ctx, homePageEndpoint+"/hero", hero)
	done()
	if err != nil {
		return h.env.fail(err, "Failed to update the hero section")
	}
	if r := apiclient.UnwrapObject(resp.Body); r.IsObject() {
		hero = adminmodel.NormalizeHeroSection(r)
	}
	h.mu.Lock()
	h.hero = hero
	h.mu.Unlock()
	h.env.success("Hero section updated")
	return nil
}

func (h *Homepage) LoadCTA(ctx context.Context) error {
	r, err := h.env.getObject(ctx, homePageEndpoint+"/cta")
	if err != nil {
		return h.env.fail(err, "Failed to load the call to action")
	}
	cta := adminmodel.NormalizeCTASection(r)
	h.mu.Lock()
	h.cta = cta
	h.mu.Unlock()
	return nil
}

func (h *Homepage) SaveCTA(ctx context.Context, cta adminmodel.CTASection) error {
	done := h.env.busy()
	resp, err := h.env.Client.Put(ctx, homePageEndpoint+"/cta", cta)
	done()
	if err != nil {
		return h.env.fail(err, "Failed to update the call to action")
	}
	if r := apiclient.UnwrapObject(resp.Body); r.IsObject() {
		cta = adminmodel.NormalizeCTASection(r)
	}
	h.mu.Lock()
	h.cta = cta
	h.mu.Unlock()
	h.env.success("Call to action updated")
	return nil
}

func (h *Homepage) LoadSettings(ctx context.Context) error {
	list, _, err := h.env.getList(ctx, homePageEndpoint+"/settings", nil)
	if err != nil {
		return h.env.fail(err, "Failed to load page settings")
	}
	settings := adminmodel.NormalizePageSettings(list)
	h.mu.Lock()
	h.settings = settings
	h.mu.Unlock()
	return nil
}

type settingValue struct {
	Value string `json:"value"`
}

// UpdateSetting stores a new value for key.
func (h *Homepage) UpdateSetting(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return h.env.fail(errors.Wrapf(errors.ErrValidation, "setting key is required"), "Failed to update setting")
	}

	done := h.env.busy()
	_, err := h.env.Client.Put(ctx, homePageEndpoint+"/settings/"+url.PathEscape(key), settingValue{Value: value})
	done()
	if err != nil {
		return h.env.fail(err, "Failed to update setting")
	}

	h.mu.Lock()
	for i := range h.settings {
		if h.settings[i].Key == key {
			h.settings[i].Value = value
		}
	}
	h.mu.Unlock()
	h.env.success("Setting updated")
	return nil
}

// Public fetches the landing page as anonymous visitors see it.
func (h *Homepage) Public(ctx context.Context) (adminmodel.PublicHomePage, error) {
	resp, err := h.env.Client.Get(ctx, homePageEndpoint+"/public", apiclient.WithoutAuth())
	if err != nil {
		return adminmodel.PublicHomePage{}, h.env.fail(err, "Failed to load the public homepage")
	}
	return adminmodel.NormalizePublicHomePage(apiclient.UnwrapObject(resp.Body)), nil
}
