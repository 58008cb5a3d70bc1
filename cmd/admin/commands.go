package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/internal/utils"
	"github.com/jrsteele09/go-admin-console/pages"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":      {"login -u <user> [-p <password>] [-remember=false]", runLogin},
	"logout":     {"logout", runLogout},
	"whoami":     {"whoami", runWhoami},
	"categories": {"categories [list|create|update|toggle|delete] [-id] [-name] [-icon] [-color] [-status] [-search]", runCategories},
	"posts":      {"posts [list|show|toggle|delete] [-id] [-search] [-status] [-category] [-sort] [-page]", runPosts},
	"users":      {"users [list|show|toggle|delete] [-id] [-search] [-status] [-sort] [-page]", runUsers},
	"feedback":   {"feedback [list|respond|resolve] [-id] [-message] [-resolve] [-status] [-type] [-search] [-date]", runFeedback},
	"reports":    {"reports [list|show|update|delete|export|overview] [-id] [-set-status] [-notes] [-out] [-status] [-type] [-search]", runReports},
	"dashboard":  {"dashboard [-days 7|30|90]", runDashboard},
	"homepage":   {"homepage [show|public|hero|cta|setting|add-sponsor|delete] [flags]", runHomepage},
	"badges":     {"badges [-mark-read]", runBadges},
	"watch":      {"watch", runWatch},
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Usage: admin <command> [action] [flags]")
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "  admin %s\n", commands[name].usage)
	}
}

func newFlags(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// splitAction takes the leading action word off args.
func splitAction(args []string, def string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return def, args
}

func unknownAction(cmd, action string) error {
	return errors.Wrapf(errors.ErrUnsupported, "%s: unknown action %q", cmd, action)
}

func requireID(id int64) error {
	if id <= 0 {
		return errors.Wrapf(errors.ErrValidation, "-id is required")
	}
	return nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password, read from stdin when empty")
	remember := fs.Bool("remember", true, "keep the session in local storage")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if a.auth.AlreadyLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in.")
		return nil
	}
	if *password == "" {
		fmt.Fprint(a.out, "Password: ")
		line, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && line == "" {
			return errors.Wrapf(errors.ErrValidation, "read password: %v", err)
		}
		*password = strings.TrimSpace(line)
	}

	_, err := a.auth.Login(ctx, *username, *password, *remember)
	return err
}

func runLogout(_ context.Context, a *app, _ []string) error {
	if !a.env.Confirmer.Confirm("Log out of the admin console?") {
		return errors.ErrNotConfirmed
	}
	a.auth.Logout()
	return nil
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	s, ok := a.store.Current()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	return a.renderer.Session(a.out, s)
}

func runCategories(ctx context.Context, a *app, args []string) error {
	action, args := splitAction(args, "list")
	fs := newFlags(a, "categories")
	id := fs.Int64("id", 0, "category id")
	name := fs.String("name", "", "category name")
	icon := fs.String("icon", "", "icon name")
	color := fs.String("color", "", "colour, e.g. #667eea")
	inactive := fs.Bool("inactive", false, "create the category inactive")
	status := fs.String("status", string(adminmodel.CategoryFilterAll), "all, active or inactive")
	search := fs.String("search", "", "name filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := pages.NewCategories(a.env)
	if err := c.Open(ctx); err != nil {
		return err
	}

	var err error
	switch action {
	case "list":
	case "create":
		err = c.Create(ctx, adminmodel.CategoryInput{
			Name:     *name,
			Icon:     utils.FirstNonEmpty(*icon, adminmodel.DefaultCategoryIcon),
			Color:    utils.FirstNonEmpty(*color, adminmodel.DefaultCategoryColor),
			IsActive: !*inactive,
		})
	case "update":
		existing, ok := c.Find(*id)
		if !ok {
			return errors.Wrapf(errors.ErrNotFound, "category %d", *id)
		}
		err = c.Update(ctx, *id, adminmodel.CategoryInput{
			Name:     utils.FirstNonEmpty(*name, existing.Name),
			Icon:     utils.FirstNonEmpty(*icon, existing.Icon),
			Color:    utils.FirstNonEmpty(*color, existing.Color),
			IsActive: existing.IsActive,
		})
	case "toggle":
		if err = requireID(*id); err == nil {
			err = c.ToggleStatus(ctx, *id)
		}
	case "delete":
		if err = requireID(*id); err == nil {
			err = c.Delete(ctx, *id)
		}
	default:
		return unknownAction("categories", action)
	}
	if err != nil {
		return err
	}

	c.SetFilter(adminmodel.CategoryStatusFilter(*status), *search)
	return a.renderer.Categories(a.out, c.State())
}

func runPosts(ctx context.Context, a *app, args []string) error {
	action, args := splitAction(args, "list")
	fs := newFlags(a, "posts")
	id := fs.Int64("id", 0, "post id")
	search := fs.String("search", "", "title, description, user or city")
	status := fs.String("status", "", "active, passive or archived")
	category := fs.Int64("category", 0, "category id")
	sortBy := fs.String("sort", string(adminmodel.PostSortNewest), "newest, oldest, price-desc, price-asc or title")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := pages.NewPosts(a.env)
	if action == "show" {
		if err := requireID(*id); err != nil {
			return err
		}
		post, err := p.Detail(ctx, *id)
		if err != nil {
			return err
		}
		return a.renderer.Post(a.out, post)
	}

	if err := p.Open(ctx); err != nil {
		return err
	}
	if *page > 1 {
		if err := p.GoToPage(ctx, *page); err != nil {
			return err
		}
	}

	var err error
	switch action {
	case "list":
	case "toggle":
		if err = requireID(*id); err == nil {
			err = p.ToggleStatus(ctx, *id)
		}
	case "delete":
		if err = requireID(*id); err == nil {
			err = p.Delete(ctx, *id)
		}
	default:
		return unknownAction("posts", action)
	}
	if err != nil {
		return err
	}

	p.SetFilter(adminmodel.PostFilter{
		Search:     *search,
		Status:     adminmodel.PostStatus(*status),
		CategoryID: *category,
		Sort:       adminmodel.PostSort(*sortBy),
	})
	return a.renderer.Posts(a.out, p.State(), p.Stats())
}

func runUsers(ctx context.Context, a *app, args []string) error {
	action, args := splitAction(args, "list")
	fs := newFlags(a, "users")
	id := fs.Int64("id", 0, "user id")
	search := fs.String("search", "", "name or email")
	status := fs.String("status", "", "active or inactive")
	sortBy := fs.String("sort", string(adminmodel.UserSortNewest), "newest, oldest, name or posts")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	u := pages.NewUsers(a.env, pages.WithSearchDebounce(a.cfg.GetSearchDebounce()))
	defer u.Close()

	if action == "show" {
		if err := requireID(*id); err != nil {
			return err
		}
		d, err := u.Detail(ctx, *id)
		if err != nil {
			return err
		}
		return a.renderer.UserDetail(a.out, d)
	}

	if err := u.Open(ctx); err != nil {
		return err
	}
	if *search != "" {
		if err := u.Search(ctx, *search); err != nil {
			return err
		}
	}
	if *status != "" {
		if err := u.SetStatus(ctx, *status); err != nil {
			return err
		}
	}
	for i := 1; i < *page; i++ {
		if err := u.NextPage(ctx); err != nil {
			return err
		}
	}

	var err error
	switch action {
	case "list":
	case "toggle":
		if err = requireID(*id); err == nil {
			err = u.ToggleStatus(ctx, *id)
		}
	case "delete":
		if err = requireID(*id); err == nil {
			err = u.Delete(ctx, *id)
		}
	default:
		return unknownAction("users", action)
	}
	if err != nil {
		return err
	}

	u.SetSort(adminmodel.UserSort(*sortBy))
	return a.renderer.Users(a.out, u.State())
}

func runFeedback(ctx context.Context, a *app, args []string) error {
	action, args := splitAction(args, "list")
	fs := newFlags(a, "feedback")
	id := fs.Int64("id", 0, "feedback id")
	message := fs.String("message", "", "response text")
	resolve := fs.Bool("resolve", false, "mark resolved when responding")
	status := fs.String("status", "", "pending or resolved")
	kind := fs.String("type", "", "bug, suggestion, complaint, feature or general")
	search := fs.String("search", "", "user name or email")
	date := fs.String("date", "", "received on, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := adminmodel.FeedbackFilter{Status: *status, Type: *kind, Search: *search}
	if *date != "" {
		day, err := time.ParseInLocation(time.DateOnly, *date, time.Local)
		if err != nil {
			return errors.Wrapf(errors.ErrValidation, "-date %q", *date)
		}
		filter.Date = day
	}

	f := pages.NewFeedback(a.env)
	if err := f.Open(ctx); err != nil {
		if !errors.Is(err, errors.ErrTransport) {
			return err
		}
		f.EnterDemoMode()
	}
	if filter != (adminmodel.FeedbackFilter{}) {
		if err := f.SetFilter(ctx, filter); err != nil {
			return err
		}
	}

	var err error
	switch action {
	case "list":
	case "respond":
		if err = requireID(*id); err == nil {
			err = f.Respond(ctx, *id, *message, *resolve)
		}
	case "resolve":
		if err = requireID(*id); err == nil {
			err = f.Resolve(ctx, *id)
		}
	default:
		return unknownAction("feedback", action)
	}
	if err != nil {
		return err
	}
	return a.renderer.Feedback(a.out, f.State())
}

func runReports(ctx context.Context, a *app, args []string) error {
	action, args := splitAction(args, "list")
	fs := newFlags(a, "reports")
	id := fs.Int64("id", 0, "complaint id")
	setStatus := fs.String("set-status", "", "new status: Pending, Reviewing, Resolved or Rejected")
	notes := fs.String("notes", "", "admin notes")
	out := fs.String("out", "", "CSV file, defaults to complaint-report-<date>.csv")
	status := fs.String("status", "", "status filter")
	kind := fs.String("type", "", "User or Post")
	search := fs.String("search", "", "reported id or reason")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := pages.NewReports(a.env)
	switch action {
	case "overview":
		ov, err := r.Overview(ctx)
		if err != nil {
			return err
		}
		return a.renderer.Overview(a.out, ov)
	case "show":
		if err := requireID(*id); err != nil {
			return err
		}
		rep, err := r.Detail(ctx, *id)
		if err != nil {
			return err
		}
		return a.renderer.Report(a.out, rep)
	}

	if err := r.Open(ctx); err != nil {
		return err
	}

	var err error
	switch action {
	case "list":
	case "update":
		if err = requireID(*id); err == nil {
			err = r.Update(ctx, *id, adminmodel.ReportUpdate{Status: *setStatus, AdminNotes: *notes})
		}
	case "delete":
		if err = requireID(*id); err == nil {
			err = r.Delete(ctx, *id)
		}
	case "export":
		return exportReports(a, r, *out)
	default:
		return unknownAction("reports", action)
	}
	if err != nil {
		return err
	}

	r.SetFilter(adminmodel.ReportFilter{Status: *status, Type: *kind, Search: *search})
	return a.renderer.Reports(a.out, r.State())
}

func exportReports(a *app, r *pages.Reports, path string) error {
	if path == "" {
		path = pages.ExportFileName(time.Now())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("exportReports Create: %w", err)
	}
	if err := r.ExportCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("exportReports Close: %w", err)
	}
	fmt.Fprintf(a.out, "Wrote %s\n", path)
	return nil
}

func runDashboard(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "dashboard")
	days := fs.Int("days", adminmodel.ActivityPeriods[0], "activity period in days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d := pages.NewDashboard(a.env)
	if err := d.Open(ctx); err != nil {
		return err
	}
	if *days != d.State().Days {
		if err := d.SetPeriod(ctx, *days); err != nil {
			return err
		}
	}
	return a.renderer.Dashboard(a.out, d.State())
}

func runHomepage(ctx context.Context, a *app, args []string) error {
	action, args := splitAction(args, "show")
	fs := newFlags(a, "homepage")
	id := fs.Int64("id", 0, "record id")
	section := fs.String("section", "", "stats, features, sponsors or app-links")
	key := fs.String("key", "", "setting key")
	value := fs.String("value", "", "setting value")
	title := fs.String("title", "", "title")
	subtitle := fs.String("subtitle", "", "subtitle")
	description := fs.String("description", "", "description")
	name := fs.String("name", "", "sponsor name")
	logo := fs.String("logo", "", "sponsor logo URL")
	website := fs.String("website", "", "sponsor website")
	order := fs.Int("order", 0, "display order")
	inactive := fs.Bool("inactive", false, "save as inactive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	h := pages.NewHomepage(a.env)
	if action == "public" {
		content, err := h.Public(ctx)
		if err != nil {
			return err
		}
		return a.renderer.Homepage(a.out, content, nil)
	}
	if err := h.Open(ctx); err != nil {
		return err
	}

	var err error
	switch action {
	case "show":
	case "hero":
		hero := h.Hero()
		hero.Title = utils.FirstNonEmpty(*title, hero.Title)
		hero.Subtitle = utils.FirstNonEmpty(*subtitle, hero.Subtitle)
		hero.Description = utils.FirstNonEmpty(*description, hero.Description)
		hero.IsActive = !*inactive
		err = h.SaveHero(ctx, hero)
	case "cta":
		cta := h.CTA()
		cta.Title = utils.FirstNonEmpty(*title, cta.Title)
		cta.Subtitle = utils.FirstNonEmpty(*subtitle, cta.Subtitle)
		cta.IsActive = !*inactive
		err = h.SaveCTA(ctx, cta)
	case "setting":
		err = h.UpdateSetting(ctx, *key, *value)
	case "add-sponsor":
		err = h.Sponsors.Create(ctx, adminmodel.Sponsor{
			Name: *name, LogoURL: *logo, WebsiteURL: *website, Description: *description,
			DisplayOrder: *order, IsActive: !*inactive,
		})
	case "delete":
		if err = requireID(*id); err == nil {
			err = deleteHomeRecord(ctx, h, *section, *id)
		}
	default:
		return unknownAction("homepage", action)
	}
	if err != nil {
		return err
	}
	return a.renderer.Homepage(a.out, homepageContent(h), h.Settings())
}

func deleteHomeRecord(ctx context.Context, h *pages.Homepage, section string, id int64) error {
	switch section {
	case "stats":
		return h.Stats.Delete(ctx, id)
	case "features":
		return h.Features.Delete(ctx, id)
	case "sponsors":
		return h.Sponsors.Delete(ctx, id)
	case "app-links":
		return h.AppLinks.Delete(ctx, id)
	}
	return errors.Wrapf(errors.ErrValidation, "-section %q", section)
}

func homepageContent(h *pages.Homepage) adminmodel.PublicHomePage {
	return adminmodel.PublicHomePage{
		Hero:     utils.Ptr(h.Hero()),
		Stats:    h.Stats.Items(),
		Features: h.Features.Items(),
		Sponsors: h.Sponsors.Items(),
		CTA:      utils.Ptr(h.CTA()),
		AppLinks: h.AppLinks.Items(),
	}
}

func runBadges(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "badges")
	markRead := fs.Bool("mark-read", false, "mark every notification read")
	if err := fs.Parse(args); err != nil {
		return err
	}

	h := pages.NewHeader(a.env)
	h.Refresh(ctx)
	if *markRead {
		if err := h.MarkAllRead(ctx); err != nil {
			return err
		}
	}
	return a.renderer.Header(a.out, h.State())
}
