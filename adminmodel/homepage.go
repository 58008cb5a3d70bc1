package adminmodel

import (
	"time"

	"github.com/jrsteele09/go-admin-console/internal/utils"
	"github.com/tidwall/gjson"
)

// HeroSection is the landing page header. Fields tagged "-" are not sent on update.
type HeroSection struct {
	ID          int64     `json:"-"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	UpdatedAt   time.Time `json:"-"`
}

func NormalizeHeroSection(r gjson.Result) HeroSection {
	return HeroSection{
		ID:          integer(r, 0, "id"),
		Title:       str(r, "", "title"),
		Subtitle:    str(r, "", "subtitle"),
		Description: str(r, "", "description"),
		IsActive:    boolean(r, false, "isActive"),
		UpdatedAt:   timestamp(r, "updatedAt"),
	}
}

// CTASection is the call to action block.
type CTASection struct {
	ID        int64     `json:"-"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	IsActive  bool      `json:"isActive"`
	UpdatedAt time.Time `json:"-"`
}

func NormalizeCTASection(r gjson.Result) CTASection {
	return CTASection{
		ID:        integer(r, 0, "id"),
		Title:     str(r, "", "title"),
		Subtitle:  str(r, "", "subtitle"),
		IsActive:  boolean(r, false, "isActive"),
		UpdatedAt: timestamp(r, "updatedAt"),
	}
}

// HomeRecord is implemented by the homepage collection items.
type HomeRecord interface {
	RecordID() int64
	Active() bool
}

type HeroStat struct {
	ID           int64  `json:"-"`
	Label        string `json:"label"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
}

func (s HeroStat) RecordID() int64 { return s.ID }
func (s HeroStat) Active() bool    { return s.IsActive }

func NormalizeHeroStat(r gjson.Result) HeroStat {
	return HeroStat{
		ID:           integer(r, 0, "id"),
		Label:        str(r, "", "label"),
		Value:        str(r, "", "value"),
		DisplayOrder: int(integer(r, 0, "displayOrder")),
		IsActive:     boolean(r, true, "isActive"),
	}
}

type Feature struct {
	ID           int64  `json:"-"`
	Icon         string `json:"icon"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
}

func (f Feature) RecordID() int64 { return f.ID }
func (f Feature) Active() bool    { return f.IsActive }

func NormalizeFeature(r gjson.Result) Feature {
	return Feature{
		ID:           integer(r, 0, "id"),
		Icon:         str(r, "", "icon"),
		Title:        str(r, "", "title"),
		Description:  str(r, "", "description"),
		DisplayOrder: int(integer(r, 0, "displayOrder")),
		IsActive:     boolean(r, true, "isActive"),
	}
}

type Sponsor struct {
	ID           int64  `json:"-"`
	Name         string `json:"name"`
	LogoURL      string `json:"logoUrl"`
	WebsiteURL   string `json:"websiteUrl"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
}

func (s Sponsor) RecordID() int64 { return s.ID }
func (s Sponsor) Active() bool    { return s.IsActive }

func NormalizeSponsor(r gjson.Result) Sponsor {
	return Sponsor{
		ID:           integer(r, 0, "id"),
		Name:         str(r, "", "name"),
		LogoURL:      str(r, "", "logoUrl"),
		WebsiteURL:   str(r, "", "websiteUrl"),
		Description:  str(r, "", "description"),
		DisplayOrder: int(integer(r, 0, "displayOrder")),
		IsActive:     boolean(r, true, "isActive"),
	}
}

type AppLink struct {
	ID         int64  `json:"-"`
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	ButtonText string `json:"buttonText"`
	IsActive   bool   `json:"isActive"`
}

func (l AppLink) RecordID() int64 { return l.ID }
func (l AppLink) Active() bool    { return l.IsActive }

func NormalizeAppLink(r gjson.Result) AppLink {
	return AppLink{
		ID:         integer(r, 0, "id"),
		Platform:   str(r, "", "platform"),
		URL:        str(r, "", "url"),
		ButtonText: str(r, "", "buttonText"),
		IsActive:   boolean(r, true, "isActive"),
	}
}

type PageSetting struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func NormalizePageSetting(r gjson.Result) PageSetting {
	return PageSetting{
		Key:         str(r, "", "key"),
		Value:       str(r, "", "value"),
		Description: str(r, "", "description"),
	}
}

func NormalizePageSettings(items []gjson.Result) []PageSetting {
	return normalizeAll(items, NormalizePageSetting)
}

// PublicHomePage is the anonymous landing page payload. Hero and CTA are nil when the backend
// has none.
type PublicHomePage struct {
	Hero     *HeroSection `json:"hero,omitempty"`
	Stats    []HeroStat   `json:"stats"`
	Features []Feature    `json:"features"`
	Sponsors []Sponsor    `json:"sponsors"`
	CTA      *CTASection  `json:"cta,omitempty"`
	AppLinks []AppLink    `json:"appLinks"`
}

func NormalizePublicHomePage(r gjson.Result) PublicHomePage {
	p := PublicHomePage{
		Stats:    normalizeAll(field(r, "heroStats").Array(), NormalizeHeroStat),
		Features: normalizeAll(field(r, "features").Array(), NormalizeFeature),
		Sponsors: normalizeAll(field(r, "sponsors").Array(), NormalizeSponsor),
		AppLinks: normalizeAll(field(r, "appDownloadLinks").Array(), NormalizeAppLink),
	}
	if v := field(r, "heroSection"); v.IsObject() {
		p.Hero = utils.Ptr(NormalizeHeroSection(v))
	}
	if v := field(r, "ctaSection"); v.IsObject() {
		p.CTA = utils.Ptr(NormalizeCTASection(v))
	}
	return p
}
