package config

import "time"

type PollingConfig interface {
	GetDashboardRefreshInterval() time.Duration
	GetBadgeRefreshInterval() time.Duration
}

type Polling struct {
	DashboardRefresh time.Duration `env:"ADMIN_DASHBOARD_REFRESH" envDefault:"5m"`
	BadgeRefresh     time.Duration `env:"ADMIN_BADGE_REFRESH" envDefault:"30s"`
}

var _ PollingConfig = Polling{}

func (p Polling) GetDashboardRefreshInterval() time.Duration {
	return p.DashboardRefresh
}

func (p Polling) GetBadgeRefreshInterval() time.Duration {
	return p.BadgeRefresh
}
