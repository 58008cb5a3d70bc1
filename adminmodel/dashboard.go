package adminmodel

import "github.com/tidwall/gjson"

// Trend is a headline number with its change against the previous period.
type Trend struct {
	Total      float64 `json:"total"`
	ChangeRate float64 `json:"changeRate"`
	IsPositive bool    `json:"isPositive"`
}

type CategoryTrend struct {
	Total    int `json:"total"`
	NewCount int `json:"newCount"`
}

type DashboardStats struct {
	Users      Trend         `json:"users"`
	Posts      Trend         `json:"posts"`
	Categories CategoryTrend `json:"categories"`
	Revenue    Trend         `json:"revenue"`
}

func normalizeTrend(r gjson.Result) Trend {
	return Trend{
		Total:      number(r, 0, "total"),
		ChangeRate: number(r, 0, "changeRate"),
		IsPositive: boolean(r, true, "isPositive"),
	}
}

func NormalizeDashboardStats(r gjson.Result) DashboardStats {
	return DashboardStats{
		Users: normalizeTrend(field(r, "users")),
		Posts: normalizeTrend(field(r, "posts")),
		Categories: CategoryTrend{
			Total:    int(integer(r, 0, "categories.total")),
			NewCount: int(integer(r, 0, "categories.newCount")),
		},
		Revenue: normalizeTrend(field(r, "revenue")),
	}
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// UserActivity is a labelled time series, one dataset per metric.
type UserActivity struct {
	Days     int       `json:"days"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

func NormalizeUserActivity(r gjson.Result, days int) UserActivity {
	a := UserActivity{Days: days, Labels: stringList(field(r, "labels")), Datasets: []Dataset{}}
	field(r, "datasets").ForEach(func(_, d gjson.Result) bool {
		a.Datasets = append(a.Datasets, Dataset{Label: str(d, "", "label"), Data: floatList(field(d, "data"))})
		return true
	})
	return a
}

type CategoryDistribution struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

func NormalizeCategoryDistribution(r gjson.Result) CategoryDistribution {
	return CategoryDistribution{Labels: stringList(field(r, "labels")), Data: floatList(field(r, "data"))}
}

type Activity struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Time string `json:"time"`
}

func NormalizeActivity(r gjson.Result) Activity {
	return Activity{
		Type: str(r, "system", "type"),
		Text: text(r, "", "text"),
		Time: str(r, "", "time"),
	}
}

func NormalizeActivities(items []gjson.Result) []Activity {
	return normalizeAll(items, NormalizeActivity)
}

// Dashboard is everything the dashboard page shows.
type Dashboard struct {
	Stats        DashboardStats       `json:"stats"`
	Activity     UserActivity         `json:"activity"`
	Distribution CategoryDistribution `json:"distribution"`
	Recent       []Activity           `json:"recent"`
}

// ActivityPeriods are the selectable user activity windows in days.
var ActivityPeriods = []int{7, 30, 90}

func stringList(r gjson.Result) []string {
	out := []string{}
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}

func floatList(r gjson.Result) []float64 {
	out := []float64{}
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.Float())
		return true
	})
	return out
}

// BadgeCounts are the numbers in the console header.
type BadgeCounts struct {
	Posts           int `json:"posts"`
	PendingFeedback int `json:"pendingFeedback"`
	Users           int `json:"users"`
	Notifications   int `json:"notifications"`
}
