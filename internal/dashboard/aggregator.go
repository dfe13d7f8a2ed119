package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// SaleEvent is the dashboard's view of one completed sale. Revenue is split
// by category so trend series can chart cabs and accessories independently.
type SaleEvent struct {
	SaleID           uint            `json:"saleId"`
	CustomerName     string          `json:"customerName"`
	CabName          string          `json:"cabName"`
	CabsSold         int             `json:"cabsSold"`
	AccessoryUnits   int             `json:"accessoryUnits"`
	CabRevenue       decimal.Decimal `json:"cabRevenue"`
	AccessoryRevenue decimal.Decimal `json:"accessoryRevenue"`
	Total            decimal.Decimal `json:"total"`
	OccurredAt       time.Time       `json:"occurredAt"`
}

// FeedEntry is one line of the recent-activity feed.
type FeedEntry struct {
	SaleID     uint            `json:"saleId"`
	Headline   string          `json:"headline"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// TrendSeries is a labeled set of parallel revenue series: one per category
// plus the elementwise Total.
type TrendSeries struct {
	Labels    []string          `json:"labels"`
	Cab       []decimal.Decimal `json:"cab"`
	Accessory []decimal.Decimal `json:"accessory"`
	Total     []decimal.Decimal `json:"total"`
}

// InventoryStats is the advisory inventory snapshot shown next to the sale
// aggregates. It is computed on demand, not accumulated.
type InventoryStats struct {
	TotalValue decimal.Decimal `json:"totalValue"`
	LowStock   int             `json:"lowStock"`
	OutOfStock int             `json:"outOfStock"`
}

// Summary is the aggregate state served to the dashboard.
type Summary struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	SalesCount     int64           `json:"salesCount"`
	CabsSold       int64           `json:"cabsSold"`
	AccessoryUnits int64           `json:"accessoryUnits"`
	Inventory      InventoryStats  `json:"inventory"`
	Weekly         TrendSeries     `json:"weekly"`
	Monthly        TrendSeries     `json:"monthly"`
	Yearly         TrendSeries     `json:"yearly"`
	RecentActivity []FeedEntry     `json:"recentActivity"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

const yearlyWindow = 5

// revenueBucket holds per-category revenue for a time bucket.
type revenueBucket struct {
	cab       decimal.Decimal
	accessory decimal.Decimal
}

func (b revenueBucket) add(cab, accessory decimal.Decimal) revenueBucket {
	return revenueBucket{cab: b.cab.Add(cab), accessory: b.accessory.Add(accessory)}
}

// Aggregator accumulates sale events in memory. All access is serialized by
// one mutex; snapshots copy everything out so callers never hold the lock.
type Aggregator struct {
	mu sync.Mutex

	totalRevenue   decimal.Decimal
	salesCount     int64
	cabsSold       int64
	accessoryUnits int64

	// revenue bucketed by day, month and year keys
	daily   map[string]revenueBucket
	monthly map[string]revenueBucket
	yearly  map[int]revenueBucket

	feed    []FeedEntry
	feedLen int
}

// NewAggregator builds an empty aggregator with a bounded activity feed.
func NewAggregator(feedLen int) *Aggregator {
	if feedLen <= 0 {
		feedLen = 5
	}
	return &Aggregator{
		totalRevenue: decimal.Zero,
		daily:        map[string]revenueBucket{},
		monthly:      map[string]revenueBucket{},
		yearly:       map[int]revenueBucket{},
		feedLen:      feedLen,
	}
}

// RecordSale folds one completed sale into the running aggregates and pushes
// it onto the activity feed, evicting the oldest entry when full.
func (a *Aggregator) RecordSale(ev SaleEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.applyLocked(ev, 1)

	entry := FeedEntry{
		SaleID:     ev.SaleID,
		Headline:   fmt.Sprintf("%s bought %dx %s", ev.CustomerName, ev.CabsSold, ev.CabName),
		Total:      ev.Total,
		OccurredAt: ev.OccurredAt,
	}
	a.feed = append([]FeedEntry{entry}, a.feed...)
	if len(a.feed) > a.feedLen {
		a.feed = a.feed[:a.feedLen]
	}
}

// RemoveSale reverses a previously recorded sale. Used by the compensation
// path when a sale is voided after its event was published.
func (a *Aggregator) RemoveSale(ev SaleEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.applyLocked(ev, -1)

	for i, entry := range a.feed {
		if entry.SaleID == ev.SaleID {
			a.feed = append(a.feed[:i], a.feed[i+1:]...)
			break
		}
	}
}

func (a *Aggregator) applyLocked(ev SaleEvent, sign int64) {
	amount := ev.Total
	cab := ev.CabRevenue
	accessory := ev.AccessoryRevenue
	if sign < 0 {
		amount = amount.Neg()
		cab = cab.Neg()
		accessory = accessory.Neg()
	}

	a.totalRevenue = a.totalRevenue.Add(amount)
	a.salesCount += sign
	a.cabsSold += sign * int64(ev.CabsSold)
	a.accessoryUnits += sign * int64(ev.AccessoryUnits)

	day := ev.OccurredAt.Format("2006-01-02")
	month := ev.OccurredAt.Format("2006-01")
	year := ev.OccurredAt.Year()

	a.daily[day] = a.daily[day].add(cab, accessory)
	a.monthly[month] = a.monthly[month].add(cab, accessory)
	a.yearly[year] = a.yearly[year].add(cab, accessory)
}

// Snapshot renders the summary as of now. Inventory stats are filled in by
// the service, not the aggregator.
func (a *Aggregator) Snapshot(now time.Time) Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	feed := make([]FeedEntry, len(a.feed))
	copy(feed, a.feed)

	return Summary{
		TotalRevenue:   a.totalRevenue,
		SalesCount:     a.salesCount,
		CabsSold:       a.cabsSold,
		AccessoryUnits: a.accessoryUnits,
		Weekly:         a.weeklyLocked(now),
		Monthly:        a.monthlyLocked(now),
		Yearly:         a.yearlyLocked(now),
		RecentActivity: feed,
		GeneratedAt:    now,
	}
}

func newTrendSeries(size int) TrendSeries {
	return TrendSeries{
		Labels:    make([]string, size),
		Cab:       make([]decimal.Decimal, size),
		Accessory: make([]decimal.Decimal, size),
		Total:     make([]decimal.Decimal, size),
	}
}

func (t *TrendSeries) setBucket(i int, label string, b revenueBucket) {
	t.Labels[i] = label
	t.Cab[i] = b.cab
	t.Accessory[i] = b.accessory
	t.Total[i] = b.cab.Add(b.accessory)
}

// weeklyLocked returns Monday..Sunday of the week containing now.
func (a *Aggregator) weeklyLocked(now time.Time) TrendSeries {
	monday := startOfWeek(now)

	series := newTrendSeries(7)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		series.setBucket(i, day.Format("Mon"), a.daily[day.Format("2006-01-02")])
	}
	return series
}

// monthlyLocked returns Jan..Dec of the year containing now.
func (a *Aggregator) monthlyLocked(now time.Time) TrendSeries {
	series := newTrendSeries(12)
	for i := 0; i < 12; i++ {
		month := time.Date(now.Year(), time.Month(i+1), 1, 0, 0, 0, 0, now.Location())
		series.setBucket(i, month.Format("Jan"), a.monthly[month.Format("2006-01")])
	}
	return series
}

// yearlyLocked returns the trailing five-year window ending at now.
func (a *Aggregator) yearlyLocked(now time.Time) TrendSeries {
	series := newTrendSeries(yearlyWindow)
	first := now.Year() - yearlyWindow + 1
	for i := 0; i < yearlyWindow; i++ {
		year := first + i
		series.setBucket(i, fmt.Sprintf("%d", year), a.yearly[year])
	}
	return series
}

func startOfWeek(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	return day.AddDate(0, 0, 1-weekday)
}
