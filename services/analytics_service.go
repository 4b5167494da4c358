package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"hotel-guest-services/models"
	"hotel-guest-services/utils"

	"gorm.io/gorm"
)

// AnalyticsService computes the revenue read-model on demand from the order
// and invoice tables. It holds no state; every call re-reads committed data.
type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// AnalyticsParams is an optional inclusive [From,To] window plus a bucketing
// granularity (day, week, month).
type AnalyticsParams struct {
	From    *time.Time
	To      *time.Time
	GroupBy string
}

type KPIs struct {
	Revenue        float64 `json:"revenue"`
	Orders         int64   `json:"orders"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	TaxCollected   float64 `json:"tax_collected"`
	PendingAmount  float64 `json:"pending_amount"`
	CompletionRate int     `json:"completion_rate"`
}

// Comparison holds deltas against the same-length window immediately
// preceding From. Deltas are null when the previous value is zero.
type Comparison struct {
	PreviousRevenue float64  `json:"previous_revenue"`
	PreviousOrders  int64    `json:"previous_orders"`
	RevenueDelta    *float64 `json:"revenue_delta_pct"`
	OrdersDelta     *float64 `json:"orders_delta_pct"`
}

type TimeBucket struct {
	Key      string  `json:"key"`
	Revenue  float64 `json:"revenue"`
	Invoices int     `json:"invoices"`
	Tax      float64 `json:"tax"`
}

type TypeRevenue struct {
	OrderType  string  `json:"order_type"`
	Revenue    float64 `json:"revenue"`
	Percentage int     `json:"percentage"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

type TopItem struct {
	ServiceID  *uint   `json:"service_id,omitempty"`
	FoodMenuID *uint   `json:"food_menu_id,omitempty"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type TopGuest struct {
	GuestID    uint    `json:"guest_id"`
	Name       string  `json:"name"`
	RoomNumber string  `json:"room_number"`
	Total      float64 `json:"total"`
	Invoices   int     `json:"invoices"`
}

type Occupancy struct {
	Occupied int64 `json:"occupied"`
	Total    int64 `json:"total"`
}

type AnalyticsReport struct {
	KPIs       KPIs              `json:"kpis"`
	Comparison *Comparison       `json:"comparison,omitempty"`
	TimeSeries []TimeBucket      `json:"time_series"`
	ByType     []TypeRevenue     `json:"revenue_by_order_type"`
	ByCategory []CategoryRevenue `json:"revenue_by_category"`
	TopItems   []TopItem         `json:"top_items"`
	TopGuests  []TopGuest        `json:"top_guests"`
	Occupancy  Occupancy         `json:"occupancy"`
}

// endOfDay makes To inclusive.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func applyRange(q *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		q = q.Where(column+" >= ?", *from)
	}
	if to != nil {
		q = q.Where(column+" <= ?", endOfDay(*to))
	}
	return q
}

// isoWeekMonday returns the Monday starting the ISO week containing t.
func isoWeekMonday(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	d := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func bucketKey(t time.Time, groupBy string) string {
	switch groupBy {
	case "week":
		return isoWeekMonday(t).Format("2006-01-02")
	case "month":
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Report assembles every analytics view for the window in one pass over the
// relevant rows. Numbers are "read committed", not a point-in-time snapshot.
func (s *AnalyticsService) Report(params AnalyticsParams) (*AnalyticsReport, error) {
	groupBy := params.GroupBy
	switch groupBy {
	case "", "day", "week", "month":
		if groupBy == "" {
			groupBy = "day"
		}
	default:
		return nil, fmt.Errorf("%w: groupBy must be one of day, week, month", ErrValidation)
	}

	// PAID invoices by paid_at in range
	var paid []models.Invoice
	if err := applyRange(s.DB.Where("status = ?", models.InvoicePaid), "paid_at", params.From, params.To).
		Preload("Items").
		Find(&paid).Error; err != nil {
		return nil, fmt.Errorf("failed to load paid invoices: %w", err)
	}

	// PENDING invoices by created_at in range
	var pendingTotal float64
	{
		var pending []models.Invoice
		if err := applyRange(s.DB.Where("status = ?", models.InvoicePending), "created_at", params.From, params.To).
			Find(&pending).Error; err != nil {
			return nil, fmt.Errorf("failed to load pending invoices: %w", err)
		}
		for _, inv := range pending {
			pendingTotal += inv.Total
		}
	}

	// orders by created_at in range, any status
	var orders []models.Order
	if err := applyRange(s.DB.Model(&models.Order{}), "created_at", params.From, params.To).
		Preload("Items").
		Preload("Items.Service").
		Preload("Items.FoodMenu").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	report := &AnalyticsReport{}
	report.KPIs = s.computeKPIs(paid, orders, pendingTotal)

	if params.From != nil && params.To != nil {
		cmp, err := s.computeComparison(report.KPIs, *params.From, *params.To)
		if err != nil {
			return nil, err
		}
		report.Comparison = cmp
	}

	report.TimeSeries = buildTimeSeries(paid, groupBy)

	byType, err := s.revenueByOrderType(paid)
	if err != nil {
		return nil, err
	}
	report.ByType = byType

	report.ByCategory = revenueByCategory(orders)
	report.TopItems = topItems(orders)

	topGuests, err := s.topGuests(paid)
	if err != nil {
		return nil, err
	}
	report.TopGuests = topGuests

	occ, err := s.occupancy()
	if err != nil {
		return nil, err
	}
	report.Occupancy = occ

	return report, nil
}

func (s *AnalyticsService) computeKPIs(paid []models.Invoice, orders []models.Order, pendingTotal float64) KPIs {
	var revenue, tax float64
	for _, inv := range paid {
		revenue += inv.Total
		tax += inv.Tax
	}

	totalOrders := int64(len(orders))
	var completed int64
	for _, o := range orders {
		if o.Status == models.OrderCompleted {
			completed++
		}
	}

	kpis := KPIs{
		Revenue:       utils.Round2(revenue),
		Orders:        totalOrders,
		TaxCollected:  utils.Round2(tax),
		PendingAmount: utils.Round2(pendingTotal),
	}
	if totalOrders > 0 {
		kpis.AvgOrderValue = utils.Round2(revenue / float64(totalOrders))
		kpis.CompletionRate = int(math.Round(100 * float64(completed) / float64(totalOrders)))
	}
	return kpis
}

func (s *AnalyticsService) computeComparison(current KPIs, from, to time.Time) (*Comparison, error) {
	windowLen := endOfDay(to).Sub(from)
	prevTo := from.Add(-time.Nanosecond)
	prevFrom := from.Add(-windowLen)

	var prevPaid []models.Invoice
	if err := s.DB.
		Where("status = ?", models.InvoicePaid).
		Where("paid_at >= ? AND paid_at <= ?", prevFrom, prevTo).
		Find(&prevPaid).Error; err != nil {
		return nil, fmt.Errorf("failed to load previous period invoices: %w", err)
	}

	var prevRevenue float64
	for _, inv := range prevPaid {
		prevRevenue += inv.Total
	}

	var prevOrders int64
	if err := s.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at <= ?", prevFrom, prevTo).
		Count(&prevOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count previous period orders: %w", err)
	}

	cmp := &Comparison{
		PreviousRevenue: utils.Round2(prevRevenue),
		PreviousOrders:  prevOrders,
	}
	if prevRevenue != 0 {
		d := math.Round(100 * (current.Revenue - prevRevenue) / prevRevenue)
		cmp.RevenueDelta = &d
	}
	if prevOrders != 0 {
		d := math.Round(100 * float64(current.Orders-prevOrders) / float64(prevOrders))
		cmp.OrdersDelta = &d
	}
	return cmp, nil
}

func buildTimeSeries(paid []models.Invoice, groupBy string) []TimeBucket {
	buckets := map[string]*TimeBucket{}
	for _, inv := range paid {
		if inv.PaidAt == nil {
			continue
		}
		key := bucketKey(*inv.PaidAt, groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &TimeBucket{Key: key}
			buckets[key] = b
		}
		b.Revenue += inv.Total
		b.Invoices++
		b.Tax += inv.Tax
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]TimeBucket, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		b.Revenue = utils.Round2(b.Revenue)
		b.Tax = utils.Round2(b.Tax)
		series = append(series, *b)
	}
	return series
}

// revenueByOrderType walks invoice items joined to their source order's
// type, falling back to UNKNOWN when the order reference is missing.
func (s *AnalyticsService) revenueByOrderType(paid []models.Invoice) ([]TypeRevenue, error) {
	orderIDs := make([]uint, 0)
	for _, inv := range paid {
		for _, item := range inv.Items {
			if item.OrderID != nil {
				orderIDs = append(orderIDs, *item.OrderID)
			}
		}
	}

	typeByOrder := map[uint]models.OrderType{}
	if len(orderIDs) > 0 {
		var refs []models.Order
		if err := s.DB.Select("id", "order_type").Where("id IN ?", orderIDs).Find(&refs).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve order types: %w", err)
		}
		for _, o := range refs {
			typeByOrder[o.ID] = o.OrderType
		}
	}

	sums := map[string]float64{}
	var total float64
	for _, inv := range paid {
		for _, item := range inv.Items {
			typ := "UNKNOWN"
			if item.OrderID != nil {
				if t, ok := typeByOrder[*item.OrderID]; ok {
					typ = string(t)
				}
			}
			sums[typ] += item.Total
			total += item.Total
		}
	}

	out := make([]TypeRevenue, 0, len(sums))
	for typ, rev := range sums {
		pct := 0
		if total > 0 {
			pct = int(math.Round(100 * rev / total))
		}
		out = append(out, TypeRevenue{OrderType: typ, Revenue: utils.Round2(rev), Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].OrderType < out[j].OrderType
	})
	return out, nil
}

// revenueByCategory walks completed-order line items, resolving each to its
// catalog category ("Uncategorized" when blank), top 10 by revenue.
func revenueByCategory(orders []models.Order) []CategoryRevenue {
	sums := map[string]*CategoryRevenue{}
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		for _, item := range o.Items {
			category := ""
			switch {
			case item.Service != nil:
				category = item.Service.Category
			case item.FoodMenu != nil:
				category = item.FoodMenu.Category
			}
			if category == "" {
				category = "Uncategorized"
			}
			row, ok := sums[category]
			if !ok {
				row = &CategoryRevenue{Category: category}
				sums[category] = row
			}
			row.Revenue += item.Subtotal
			row.Quantity += item.Quantity
		}
	}

	out := make([]CategoryRevenue, 0, len(sums))
	for _, row := range sums {
		row.Revenue = utils.Round2(row.Revenue)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

type itemKey struct {
	serviceID  uint
	foodMenuID uint
}

// topItems groups completed-order line items by catalog entry, ranks by
// revenue descending, top 10. Ties break deterministically on the item key.
func topItems(orders []models.Order) []TopItem {
	agg := map[itemKey]*TopItem{}
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		for i := range o.Items {
			item := o.Items[i]
			var key itemKey
			if item.ServiceID != nil {
				key.serviceID = *item.ServiceID
			}
			if item.FoodMenuID != nil {
				key.foodMenuID = *item.FoodMenuID
			}
			row, ok := agg[key]
			if !ok {
				row = &TopItem{ServiceID: item.ServiceID, FoodMenuID: item.FoodMenuID}
				switch {
				case item.Service != nil:
					row.Name = item.Service.Name
				case item.FoodMenu != nil:
					row.Name = item.FoodMenu.Name
				}
				agg[key] = row
			}
			row.Quantity += item.Quantity
			row.Revenue += item.Subtotal
		}
	}

	keys := make([]itemKey, 0, len(agg))
	for k := range agg {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := agg[keys[i]], agg[keys[j]]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		if keys[i].foodMenuID != keys[j].foodMenuID {
			return keys[i].foodMenuID < keys[j].foodMenuID
		}
		return keys[i].serviceID < keys[j].serviceID
	})

	out := make([]TopItem, 0, len(keys))
	for _, k := range keys {
		row := agg[k]
		row.Revenue = utils.Round2(row.Revenue)
		out = append(out, *row)
		if len(out) == 10 {
			break
		}
	}
	return out
}

// topGuests groups PAID invoices by guest, top 10 by total.
func (s *AnalyticsService) topGuests(paid []models.Invoice) ([]TopGuest, error) {
	agg := map[uint]*TopGuest{}
	for _, inv := range paid {
		row, ok := agg[inv.GuestID]
		if !ok {
			row = &TopGuest{GuestID: inv.GuestID}
			agg[inv.GuestID] = row
		}
		row.Total += inv.Total
		row.Invoices++
	}

	ids := make([]uint, 0, len(agg))
	for id := range agg {
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		var guests []models.Guest
		if err := s.DB.Preload("Room").Where("id IN ?", ids).Find(&guests).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve guests: %w", err)
		}
		for _, g := range guests {
			if row, ok := agg[g.ID]; ok {
				row.Name = g.FullName
				row.RoomNumber = g.Room.RoomNumber
			}
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		a, b := agg[ids[i]], agg[ids[j]]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return ids[i] < ids[j]
	})

	out := make([]TopGuest, 0, len(ids))
	for _, id := range ids {
		row := agg[id]
		row.Total = utils.Round2(row.Total)
		out = append(out, *row)
		if len(out) == 10 {
			break
		}
	}
	return out, nil
}

// occupancy is a current-moment snapshot, independent of the date range.
func (s *AnalyticsService) occupancy() (Occupancy, error) {
	var occ Occupancy
	if err := s.DB.Model(&models.Room{}).Count(&occ.Total).Error; err != nil {
		return occ, fmt.Errorf("failed to count rooms: %w", err)
	}
	if err := s.DB.Model(&models.Room{}).Where("status = ?", models.RoomOccupied).Count(&occ.Occupied).Error; err != nil {
		return occ, fmt.Errorf("failed to count occupied rooms: %w", err)
	}
	return occ, nil
}
