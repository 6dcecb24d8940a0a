package notification

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"hoteldash/internal/domain"
	"hoteldash/internal/pkg/dates"
)

// idSpace namespaces derived notification ids so the same trigger keeps the same id across runs.
var idSpace = uuid.MustParse("6f1c7d2e-3b8a-4c55-9e0d-1a2b3c4d5e6f")

// Policy holds the alerting thresholds.
type Policy struct {
	OverdueHighDays       int
	OverdueUrgentDays     int
	StaleHighHours        float64
	StaleUrgentHours      float64
	FailedPaymentLookback time.Duration
	CurrencyDecimals      int32
}

func DefaultPolicy() Policy {
	return Policy{
		OverdueHighDays:       2,
		OverdueUrgentDays:     7,
		StaleHighHours:        4,
		StaleUrgentHours:      24,
		FailedPaymentLookback: 7 * 24 * time.Hour,
	}
}

type Filter string

const (
	FilterAll          Filter = "all"
	FilterCheckIns     Filter = "checkins"
	FilterCheckOuts    Filter = "checkouts"
	FilterHousekeeping Filter = "housekeeping"
	FilterMaintenance  Filter = "maintenance"
	FilterPayments     Filter = "payments"
)

// ParseFilter maps the query value to a Filter. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCheckIns, FilterCheckOuts, FilterHousekeeping, FilterMaintenance, FilterPayments:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

func (f Filter) allows(t domain.NotificationType) bool {
	switch f {
	case FilterCheckIns:
		return t == domain.NotifCheckIn
	case FilterCheckOuts:
		return t == domain.NotifCheckOut
	case FilterHousekeeping:
		return t == domain.NotifHousekeeping
	case FilterMaintenance:
		return t == domain.NotifMaintenance
	case FilterPayments:
		return t == domain.NotifPayment
	default:
		return true
	}
}

// needs reports which collections the filter reads.
func (f Filter) needs() (reservations, tasks, payments bool) {
	switch f {
	case FilterCheckIns, FilterCheckOuts:
		return true, false, false
	case FilterHousekeeping, FilterMaintenance:
		return false, true, false
	case FilterPayments:
		return true, false, true
	default:
		return true, true, true
	}
}

type Input struct {
	Reservations []domain.Reservation
	Tasks        []domain.HousekeepingTask
	Payments     []domain.Payment
	Now          time.Time
}

type Summary struct {
	Total          int `json:"total"`
	Urgent         int `json:"urgent"`
	High           int `json:"high"`
	ActionRequired int `json:"actionRequired"`
}

type Result struct {
	Notifications []domain.Notification `json:"notifications"`
	Summary       Summary               `json:"summary"`
}

// Deriver turns operational entities into prioritized alerts. It performs no I/O.
type Deriver struct {
	policy Policy
	loc    *time.Location
}

func NewDeriver(policy Policy, loc *time.Location) *Deriver {
	if loc == nil {
		loc = time.UTC
	}
	return &Deriver{policy: policy, loc: loc}
}

func (d *Deriver) Derive(in Input, filter Filter) Result {
	today := dates.Day(in.Now, d.loc)
	out := []domain.Notification{}

	emit := func(n domain.Notification) {
		if filter.allows(n.Type) {
			out = append(out, n)
		}
	}

	for _, r := range in.Reservations {
		if n, ok := d.checkIn(r, today); ok {
			emit(n)
		}
		if n, ok := d.checkOut(r, today); ok {
			emit(n)
		}
		if n, ok := d.outstanding(r, today); ok {
			emit(n)
		}
	}
	for _, t := range in.Tasks {
		if n, ok := d.staleTask(t, in.Now); ok {
			emit(n)
		}
	}
	for _, p := range in.Payments {
		if n, ok := d.failedPayment(p, in.Now); ok {
			emit(n)
		}
	}

	Sort(out)
	return Result{Notifications: out, Summary: Summarize(out)}
}

// Sort orders by priority descending, then timestamp descending, then id.
func Sort(ns []domain.Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		a, b := ns[i], ns[j]
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra > rb
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.ID < b.ID
	})
}

func Summarize(ns []domain.Notification) Summary {
	s := Summary{Total: len(ns)}
	for _, n := range ns {
		switch n.Priority {
		case domain.PriorityUrgent:
			s.Urgent++
		case domain.PriorityHigh:
			s.High++
		}
		if n.ActionRequired {
			s.ActionRequired++
		}
	}
	return s
}

// dayPriority is urgent before today, high on today and medium afterwards.
func dayPriority(date, today time.Time) domain.Priority {
	switch {
	case date.Before(today):
		return domain.PriorityUrgent
	case date.Equal(today):
		return domain.PriorityHigh
	default:
		return domain.PriorityMedium
	}
}

func notificationID(kind, key string) string {
	return uuid.NewSHA1(idSpace, []byte(kind+":"+key)).String()
}

func reservationKey(r domain.Reservation) string {
	if r.ID != "" {
		return r.ID
	}
	return r.ReservationNumber
}

func guestLabel(r domain.Reservation) string {
	if r.Guest.Name != "" {
		return r.Guest.Name
	}
	return "Guest"
}

func roomLabel(number string) string {
	if number == "" {
		return "unassigned room"
	}
	return "room " + number
}

func (d *Deriver) checkIn(r domain.Reservation, today time.Time) (domain.Notification, bool) {
	if r.Status != domain.ReservationConfirmed || r.CheckInDate.IsZero() {
		return domain.Notification{}, false
	}
	date := dates.Day(r.CheckInDate, d.loc)
	if date.After(today) {
		return domain.Notification{}, false
	}

	priority := dayPriority(date, today)
	title := "Check-in due today"
	msg := fmt.Sprintf("%s is due to check in to %s", guestLabel(r), roomLabel(r.RoomNumber))
	if priority == domain.PriorityUrgent {
		title = "Overdue check-in"
		msg = fmt.Sprintf("%s was due to check in to %s on %s", guestLabel(r), roomLabel(r.RoomNumber), dates.Format(date))
	}

	return domain.Notification{
		ID:             notificationID("checkin", reservationKey(r)),
		Type:           domain.NotifCheckIn,
		Title:          title,
		Message:        msg,
		Priority:       priority,
		ActionRequired: true,
		Timestamp:      date,
		Details: domain.NotificationDetails{
			ReservationID:      r.ID,
			ConfirmationNumber: r.ReservationNumber,
			GuestName:          r.Guest.Name,
			Phone:              r.Guest.Phone,
			RoomNumber:         r.RoomNumber,
		},
	}, true
}

func (d *Deriver) checkOut(r domain.Reservation, today time.Time) (domain.Notification, bool) {
	if r.Status != domain.ReservationCheckedIn || r.CheckOutDate.IsZero() {
		return domain.Notification{}, false
	}
	date := dates.Day(r.CheckOutDate, d.loc)
	if date.After(today) {
		return domain.Notification{}, false
	}

	priority := dayPriority(date, today)
	title := "Check-out due today"
	msg := fmt.Sprintf("%s is due to check out of %s", guestLabel(r), roomLabel(r.RoomNumber))
	if priority == domain.PriorityUrgent {
		title = "Overdue check-out"
		msg = fmt.Sprintf("%s was due to check out of %s on %s", guestLabel(r), roomLabel(r.RoomNumber), dates.Format(date))
	}

	return domain.Notification{
		ID:             notificationID("checkout", reservationKey(r)),
		Type:           domain.NotifCheckOut,
		Title:          title,
		Message:        msg,
		Priority:       priority,
		ActionRequired: true,
		Timestamp:      date,
		Details: domain.NotificationDetails{
			ReservationID:      r.ID,
			ConfirmationNumber: r.ReservationNumber,
			GuestName:          r.Guest.Name,
			Phone:              r.Guest.Phone,
			RoomNumber:         r.RoomNumber,
		},
	}, true
}

// outstanding flags unpaid balances. The due date is the check-out date.
func (d *Deriver) outstanding(r domain.Reservation, today time.Time) (domain.Notification, bool) {
	if r.Status == domain.ReservationCancelled || !r.PaidAmount.LessThan(r.TotalAmount) {
		return domain.Notification{}, false
	}

	due := today
	if !r.CheckOutDate.IsZero() {
		due = dates.Day(r.CheckOutDate, d.loc)
	}
	daysOverdue := dates.DaysBetween(due, today, d.loc)
	if daysOverdue < 0 {
		daysOverdue = 0
	}

	priority := domain.PriorityMedium
	switch {
	case daysOverdue > d.policy.OverdueUrgentDays:
		priority = domain.PriorityUrgent
	case daysOverdue > d.policy.OverdueHighDays:
		priority = domain.PriorityHigh
	}

	amount := r.Outstanding()
	msg := fmt.Sprintf("Outstanding balance of %s on reservation %s", amount.StringFixed(d.policy.CurrencyDecimals), r.ReservationNumber)
	if daysOverdue > 0 {
		msg += fmt.Sprintf(", %d day(s) overdue", daysOverdue)
	}

	return domain.Notification{
		ID:             notificationID("balance", reservationKey(r)),
		Type:           domain.NotifPayment,
		Title:          "Outstanding balance",
		Message:        msg,
		Priority:       priority,
		ActionRequired: daysOverdue > 0,
		Timestamp:      due,
		Details: domain.NotificationDetails{
			ReservationID:      r.ID,
			ConfirmationNumber: r.ReservationNumber,
			GuestName:          r.Guest.Name,
			Phone:              r.Guest.Phone,
			RoomNumber:         r.RoomNumber,
			OutstandingAmount:  &amount,
			DaysOverdue:        &daysOverdue,
		},
	}, true
}

func (d *Deriver) staleTask(t domain.HousekeepingTask, now time.Time) (domain.Notification, bool) {
	if !t.Open() {
		return domain.Notification{}, false
	}

	hours := 0.0
	if !t.CreatedAt.IsZero() {
		hours = now.Sub(t.CreatedAt).Hours()
	}
	if hours < 0 {
		hours = 0
	}
	hoursOld := math.Round(hours*10) / 10

	priority := domain.PriorityMedium
	switch {
	case t.Priority == domain.TaskPriorityUrgent || hours > d.policy.StaleUrgentHours:
		priority = domain.PriorityUrgent
	case t.Priority == domain.TaskPriorityHigh || hours > d.policy.StaleHighHours:
		priority = domain.PriorityHigh
	}

	kind := domain.NotifHousekeeping
	title := "Pending housekeeping task"
	if t.TaskType == domain.TaskMaintenance {
		kind = domain.NotifMaintenance
		title = "Pending maintenance request"
	}
	assignee := t.AssignedTo
	if assignee == "" {
		assignee = "unassigned"
	}

	ts := t.CreatedAt
	if ts.IsZero() {
		ts = now
	}

	return domain.Notification{
		ID:             notificationID("task", t.ID),
		Type:           kind,
		Title:          title,
		Message:        fmt.Sprintf("%s for %s open for %.1f hours (%s)", taskLabel(t.TaskType), roomLabel(t.RoomNumber), hoursOld, assignee),
		Priority:       priority,
		ActionRequired: priority == domain.PriorityUrgent || priority == domain.PriorityHigh,
		Timestamp:      ts,
		Details: domain.NotificationDetails{
			TaskID:     t.ID,
			RoomNumber: t.RoomNumber,
			AssignedTo: t.AssignedTo,
			HoursOld:   &hoursOld,
		},
	}, true
}

func taskLabel(t domain.TaskType) string {
	switch t {
	case domain.TaskMaintenance:
		return "Maintenance"
	case domain.TaskInspection:
		return "Inspection"
	case domain.TaskDeepClean:
		return "Deep clean"
	default:
		return "Cleaning"
	}
}

func (d *Deriver) failedPayment(p domain.Payment, now time.Time) (domain.Notification, bool) {
	if p.Status != domain.PaymentFailed || p.CreatedAt.IsZero() {
		return domain.Notification{}, false
	}
	if age := now.Sub(p.CreatedAt); age > d.policy.FailedPaymentLookback {
		return domain.Notification{}, false
	}

	amount := p.Amount
	return domain.Notification{
		ID:             notificationID("payment", p.ID),
		Type:           domain.NotifPayment,
		Title:          "Payment failed",
		Message:        fmt.Sprintf("Payment of %s via %s failed", amount.StringFixed(d.policy.CurrencyDecimals), methodLabel(p.Method)),
		Priority:       domain.PriorityHigh,
		ActionRequired: true,
		Timestamp:      p.CreatedAt,
		Details: domain.NotificationDetails{
			ReservationID: p.ReservationID,
			PaymentID:     p.ID,
			Amount:        &amount,
		},
	}, true
}

func methodLabel(m domain.PaymentMethod) string {
	switch m {
	case domain.MethodCash:
		return "cash"
	case domain.MethodCard:
		return "card"
	case domain.MethodBankTransfer:
		return "bank transfer"
	case domain.MethodOnline:
		return "online"
	default:
		return "unknown method"
	}
}

// round applies display precision to money in the details payload.
func round(ns []domain.Notification, places int32) []domain.Notification {
	for i := range ns {
		if a := ns[i].Details.OutstandingAmount; a != nil {
			v := a.Round(places)
			ns[i].Details.OutstandingAmount = &v
		}
		if a := ns[i].Details.Amount; a != nil {
			v := a.Round(places)
			ns[i].Details.Amount = &v
		}
	}
	return ns
}
