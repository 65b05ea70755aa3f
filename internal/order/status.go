package order

import "strings"

// Status is the lifecycle state of an order. Values are the wire form.
type Status string

const (
	Pending           Status = "Pending"
	Paid              Status = "Paid"
	InPreparation     Status = "InPreparation"
	ReadyForPickup    Status = "ReadyForPickup"
	DeliveryConfirmed Status = "DeliveryConfirmed"
	Closed            Status = "Closed"
	Cancelled         Status = "Cancelled"
)

// Statuses lists every status in declared order.
var Statuses = []Status{Pending, Paid, InPreparation, ReadyForPickup, DeliveryConfirmed, Closed, Cancelled}

var labels = map[Status]string{
	Pending:           "Pendiente",
	Paid:              "Pagado",
	InPreparation:     "En Preparación",
	ReadyForPickup:    "Listo para Entrega",
	DeliveryConfirmed: "Confirmó Entrega",
	Closed:            "Cerrado",
	Cancelled:         "Cancelado",
}

// Label is the Spanish text shown to the admin.
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Terminal reports whether nothing may follow s under the strict policy.
func (s Status) Terminal() bool { return s == Closed || s == Cancelled }

// ParseStatus accepts the enum value or its label, ignoring case and
// surrounding spaces.
func ParseStatus(v string) (Status, bool) {
	v = strings.TrimSpace(v)
	for _, s := range Statuses {
		if strings.EqualFold(v, string(s)) || strings.EqualFold(v, labels[s]) {
			return s, true
		}
	}
	return "", false
}

// next is the forward successor of s in the declared sequence. Closed and
// Cancelled have none.
func (s Status) next() (Status, bool) {
	for i, st := range Statuses[:len(Statuses)-2] {
		if st == s {
			return Statuses[i+1], true
		}
	}
	return "", false
}

// TransitionPolicy decides which status changes SetStatus accepts.
type TransitionPolicy int

const (
	// Permissive accepts any status to any status.
	Permissive TransitionPolicy = iota
	// Strict walks the declared sequence one step at a time. Cancelled is
	// reachable from any non-terminal status; Closed and Cancelled are final.
	Strict
)

func (p TransitionPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

// Allows reports whether an order in from may be moved to to.
func (p TransitionPolicy) Allows(from, to Status) bool {
	if !to.Valid() {
		return false
	}
	if p == Permissive || from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == Cancelled {
		return true
	}
	n, ok := from.next()
	return ok && n == to
}

// Targets lists the statuses an order in from may move to, excluding from
// itself. Used by the admin panel to build its picker.
func (p TransitionPolicy) Targets(from Status) []Status {
	var out []Status
	for _, s := range Statuses {
		if s != from && p.Allows(from, s) {
			out = append(out, s)
		}
	}
	return out
}
