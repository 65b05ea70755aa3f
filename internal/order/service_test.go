package order

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/cafe-altura/internal/apperr"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) error {
	p.events = append(p.events, ev)
	return p.err
}

// failingRepo fails every write so tests can check nothing is stored.
type failingRepo struct {
	*MemRepo
	creates int
}

func (r *failingRepo) Create(ctx context.Context, o *Order) error {
	r.creates++
	return errors.New("connection reset")
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func newTestService(policy TransitionPolicy) (*Service, *MemRepo, *recordingPublisher) {
	repo := NewMemRepo()
	pub := &recordingPublisher{}
	svc := NewService(repo, policy, pub)

	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
	}
	return svc, repo, pub
}

func TestCreate_Defaults(t *testing.T) {
	svc, repo, pub := newTestService(Permissive)

	o, err := svc.Create(context.Background(), CreateOrderRequest{
		ClientName:  "  Ana ",
		Detail:      "2x Arábica 250g",
		TotalAmount: amount("360"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", o.ClientName)
	assert.Equal(t, Instagram, o.Channel)
	assert.Equal(t, Pending, o.Status)
	assert.False(t, o.CreatedAt.IsZero())

	stored, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, *o, *stored)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventCreated, pub.events[0].EventType)
	assert.Equal(t, o.ID, pub.events[0].OrderID)
}

func TestCreate_ValidationPersistsNothing(t *testing.T) {
	cases := map[string]CreateOrderRequest{
		"sin total":        {ClientName: "Ana", Detail: "x"},
		"total negativo":   {ClientName: "Ana", Detail: "x", TotalAmount: amount("-1")},
		"tres decimales":   {ClientName: "Ana", Detail: "x", TotalAmount: amount("95.555")},
		"total muy grande": {ClientName: "Ana", Detail: "x", TotalAmount: amount("10000000000")},
		"sin cliente":      {ClientName: "   ", Detail: "x", TotalAmount: amount("1")},
		"sin detalle":      {ClientName: "Ana", Detail: "", TotalAmount: amount("1")},
		"canal invalido":   {ClientName: "Ana", Detail: "x", Channel: "TikTok", TotalAmount: amount("1")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, pub := newTestService(Permissive)
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))

			all, _ := repo.List(context.Background())
			assert.Empty(t, all)
			assert.Empty(t, pub.events)
		})
	}
}

func TestCreate_TotalLimits(t *testing.T) {
	svc, _, _ := newTestService(Permissive)

	// trailing zeros are not extra precision
	o, err := svc.Create(context.Background(), CreateOrderRequest{ClientName: "Ana", Detail: "x", TotalAmount: amount("95.5000")})
	require.NoError(t, err)
	assert.Equal(t, "95.50", o.TotalAmount.StringFixed(2))

	o, err = svc.Create(context.Background(), CreateOrderRequest{ClientName: "Ana", Detail: "x", TotalAmount: amount("9999999999.99")})
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("9999999999.99")))
}

func TestCreate_ZeroTotalAndChannelCase(t *testing.T) {
	svc, _, _ := newTestService(Permissive)
	o, err := svc.Create(context.Background(), CreateOrderRequest{
		ClientName: "Luis", Detail: "muestra", Channel: "whatsapp", TotalAmount: amount("0"),
	})
	require.NoError(t, err)
	assert.Equal(t, WhatsApp, o.Channel)
	assert.True(t, o.TotalAmount.IsZero())
}

func TestCreate_RepoFailureIsInternal(t *testing.T) {
	repo := &failingRepo{MemRepo: NewMemRepo()}
	pub := &recordingPublisher{}
	svc := NewService(repo, Permissive, pub)

	_, err := svc.Create(context.Background(), CreateOrderRequest{ClientName: "Ana", Detail: "x", TotalAmount: amount("1")})
	require.Error(t, err)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	assert.Equal(t, "internal error", apperr.Message(err))
	assert.Equal(t, 1, repo.creates)
	assert.Empty(t, pub.events)
}

func TestCreate_PublishFailureDoesNotFail(t *testing.T) {
	svc, _, pub := newTestService(Permissive)
	pub.err = errors.New("broker down")
	_, err := svc.Create(context.Background(), CreateOrderRequest{ClientName: "Ana", Detail: "x", TotalAmount: amount("1")})
	require.NoError(t, err)
}

func TestList_NewestFirst(t *testing.T) {
	svc, _, _ := newTestService(Permissive)
	for i := 0; i < 4; i++ {
		_, err := svc.Create(context.Background(), CreateOrderRequest{
			ClientName: fmt.Sprintf("c%d", i), Detail: "x", TotalAmount: amount("1"),
		})
		require.NoError(t, err)
	}
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "orden no decreciente en %d", i)
	}
	assert.Equal(t, "c3", all[0].ClientName)
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newTestService(Permissive)

	_, err := svc.Get(context.Background(), "00000000-0000-0000-0000-000000000099")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = svc.Get(context.Background(), "not-a-uuid")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestSetStatus_Permissive(t *testing.T) {
	svc, _, pub := newTestService(Permissive)
	ctx := context.Background()
	o, err := svc.Create(ctx, CreateOrderRequest{ClientName: "Ana", Detail: "x", TotalAmount: amount("360")})
	require.NoError(t, err)

	got, err := svc.SetStatus(ctx, o.ID, "Closed")
	require.NoError(t, err)
	assert.Equal(t, Closed, got.Status)

	// any to any, including out of Closed, and labels are accepted
	got, err = svc.SetStatus(ctx, o.ID, "Pendiente")
	require.NoError(t, err)
	assert.Equal(t, Pending, got.Status)
	assert.Equal(t, o.CreatedAt, got.CreatedAt)
	assert.Equal(t, o.Detail, got.Detail)

	require.Len(t, pub.events, 3)
	assert.Equal(t, EventStatusChanged, pub.events[2].EventType)
	assert.Equal(t, Closed, pub.events[2].PreviousStatus)
}

func TestSetStatus_CancelTwiceIsIdempotent(t *testing.T) {
	for _, policy := range []TransitionPolicy{Permissive, Strict} {
		t.Run(policy.String(), func(t *testing.T) {
			svc, _, pub := newTestService(policy)
			ctx := context.Background()
			o, err := svc.Create(ctx, CreateOrderRequest{ClientName: "Ana", Detail: "x", TotalAmount: amount("1")})
			require.NoError(t, err)

			first, err := svc.SetStatus(ctx, o.ID, "Cancelled")
			require.NoError(t, err)
			second, err := svc.SetStatus(ctx, o.ID, "Cancelled")
			require.NoError(t, err)
			assert.Equal(t, *first, *second)
			assert.Equal(t, Cancelled, second.Status)

			// one created + one status change
			assert.Len(t, pub.events, 2)
		})
	}
}

func TestSetStatus_Errors(t *testing.T) {
	svc, _, _ := newTestService(Permissive)
	ctx := context.Background()
	o, err := svc.Create(ctx, CreateOrderRequest{ClientName: "Ana", Detail: "x", TotalAmount: amount("1")})
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, o.ID, "Shipped")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.SetStatus(ctx, "00000000-0000-0000-0000-000000000099", "Paid")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = svc.SetStatus(ctx, "zzz", "Paid")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// an unknown status on a missing order is still a validation error
	_, err = svc.SetStatus(ctx, "zzz", "Shipped")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestSetStatus_StrictWalk(t *testing.T) {
	svc, _, _ := newTestService(Strict)
	ctx := context.Background()
	o, err := svc.Create(ctx, CreateOrderRequest{ClientName: "Ana", Detail: "x", TotalAmount: amount("1")})
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, o.ID, "ReadyForPickup")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err), "no se puede saltar estados")

	for _, s := range []Status{Paid, InPreparation, ReadyForPickup, DeliveryConfirmed, Closed} {
		got, err := svc.SetStatus(ctx, o.ID, string(s))
		require.NoError(t, err, "paso a %s", s)
		assert.Equal(t, s, got.Status)
	}

	_, err = svc.SetStatus(ctx, o.ID, "Cancelled")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err), "Closed es final")
}

func TestTransitionPolicy_Strict(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{Pending, Paid, true},
		{Pending, Pending, true},
		{Pending, InPreparation, false},
		{Paid, Pending, false},
		{InPreparation, Cancelled, true},
		{DeliveryConfirmed, Closed, true},
		{Closed, Cancelled, false},
		{Closed, Closed, true},
		{Cancelled, Pending, false},
		{Pending, Status("Shipped"), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Strict.Allows(c.from, c.to), "%s -> %s", c.from, c.to)
	}

	assert.True(t, Permissive.Allows(Cancelled, Pending))
	assert.Equal(t, []Status{Paid, Cancelled}, Strict.Targets(Pending))
	assert.Empty(t, Strict.Targets(Closed))
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("En Preparación")
	require.True(t, ok)
	assert.Equal(t, InPreparation, s)

	s, ok = ParseStatus(" readyforpickup ")
	require.True(t, ok)
	assert.Equal(t, ReadyForPickup, s)

	_, ok = ParseStatus("")
	assert.False(t, ok)

	assert.Equal(t, "Confirmó Entrega", DeliveryConfirmed.Label())
}
