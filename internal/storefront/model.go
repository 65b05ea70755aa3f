// Package storefront is the terminal storefront: catalog, cart, login and the
// admin order screens, driven by bubbletea.
package storefront

import (
	"context"
	"errors"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeMC777/cafe-altura/internal/cart"
	"github.com/MikeMC777/cafe-altura/internal/client"
	"github.com/MikeMC777/cafe-altura/internal/order"
	"github.com/MikeMC777/cafe-altura/internal/product"
	"github.com/MikeMC777/cafe-altura/internal/user"
)

// API is the slice of the REST client the storefront uses. *client.Client
// implements it.
type API interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	Login(ctx context.Context, email, password string) (*user.LoginResponse, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	CreateOrder(ctx context.Context, req order.CreateOrderRequest) (*order.Order, error)
	SetOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error)
	SetToken(tok string)
}

var _ API = (*client.Client)(nil)

type screen int

const (
	catalogScreen screen = iota
	detailScreen
	cartScreen
	loginScreen
	ordersScreen
	orderScreen
	newOrderScreen
)

// Results of async calls. gen is the screen generation that issued the call;
// a result whose gen no longer matches is dropped.
type (
	productsMsg struct {
		gen   int
		items []product.Product
		err   error
	}
	loginMsg struct {
		gen int
		res *user.LoginResponse
		err error
	}
	ordersMsg struct {
		gen   int
		items []order.Order
		err   error
	}
	orderMsg struct {
		gen   int
		order *order.Order
		err   error
	}
)

// detail holds the option pickers of the product detail screen.
type detail struct {
	product product.Product
	row     int    // 0 weight, 1 roast, 2 grind
	pick    [3]int // index into each option list
}

func (d detail) options(row int) []string {
	switch row {
	case 0:
		ws := make([]string, len(d.product.Prices))
		for i, po := range d.product.Prices {
			ws[i] = po.Weight
		}
		return ws
	case 1:
		return d.product.Roasts
	default:
		return d.product.Grinds
	}
}

func (d detail) choice(row int) string {
	opts := d.options(row)
	if d.pick[row] < 0 || d.pick[row] >= len(opts) {
		return ""
	}
	return opts[d.pick[row]]
}

func (d detail) selection() cart.Selection {
	sel := cart.Selection{
		ProductID: d.product.ID,
		Name:      d.product.Name,
		Roast:     d.choice(1),
		Grind:     d.choice(2),
	}
	if po, ok := d.product.Option(d.choice(0)); ok {
		sel.Option = po
	}
	return sel
}

// Model is the bubbletea model of the storefront.
type Model struct {
	api     API
	cart    *cart.Cart
	session *Session

	screen   screen
	returnTo screen
	gen      int
	ctx      context.Context
	cancel   context.CancelFunc

	loading bool
	notice  string

	products   []product.Product
	cursor     int
	detail     detail
	cartCursor int

	login form

	orders      []order.Order
	orderCursor int
	current     *order.Order
	statusPick  int

	newOrder   form
	channelIdx int
}

func NewModel(api API, c *cart.Cart, s *Session) Model {
	m := Model{api: api, cart: c, session: s}
	m.enter(catalogScreen)
	m.loading = true
	return m
}

func (m Model) Init() tea.Cmd {
	return fetchProducts(m.ctx, m.api, m.gen)
}

// enter switches screens. The previous screen's in-flight calls are cancelled
// and their results will be dropped.
func (m *Model) enter(s screen) {
	if m.cancel != nil {
		m.cancel()
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.gen++
	m.screen = s
	m.loading = false
	m.notice = ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case productsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.notice = errText(msg.err)
			return m, nil
		}
		m.products = msg.items
		if m.cursor >= len(m.products) {
			m.cursor = 0
		}

	case loginMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.notice = errText(msg.err)
			return m, nil
		}
		m.session.Login(msg.res.User, msg.res.Token)
		m.api.SetToken(msg.res.Token)
		if m.session.IsAdmin() && m.returnTo == catalogScreen {
			return m.toOrders()
		}
		return m.back(m.returnTo)

	case ordersMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.notice = errText(msg.err)
			return m, nil
		}
		m.orders = msg.items
		if m.orderCursor >= len(m.orders) {
			m.orderCursor = 0
		}

	case orderMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.notice = errText(msg.err)
			return m, nil
		}
		if m.screen == newOrderScreen {
			mm, cmd := m.toOrders()
			mm.notice = "Pedido creado para " + msg.order.ClientName
			return mm, cmd
		}
		m.current = msg.order
		m.statusPick = statusIndex(msg.order.Status)
		m.notice = "Estado actualizado: " + msg.order.Status.Label()
	}
	return m, nil
}

func (m Model) updateKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case catalogScreen:
		return m.updateCatalog(k)
	case detailScreen:
		return m.updateDetail(k)
	case cartScreen:
		return m.updateCart(k)
	case loginScreen:
		return m.updateLogin(k)
	case ordersScreen:
		return m.updateOrders(k)
	case orderScreen:
		return m.updateOrder(k)
	case newOrderScreen:
		return m.updateNewOrder(k)
	}
	return m, nil
}

// back returns to s, refetching whatever s shows if it has nothing yet.
func (m Model) back(s screen) (Model, tea.Cmd) {
	switch s {
	case ordersScreen:
		return m.toOrders()
	case cartScreen:
		m.enter(cartScreen)
		return m, nil
	default:
		return m.toCatalog()
	}
}

func (m Model) toCatalog() (Model, tea.Cmd) {
	m.enter(catalogScreen)
	if len(m.products) > 0 {
		return m, nil
	}
	m.loading = true
	return m, fetchProducts(m.ctx, m.api, m.gen)
}

func (m Model) toLogin(returnTo screen) (Model, tea.Cmd) {
	m.enter(loginScreen)
	m.returnTo = returnTo
	m.login = newForm(field{label: "Email"}, field{label: "Contraseña", secret: true})
	return m, nil
}

func (m Model) toOrders() (Model, tea.Cmd) {
	m.enter(ordersScreen)
	m.current = nil
	m.loading = true
	return m, fetchOrders(m.ctx, m.api, m.gen)
}

func fetchProducts(ctx context.Context, api API, gen int) tea.Cmd {
	return func() tea.Msg {
		items, err := api.ListProducts(ctx)
		return productsMsg{gen: gen, items: items, err: err}
	}
}

func doLogin(ctx context.Context, api API, gen int, email, password string) tea.Cmd {
	return func() tea.Msg {
		res, err := api.Login(ctx, email, password)
		return loginMsg{gen: gen, res: res, err: err}
	}
}

func fetchOrders(ctx context.Context, api API, gen int) tea.Cmd {
	return func() tea.Msg {
		items, err := api.ListOrders(ctx)
		return ordersMsg{gen: gen, items: items, err: err}
	}
}

func setStatus(ctx context.Context, api API, gen int, id string, st order.Status) tea.Cmd {
	return func() tea.Msg {
		o, err := api.SetOrderStatus(ctx, id, st)
		return orderMsg{gen: gen, order: o, err: err}
	}
}

func createOrder(ctx context.Context, api API, gen int, req order.CreateOrderRequest) tea.Cmd {
	return func() tea.Msg {
		o, err := api.CreateOrder(ctx, req)
		return orderMsg{gen: gen, order: o, err: err}
	}
}

func statusIndex(s order.Status) int {
	for i, st := range order.Statuses {
		if st == s {
			return i
		}
	}
	return 0
}

func errText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "Sesión no válida o sin permisos"
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	if errors.Is(err, context.Canceled) {
		return "Cancelado"
	}
	return "Error: " + err.Error()
}
