package storefront

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-altura/internal/order"
)

func (m Model) updateCatalog(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "q":
		m.cancel()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.products) == 0 {
			return m, nil
		}
		m.enter(detailScreen)
		m.detail = detail{product: m.products[m.cursor]}
	case "c":
		m.enter(cartScreen)
		m.cartCursor = 0
	case "r":
		m.loading = true
		m.notice = ""
		return m, fetchProducts(m.ctx, m.api, m.gen)
	case "l":
		if m.session.LoggedIn() {
			m.session.Logout()
			m.api.SetToken("")
			m.notice = "Sesión cerrada"
			return m, nil
		}
		return m.toLogin(catalogScreen)
	case "a":
		if !m.session.IsAdmin() {
			m.notice = "Solo administradores"
			return m, nil
		}
		return m.toOrders()
	}
	return m, nil
}

func (m Model) updateDetail(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc", "backspace":
		return m.toCatalog()
	case "up", "k":
		if m.detail.row > 0 {
			m.detail.row--
		}
	case "down", "j":
		if m.detail.row < 2 {
			m.detail.row++
		}
	case "left", "h":
		if m.detail.pick[m.detail.row] > 0 {
			m.detail.pick[m.detail.row]--
		}
	case "right", "l":
		if m.detail.pick[m.detail.row] < len(m.detail.options(m.detail.row))-1 {
			m.detail.pick[m.detail.row]++
		}
	case "enter", "a":
		sel := m.detail.selection()
		if !m.cart.Add(sel) {
			m.notice = "Elige peso, tostado y molido"
			return m, nil
		}
		m.notice = fmt.Sprintf("Agregado: %s %s (%d en el carrito)", sel.Name, sel.Option.Weight, m.cart.Count())
	case "c":
		m.enter(cartScreen)
		m.cartCursor = 0
	}
	return m, nil
}

func (m Model) updateCart(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cart.Items()
	switch k.String() {
	case "esc", "backspace":
		return m.toCatalog()
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(items)-1 {
			m.cartCursor++
		}
	case "d":
		if len(items) > 0 {
			m.cart.RemoveVariant(items[m.cartCursor].Key())
			m.clampCart()
		}
	case "x":
		if len(items) > 0 {
			m.cart.Remove(items[m.cartCursor].ProductID)
			m.clampCart()
		}
	case "v":
		m.cart.Clear()
		m.cartCursor = 0
	case "enter", "p":
		if len(items) == 0 {
			m.notice = "El carrito está vacío"
			return m, nil
		}
		if !m.session.LoggedIn() {
			return m.toLogin(cartScreen)
		}
		u, _ := m.session.User()
		m.notice = fmt.Sprintf("Gracias %s: coordinaremos el pago de $%s por mensaje", u.Name, m.cart.Total().StringFixed(2))
	}
	return m, nil
}

func (m *Model) clampCart() {
	if n := len(m.cart.Items()); m.cartCursor >= n {
		m.cartCursor = max(0, n-1)
	}
}

func (m Model) updateLogin(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.Type {
	case tea.KeyEsc:
		return m.back(m.returnTo)
	case tea.KeyEnter:
		if m.loading {
			return m, nil
		}
		email, password := m.login.value(0), m.login.fields[1].value
		if email == "" || password == "" {
			m.notice = "Email y contraseña son obligatorios"
			return m, nil
		}
		m.loading = true
		m.notice = ""
		return m, doLogin(m.ctx, m.api, m.gen, email, password)
	}
	m.login.update(k)
	return m, nil
}

func (m Model) updateOrders(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc", "backspace":
		return m.toCatalog()
	case "up", "k":
		if m.orderCursor > 0 {
			m.orderCursor--
		}
	case "down", "j":
		if m.orderCursor < len(m.orders)-1 {
			m.orderCursor++
		}
	case "r":
		m.loading = true
		m.notice = ""
		return m, fetchOrders(m.ctx, m.api, m.gen)
	case "n":
		m.enter(newOrderScreen)
		m.channelIdx = 0
		m.newOrder = newForm(
			field{label: "Cliente"},
			field{label: "Canal"},
			field{label: "Detalle"},
			field{label: "Total"},
		)
	case "enter":
		if len(m.orders) == 0 {
			return m, nil
		}
		o := m.orders[m.orderCursor]
		m.enter(orderScreen)
		m.current = &o
		m.statusPick = statusIndex(o.Status)
	}
	return m, nil
}

func (m Model) updateOrder(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc", "backspace":
		return m.toOrders()
	case "left", "h", "up", "k":
		if m.statusPick > 0 {
			m.statusPick--
		}
	case "right", "l", "down", "j":
		if m.statusPick < len(order.Statuses)-1 {
			m.statusPick++
		}
	case "enter":
		if m.loading || m.current == nil {
			return m, nil
		}
		target := order.Statuses[m.statusPick]
		if target == m.current.Status {
			m.notice = "El pedido ya está en " + target.Label()
			return m, nil
		}
		m.loading = true
		m.notice = ""
		return m, setStatus(m.ctx, m.api, m.gen, m.current.ID, target)
	}
	return m, nil
}

const channelField = 1

func (m Model) updateNewOrder(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.Type {
	case tea.KeyEsc:
		return m.toOrders()
	case tea.KeyLeft, tea.KeyRight:
		if m.newOrder.focus == channelField {
			n := len(order.Channels)
			if k.Type == tea.KeyLeft {
				m.channelIdx = (m.channelIdx + n - 1) % n
			} else {
				m.channelIdx = (m.channelIdx + 1) % n
			}
		}
		return m, nil
	case tea.KeyEnter:
		if m.loading {
			return m, nil
		}
		req := order.CreateOrderRequest{
			ClientName: m.newOrder.value(0),
			Channel:    string(order.Channels[m.channelIdx]),
			Detail:     m.newOrder.value(2),
		}
		if raw := m.newOrder.value(3); raw != "" {
			total, err := decimal.NewFromString(raw)
			if err != nil {
				m.notice = "Total inválido: " + raw
				return m, nil
			}
			req.TotalAmount = &total
		}
		m.loading = true
		m.notice = ""
		return m, createOrder(m.ctx, m.api, m.gen, req)
	}
	if m.newOrder.focus == channelField && (k.Type == tea.KeyRunes || k.Type == tea.KeySpace || k.Type == tea.KeyBackspace) {
		return m, nil
	}
	m.newOrder.update(k)
	return m, nil
}
