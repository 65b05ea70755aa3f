package storefront

import (
	"fmt"
	"strings"

	"github.com/MikeMC777/cafe-altura/internal/order"
)

func (m Model) View() string {
	var b strings.Builder
	m.header(&b)
	switch m.screen {
	case catalogScreen:
		m.viewCatalog(&b)
	case detailScreen:
		m.viewDetail(&b)
	case cartScreen:
		m.viewCart(&b)
	case loginScreen:
		fmt.Fprintln(&b, "Iniciar sesión")
		fmt.Fprintln(&b)
		m.login.view(&b)
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "tab: siguiente campo  enter: entrar  esc: volver")
	case ordersScreen:
		m.viewOrders(&b)
	case orderScreen:
		m.viewOrder(&b)
	case newOrderScreen:
		m.viewNewOrder(&b)
	}
	if m.loading {
		fmt.Fprintln(&b, "\nCargando...")
	}
	if m.notice != "" {
		fmt.Fprintln(&b, "\n"+m.notice)
	}
	return b.String()
}

func (m Model) header(b *strings.Builder) {
	who := "invitado"
	if u, ok := m.session.User(); ok {
		who = u.Name
		if m.session.IsAdmin() {
			who += " (admin)"
		}
	}
	fmt.Fprintf(b, "Café de Altura   [carrito: %d]   %s\n\n", m.cart.Count(), who)
}

func cursorMark(on bool) string {
	if on {
		return ">"
	}
	return " "
}

func (m Model) viewCatalog(b *strings.Builder) {
	fmt.Fprintln(b, "Granos")
	fmt.Fprintln(b)
	for i, p := range m.products {
		from := ""
		if len(p.Prices) > 0 {
			from = "desde $" + p.Prices[0].Amount.StringFixed(2)
		}
		fmt.Fprintf(b, " %s %s (%s) %s\n", cursorMark(i == m.cursor), p.Name, p.Origin, from)
	}
	if len(m.products) == 0 && !m.loading {
		fmt.Fprintln(b, " sin productos")
	}
	fmt.Fprintln(b)
	keys := "enter: ver  c: carrito  r: recargar  q: salir"
	if m.session.LoggedIn() {
		keys += "  l: cerrar sesión"
	} else {
		keys += "  l: entrar"
	}
	if m.session.IsAdmin() {
		keys += "  a: pedidos"
	}
	fmt.Fprintln(b, keys)
}

func (m Model) viewDetail(b *strings.Builder) {
	p := m.detail.product
	fmt.Fprintf(b, "%s - %s\n", p.Name, p.Origin)
	if p.Notes != "" {
		fmt.Fprintln(b, p.Notes)
	}
	fmt.Fprintln(b)
	for row, label := range []string{"Peso", "Tostado", "Molido"} {
		var opts []string
		for i, o := range m.detail.options(row) {
			if i == m.detail.pick[row] {
				o = "[" + o + "]"
			}
			opts = append(opts, o)
		}
		fmt.Fprintf(b, " %s %-8s %s\n", cursorMark(row == m.detail.row), label, strings.Join(opts, " "))
	}
	sel := m.detail.selection()
	fmt.Fprintln(b)
	if sel.Complete() {
		fmt.Fprintf(b, "Precio: $%s\n", sel.Option.Amount.StringFixed(2))
		fmt.Fprintln(b, "enter: agregar al carrito  c: carrito  esc: volver")
	} else {
		fmt.Fprintln(b, "Elige peso, tostado y molido para agregar  esc: volver")
	}
}

func (m Model) viewCart(b *strings.Builder) {
	snap := m.cart.Snapshot()
	fmt.Fprintln(b, "Carrito")
	fmt.Fprintln(b)
	if len(snap.Items) == 0 {
		fmt.Fprintln(b, " vacío")
	}
	for i, it := range snap.Items {
		fmt.Fprintf(b, " %s %dx %s %s %s/%s  $%s\n",
			cursorMark(i == m.cartCursor), it.Quantity, it.Name, it.Option.Weight,
			it.Roast, it.Grind, it.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(b, "\nTotal: $%s (%d unidades)\n\n", snap.Total.StringFixed(2), snap.Count)
	fmt.Fprintln(b, "d: quitar variante  x: quitar producto  v: vaciar  p: pagar  esc: volver")
}

func (m Model) viewOrders(b *strings.Builder) {
	fmt.Fprintln(b, "Pedidos")
	fmt.Fprintln(b)
	for i, o := range m.orders {
		fmt.Fprintf(b, " %s %s  %-10s %-18s $%s  %s\n",
			cursorMark(i == m.orderCursor), o.CreatedAt.Format("2006-01-02 15:04"),
			o.Channel, o.Status.Label(), o.TotalAmount.StringFixed(2), o.ClientName)
	}
	if len(m.orders) == 0 && !m.loading {
		fmt.Fprintln(b, " sin pedidos")
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b, "enter: detalle  n: nuevo pedido  r: recargar  esc: volver")
}

func (m Model) viewOrder(b *strings.Builder) {
	o := m.current
	if o == nil {
		return
	}
	fmt.Fprintf(b, "Pedido %s\n\n", o.ID)
	fmt.Fprintf(b, " Cliente: %s\n", o.ClientName)
	fmt.Fprintf(b, " Canal:   %s\n", o.Channel)
	fmt.Fprintf(b, " Detalle: %s\n", o.Detail)
	fmt.Fprintf(b, " Total:   $%s\n", o.TotalAmount.StringFixed(2))
	fmt.Fprintf(b, " Estado:  %s\n\n", o.Status.Label())
	for i, st := range order.Statuses {
		mark := cursorMark(i == m.statusPick)
		if st == o.Status {
			fmt.Fprintf(b, " %s %s (actual)\n", mark, st.Label())
			continue
		}
		fmt.Fprintf(b, " %s %s\n", mark, st.Label())
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b, "enter: cambiar estado  esc: volver")
}

func (m Model) viewNewOrder(b *strings.Builder) {
	fmt.Fprintln(b, "Nuevo pedido")
	fmt.Fprintln(b)
	f := form{fields: append([]field(nil), m.newOrder.fields...), focus: m.newOrder.focus}
	f.set(channelField, "< "+string(order.Channels[m.channelIdx])+" >")
	f.view(b)
	fmt.Fprintln(b)
	fmt.Fprintln(b, "tab: siguiente campo  ←/→: canal  enter: crear  esc: volver")
}
