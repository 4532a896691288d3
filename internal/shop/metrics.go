package shop

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"MiniCart/internal/inventory"
)

const resultOK = "ok"

// shopMetrics is nil-safe so handlers can record unconditionally.
type shopMetrics struct {
	mutations *prometheus.CounterVec
	checkouts *prometheus.CounterVec
}

func newShopMetrics(reg prometheus.Registerer, products func() []inventory.Product) *shopMetrics {
	m := &shopMetrics{
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minicart_cart_mutations_total",
				Help: "Cart add/update calls by outcome",
			},
			[]string{"op", "result"},
		),
		checkouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minicart_checkouts_total",
				Help: "Checkout attempts by outcome",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.mutations, m.checkouts, newStockCollector(products))
	return m
}

func (m *shopMetrics) mutation(op string, err error) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, resultLabel(err)).Inc()
}

func (m *shopMetrics) checkout(err error) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(resultLabel(err)).Inc()
}

// stockCollector reads stock from the engine on every scrape, so the
// exported value is always a snapshot taken under the engine lock.
type stockCollector struct {
	desc     *prometheus.Desc
	products func() []inventory.Product
}

func newStockCollector(products func() []inventory.Product) *stockCollector {
	return &stockCollector{
		desc: prometheus.NewDesc(
			"minicart_product_stock",
			"Units in stock per product",
			[]string{"product_id"}, nil,
		),
		products: products,
	}
}

func (c *stockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *stockCollector) Collect(ch chan<- prometheus.Metric) {
	for _, p := range c.products() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(p.Stock), strconv.Itoa(p.ID))
	}
}

func resultLabel(err error) string {
	if err == nil {
		return resultOK
	}
	return errorKind(err)
}
