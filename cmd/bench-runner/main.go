package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type customerResponse struct {
	ID string `json:"id"`
}

type productResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type orderItemPayload struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type orderPayload struct {
	CustomerID string             `json:"customer_id"`
	Products   []orderItemPayload `json:"products"`
}

type metrics struct {
	mu           sync.Mutex
	success      int
	rejected     int
	errors       int
	latenciesMs  []float64
	statusCounts map[int]int
}

func newMetrics() *metrics {
	return &metrics{
		statusCounts: make(map[int]int),
	}
}

func (m *metrics) record(status int, latency time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.errors++
		return
	}
	m.statusCounts[status]++
	switch {
	case status == 200:
		m.success++
		m.latenciesMs = append(m.latenciesMs, float64(latency.Microseconds())/1000.0)
	case status == 400:
		// Rejeição de negócio (ex.: estoque esgotado) é um resultado esperado
		m.rejected++
	default:
		m.errors++
	}
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "store service base URL")
	orders := flag.Int("orders", 100, "number of orders to fire")
	concurrency := flag.Int("concurrency", 10, "concurrent workers")
	stock := flag.Int("stock", 1000, "initial stock of the benchmark product")
	flag.Parse()

	client := resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")

	// Seed: um cliente e um produto com estoque conhecido
	var customer customerResponse
	resp, err := client.R().
		SetBody(map[string]string{
			"name":  "Bench Customer",
			"email": fmt.Sprintf("bench-%s@example.com", uuid.New().String()),
		}).
		SetResult(&customer).
		Post("/customers")
	if err != nil || resp.IsError() {
		log.Fatalf("❌ Failed to seed customer: %v (%s)", err, resp.Status())
	}

	var product productResponse
	resp, err = client.R().
		SetBody(map[string]interface{}{
			"name":     fmt.Sprintf("Bench Product %s", uuid.New().String()),
			"price":    4.5,
			"quantity": *stock,
		}).
		SetResult(&product).
		Post("/products")
	if err != nil || resp.IsError() {
		log.Fatalf("❌ Failed to seed product: %v (%s)", err, resp.Status())
	}

	log.Printf("🚀 Firing %d orders against %s (concurrency=%d, stock=%d)",
		*orders, *baseURL, *concurrency, *stock)

	m := newMetrics()
	jobs := make(chan int)
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				payload := orderPayload{
					CustomerID: customer.ID,
					Products: []orderItemPayload{
						{ID: product.ID, Quantity: 1},
					},
				}

				reqStart := time.Now()
				resp, err := client.R().SetBody(payload).Post("/orders")
				latency := time.Since(reqStart)

				status := 0
				if resp != nil {
					status = resp.StatusCode()
				}
				m.record(status, latency, err)
			}
		}()
	}

	for i := 0; i < *orders; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)

	sort.Float64s(m.latenciesMs)
	var total float64
	for _, l := range m.latenciesMs {
		total += l
	}
	avg := 0.0
	if len(m.latenciesMs) > 0 {
		avg = total / float64(len(m.latenciesMs))
	}

	log.Printf("✅ Done in %.2fs | success=%d rejected=%d errors=%d | throughput=%.1f req/s",
		elapsed.Seconds(), m.success, m.rejected, m.errors,
		float64(*orders)/elapsed.Seconds())
	log.Printf("📊 Latency ms: avg=%.2f p50=%.2f p90=%.2f p99=%.2f",
		avg,
		percentile(m.latenciesMs, 0.50),
		percentile(m.latenciesMs, 0.90),
		percentile(m.latenciesMs, 0.99))
	for status, count := range m.statusCounts {
		log.Printf("   status %d: %d", status, count)
	}
}
