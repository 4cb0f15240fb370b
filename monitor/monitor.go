// Package monitor runs the scheduled low-stock scan. It repeats the same
// threshold check settlement performs reactively, catching drift from
// restocks and manual adjustments that happen outside an order flow.
package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"pizza-delivery-api/models"
	"pizza-delivery-api/notify"
)

// StockScanner is the slice of the inventory ledger the monitor needs.
type StockScanner interface {
	ScanLowStock(ctx context.Context) ([]models.InventoryItem, error)
}

// Monitor scans the inventory ledger on a fixed wall-clock interval.
type Monitor struct {
	stock    StockScanner
	notifier notify.Notifier
	interval time.Duration
	timeout  time.Duration
	wg       sync.WaitGroup
}

func New(stock StockScanner, notifier notify.Notifier, interval, timeout time.Duration) *Monitor {
	return &Monitor{
		stock:    stock,
		notifier: notifier,
		interval: interval,
		timeout:  timeout,
	}
}

// Start launches the scan loop. It returns immediately; the loop stops when
// ctx is cancelled. Stop waits for the loop to drain.
func (m *Monitor) Start(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, m.timeout)
				notified, items, err := m.RunScan(runCtx)
				cancel()
				if err != nil {
					// Retried at the next tick, never immediately.
					log.Printf("stock monitor: scan failed: %v", err)
					continue
				}
				if notified {
					log.Printf("stock monitor: notified for %d low-stock items", len(items))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop blocks until the scan loop has exited.
func (m *Monitor) Stop() {
	m.wg.Wait()
}

// RunScan performs one low-stock scan and raises a notification when any item
// sits at or below its threshold. It re-notifies on every run while the
// breach persists; there is no suppression window.
func (m *Monitor) RunScan(ctx context.Context) (bool, []models.InventoryItem, error) {
	items, err := m.stock.ScanLowStock(ctx)
	if err != nil {
		return false, nil, err
	}
	if len(items) == 0 {
		return false, nil, nil
	}
	if err := m.notifier.LowStock(ctx, items); err != nil {
		// Notification delivery is best-effort; the scan itself succeeded.
		log.Printf("stock monitor: notification failed: %v", err)
		return false, items, nil
	}
	return true, items, nil
}
