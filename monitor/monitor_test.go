package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"pizza-delivery-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScanner struct {
	mock.Mock
}

func (m *mockScanner) ScanLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.InventoryItem)
	return items, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) LowStock(ctx context.Context, items []models.InventoryItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *mockNotifier) OrderStatus(ctx context.Context, email, orderNumber string, status models.OrderStatus) error {
	args := m.Called(ctx, email, orderNumber, status)
	return args.Error(0)
}

func TestRunScanNotifies(t *testing.T) {
	scanner := &mockScanner{}
	notifier := &mockNotifier{}
	m := New(scanner, notifier, time.Hour, time.Minute)

	low := []models.InventoryItem{{Name: "Olives", CurrentStock: 2, Threshold: 6}}
	scanner.On("ScanLowStock", mock.Anything).Return(low, nil)
	notifier.On("LowStock", mock.Anything, low).Return(nil)

	notified, items, err := m.RunScan(context.Background())
	require.NoError(t, err)
	assert.True(t, notified)
	assert.Equal(t, low, items)
}

func TestRunScanNothingLow(t *testing.T) {
	scanner := &mockScanner{}
	notifier := &mockNotifier{}
	m := New(scanner, notifier, time.Hour, time.Minute)

	scanner.On("ScanLowStock", mock.Anything).Return([]models.InventoryItem{}, nil)

	notified, items, err := m.RunScan(context.Background())
	require.NoError(t, err)
	assert.False(t, notified)
	assert.Empty(t, items)
	notifier.AssertNotCalled(t, "LowStock", mock.Anything, mock.Anything)
}

func TestRunScanRenotifiesWhileBreachPersists(t *testing.T) {
	scanner := &mockScanner{}
	notifier := &mockNotifier{}
	m := New(scanner, notifier, time.Hour, time.Minute)

	low := []models.InventoryItem{{Name: "Pepperoni", CurrentStock: 1, Threshold: 6}}
	scanner.On("ScanLowStock", mock.Anything).Return(low, nil)
	notifier.On("LowStock", mock.Anything, low).Return(nil)

	// no suppression window: two back-to-back runs notify twice
	for i := 0; i < 2; i++ {
		notified, _, err := m.RunScan(context.Background())
		require.NoError(t, err)
		assert.True(t, notified)
	}
	notifier.AssertNumberOfCalls(t, "LowStock", 2)
}

func TestRunScanScanFailure(t *testing.T) {
	scanner := &mockScanner{}
	notifier := &mockNotifier{}
	m := New(scanner, notifier, time.Hour, time.Minute)

	scanner.On("ScanLowStock", mock.Anything).Return(nil, errors.New("storage unreachable"))

	notified, items, err := m.RunScan(context.Background())
	assert.Error(t, err)
	assert.False(t, notified)
	assert.Nil(t, items)
	notifier.AssertNotCalled(t, "LowStock", mock.Anything, mock.Anything)
}

func TestRunScanNotificationFailureIsNotFatal(t *testing.T) {
	scanner := &mockScanner{}
	notifier := &mockNotifier{}
	m := New(scanner, notifier, time.Hour, time.Minute)

	low := []models.InventoryItem{{Name: "Olives"}}
	scanner.On("ScanLowStock", mock.Anything).Return(low, nil)
	notifier.On("LowStock", mock.Anything, low).Return(errors.New("smtp down"))

	notified, items, err := m.RunScan(context.Background())
	require.NoError(t, err)
	assert.False(t, notified)
	assert.Equal(t, low, items)
}

func TestStartStopsOnCancel(t *testing.T) {
	scanner := &mockScanner{}
	notifier := &mockNotifier{}
	scanner.On("ScanLowStock", mock.Anything).Return([]models.InventoryItem{}, nil)

	m := New(scanner, notifier, 10*time.Millisecond, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)

	time.Sleep(35 * time.Millisecond)
	cancel()
	m.Stop()

	scanner.AssertCalled(t, "ScanLowStock", mock.Anything)
}
