package analytics_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegmart/vegmart/internal/domain"
)

func TestExportOrdersCSV(t *testing.T) {
	f := newFixture(t)
	f.order(t, seedOrder{status: domain.OrderStatusCompleted, total: 350, items: []domain.OrderItem{item(1, 2, 150)}})
	f.order(t, seedOrder{status: domain.OrderStatusCancelled, total: 120})

	var buf bytes.Buffer
	require.NoError(t, f.analytics.ExportOrdersCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Header plus one row per order, cancelled included.
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "order_id")
	assert.Contains(t, buf.String(), "350.00")
	assert.Contains(t, buf.String(), "CANCELLED")
}

func TestExportOrdersCSVEmpty(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.analytics.ExportOrdersCSV(context.Background(), &buf))
	assert.Contains(t, buf.String(), "order_id")
}
