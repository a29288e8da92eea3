package service

import (
	"testing"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
)

func TestResolveReturnStatus(t *testing.T) {
	cases := []struct {
		name     string
		items    []models.OrderItem
		current  string
		expected string
	}{
		{
			name:     "no items resolves to completed",
			items:    nil,
			current:  constants.OrderStatusPartiallyReturned,
			expected: constants.OrderStatusCompleted,
		},
		{
			name: "nothing returned keeps completed",
			items: []models.OrderItem{
				{Quantity: 2, QtyReturned: 0},
			},
			current:  constants.OrderStatusCompleted,
			expected: constants.OrderStatusCompleted,
		},
		{
			name: "nothing returned restores from partially returned",
			items: []models.OrderItem{
				{Quantity: 2, QtyReturned: 0},
			},
			current:  constants.OrderStatusPartiallyReturned,
			expected: constants.OrderStatusCompleted,
		},
		{
			name: "some returned",
			items: []models.OrderItem{
				{Quantity: 2, QtyReturned: 1},
				{Quantity: 1, QtyReturned: 0},
			},
			current:  constants.OrderStatusCompleted,
			expected: constants.OrderStatusPartiallyReturned,
		},
		{
			name: "all returned",
			items: []models.OrderItem{
				{Quantity: 2, QtyReturned: 2},
				{Quantity: 1, QtyReturned: 1},
			},
			current:  constants.OrderStatusPartiallyReturned,
			expected: constants.OrderStatusFullyReturned,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveReturnStatus(tc.items, tc.current)
			if got != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}
