package store

import (
	"context"
	"math"
	"testing"
)

func TestCreateOrderConsumesCart(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "ana@example.com")
	adobo := env.addProduct("Chicken Adobo", "TANGHALIAN", 9.00)
	turon := env.addProduct("Turon", "MERIENDA", 2.50)

	cart := NewCart(env.client)
	orders := NewOrders(env.client)
	ctx := context.Background()

	cart.AddItem(ctx, adobo.ID, 1)
	cart.AddItem(ctx, turon.ID, 4)

	orders.CreateOrder(ctx)
	if orders.Err() != "" {
		t.Fatalf("unexpected error: %q", orders.Err())
	}

	history := orders.Orders()
	if len(history) != 1 {
		t.Fatalf("got %d orders, want 1", len(history))
	}
	order := history[0]
	if order.Status != "Pending" {
		t.Fatalf("status = %q, want Pending", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("got %d order items, want 2", len(order.Items))
	}
	if math.Abs(order.TotalAmount-19.00) > 1e-9 {
		t.Fatalf("total = %f, want 19.00", order.TotalAmount)
	}

	cart.FetchCart(ctx)
	if len(cart.Items()) != 0 {
		t.Fatalf("expected cart emptied by order, got %+v", cart.Items())
	}
}

func TestCreateOrderEmptyCartRecordsError(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "ana@example.com")

	orders := NewOrders(env.client)
	orders.CreateOrder(context.Background())

	if orders.Err() != "Your cart is empty" {
		t.Fatalf("Err() = %q, want Your cart is empty", orders.Err())
	}
	if len(orders.Orders()) != 0 {
		t.Fatalf("expected empty history, got %+v", orders.Orders())
	}
}

func TestOrderDetail(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "ana@example.com")
	adobo := env.addProduct("Chicken Adobo", "TANGHALIAN", 9.00)

	cart := NewCart(env.client)
	orders := NewOrders(env.client)
	ctx := context.Background()

	cart.AddItem(ctx, adobo.ID, 2)
	orders.CreateOrder(ctx)
	created := orders.Orders()[0]

	order := orders.OrderDetail(ctx, created.ID)
	if order == nil {
		t.Fatalf("OrderDetail returned nil, err %q", orders.Err())
	}
	if order.ID != created.ID || len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order detail: %+v", order)
	}

	if missing := orders.OrderDetail(ctx, 99999); missing != nil {
		t.Fatalf("expected nil for unknown order, got %+v", missing)
	}
	if orders.Err() != "Order not found" {
		t.Fatalf("Err() = %q, want Order not found", orders.Err())
	}
}

func TestFetchOrdersNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "ana@example.com")
	adobo := env.addProduct("Chicken Adobo", "TANGHALIAN", 9.00)

	cart := NewCart(env.client)
	orders := NewOrders(env.client)
	ctx := context.Background()

	cart.AddItem(ctx, adobo.ID, 1)
	orders.CreateOrder(ctx)
	first := orders.Orders()[0]

	cart.AddItem(ctx, adobo.ID, 2)
	orders.CreateOrder(ctx)

	orders.FetchOrders(ctx)
	history := orders.Orders()
	if len(history) != 2 {
		t.Fatalf("got %d orders, want 2", len(history))
	}
	if history[1].ID != first.ID {
		t.Fatalf("expected the earlier order last, got ids %d, %d", history[0].ID, history[1].ID)
	}
	if history[0].ID == first.ID {
		t.Fatal("expected the newest order first")
	}
}
