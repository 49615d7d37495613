package notifications

import (
	"fmt"

	"munchies/internal/core/domain/model/order"
	"munchies/internal/realtime"
)

type templateKey struct {
	role   Role
	status order.Status
}

type templateFunc func(event realtime.OrderEvent) (title, body string)

// templateTable maps every (role, status) pair to its notification copy.
// Every reachable status must have an entry for every role; the exhaustiveness
// test walks the full cross product.
func templateTable() map[templateKey]templateFunc {
	return map[templateKey]templateFunc{
		{RoleCustomer, order.Pending}: func(realtime.OrderEvent) (string, string) {
			return "Order placed", "We sent your order to the restaurant. Hang tight!"
		},
		{RoleCustomer, order.Preparing}: func(realtime.OrderEvent) (string, string) {
			return "Order accepted", "The kitchen is preparing your order."
		},
		{RoleCustomer, order.Ready}: func(realtime.OrderEvent) (string, string) {
			return "Order ready", "Your order is packed and waiting for a courier."
		},
		{RoleCustomer, order.OutForDelivery}: func(realtime.OrderEvent) (string, string) {
			return "On the way", "Your courier picked up the order and is heading to you."
		},
		{RoleCustomer, order.Delivered}: func(realtime.OrderEvent) (string, string) {
			return "Delivered", "Enjoy your meal! Tap to rate your order."
		},
		{RoleCustomer, order.Canceled}: func(realtime.OrderEvent) (string, string) {
			return "Order canceled", "Your order was canceled. You have not been charged."
		},

		{RoleRestaurant, order.Pending}: func(e realtime.OrderEvent) (string, string) {
			return "New order", fmt.Sprintf("New order for %s. Accept it to start preparing.", formatCents(int64(e.TotalCents)))
		},
		{RoleRestaurant, order.Preparing}: func(realtime.OrderEvent) (string, string) {
			return "Order accepted", "The order is now in your preparation queue."
		},
		{RoleRestaurant, order.Ready}: func(realtime.OrderEvent) (string, string) {
			return "Marked ready", "The order is waiting for courier pickup."
		},
		{RoleRestaurant, order.OutForDelivery}: func(realtime.OrderEvent) (string, string) {
			return "Picked up", "A courier picked the order up."
		},
		{RoleRestaurant, order.Delivered}: func(realtime.OrderEvent) (string, string) {
			return "Delivered", "The order reached the customer."
		},
		{RoleRestaurant, order.Canceled}: func(realtime.OrderEvent) (string, string) {
			return "Order canceled", "The order was canceled. Stop preparing if you started."
		},

		{RoleCourier, order.Pending}: func(realtime.OrderEvent) (string, string) {
			return "Order incoming", "A new order was placed nearby. It may need a courier soon."
		},
		{RoleCourier, order.Preparing}: func(realtime.OrderEvent) (string, string) {
			return "Order in preparation", "A kitchen nearby started preparing an order."
		},
		{RoleCourier, order.Ready}: func(realtime.OrderEvent) (string, string) {
			return "Pickup available", "An order is packed and ready for pickup."
		},
		{RoleCourier, order.OutForDelivery}: func(realtime.OrderEvent) (string, string) {
			return "Delivery started", "You are on the clock. Head to the customer."
		},
		{RoleCourier, order.Delivered}: func(realtime.OrderEvent) (string, string) {
			return "Delivery complete", "Nice work! The delivery is done."
		},
		{RoleCourier, order.Canceled}: func(realtime.OrderEvent) (string, string) {
			return "Order canceled", "The order was canceled. No delivery needed."
		},
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// Render produces the payload for role about event. Fails only when the
// (role, status) pair has no template, which means the event or role is
// malformed.
func Render(role Role, event realtime.OrderEvent) (Payload, error) {
	if err := role.Validate(); err != nil {
		return Payload{}, err
	}
	if err := event.Status.Validate(); err != nil {
		return Payload{}, err
	}

	tmpl, ok := templateTable()[templateKey{role, event.Status}]
	if !ok {
		return Payload{}, fmt.Errorf("no notification template for role %q status %q", role, event.Status)
	}

	title, body := tmpl(event)

	data := map[string]string{
		"order_id":      event.OrderID.String(),
		"restaurant_id": event.RestaurantID.String(),
		"status":        event.Status.String(),
	}
	if event.CourierID != nil {
		data["courier_id"] = event.CourierID.String()
	}

	return Payload{
		Type:  fmt.Sprintf("%s_%s", role, event.Status),
		Title: title,
		Body:  body,
		Data:  data,
	}, nil
}
