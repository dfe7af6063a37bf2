// Package order provides the Order aggregate: a customer delivery with a
// value in rupees travelling along one Route.
//
// The package includes:
//   - Order: the aggregate root with its simulation outcome
//   - Status: the lifecycle pending -> assigned -> delivered, with cancelled as an exit
//   - RoutedOrder: an order paired with the route it travels on
//
// Key business rules:
//   - Order value must be positive and a route must be referenced
//   - Only pending orders can be assigned, and assignment records the delivery outcome
//   - Assigned and delivered orders always carry an outcome; pending and cancelled never do
package order
