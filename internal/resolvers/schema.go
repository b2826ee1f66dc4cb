package resolvers

import (
	schema "github.com/shopmesh/gateway/internal/schema"
)

// SDL is the gateway's graph surface. Statuses stay String so order and
// payment state values round-trip byte-equal with the owning service. The
// raw shipping address structure is deliberately absent: address is its
// one-line projection.
const SDL = `
schema {
  query: Query
  mutation: Mutation
}

type Query {
  user(id: ID!): User
  product(id: ID!): Product
  products(category: String, minPrice: Float, maxPrice: Float, search: String, limit: Int = 20): [Product!]
  order(id: ID!): Order
  userOrders(userId: ID!): [Order!]
}

type Mutation {
  createOrder(userId: ID!, items: [OrderItemInput!]!, shippingAddress: AddressInput!, paymentMethod: String = "card"): Order
}

type Product {
  id: ID!
  name: String!
  description: String
  price: Float!
  category: String!
  stock: Int!
  imageUrl: String
  createdAt: String!
  updatedAt: String!
}

type OrderItem {
  productId: ID!
  quantity: Int!
  price: Float!
  name: String!
  product: Product
}

type Order {
  id: ID!
  userId: ID!
  items: [OrderItem!]!
  totalAmount: Float!
  status: String!
  paymentStatus: String!
  address: String
  paymentMethod: String!
  trackingNumber: String
  notes: String
  createdAt: String!
  updatedAt: String!
}

type User {
  id: ID!
  username: String!
  email: String!
  fullName: String
  createdAt: String!
  updatedAt: String!
  orders: [Order!]
}

input OrderItemInput {
  productId: ID!
  quantity: Int!
  price: Float!
  name: String!
}

input AddressInput {
  street: String
  city: String
  state: String
  country: String
  zipCode: String
}
`

// NewSchema builds the executable schema registry from the SDL.
func NewSchema() (*schema.Schema, error) {
	return schema.BuildFromSDL(SDL)
}
