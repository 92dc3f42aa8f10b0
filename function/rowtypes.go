// Copyright © 2024 The compgraph authors. All rights reserved.

package function

// RowPredicate and friends give the generic function vocabulary above a
// name at the row-stream call sites that use it most: ops.Filter's
// condition, BinaryArithmetic's Operation formula, and the Mapper emit
// callback all read more plainly through these aliases than through the
// raw generic instantiation.
type (
	RowPredicate[T any]    = Predicate[T]
	RowFunction[T, R any]  = Function[T, R]
	RowConsumer[T any]     = Consumer[T]
)
