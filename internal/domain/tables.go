package domain

var Tables = []interface{}{
	// Identity
	&User{},
	&AuditLog{},
	// Catalog
	&Supplier{},
	&Product{},
	&Purchase{},
	// Cart
	&Cart{},
	&CartItem{},
	// Orders
	&Order{},
	&OrderItem{},
}
