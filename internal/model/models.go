package model

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Tobacco{},
		&CatalogEvent{},
	}
}
