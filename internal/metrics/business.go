package metrics

// IncrementWorkspaceCreated increments workspace creation counter
func (m *Metrics) IncrementWorkspaceCreated() {
	m.safeExecute("IncrementWorkspaceCreated", func() {
		m.WorkspaceCreatedTotal.Inc()
	})
}

// IncrementCardAdded increments card addition counter
func (m *Metrics) IncrementCardAdded() {
	m.safeExecute("IncrementCardAdded", func() {
		m.CardAddedTotal.Inc()
	})
}

// IncrementCardMoved increments card move counter
func (m *Metrics) IncrementCardMoved() {
	m.safeExecute("IncrementCardMoved", func() {
		m.CardMovedTotal.Inc()
	})
}

// IncrementCardDeleted increments card deletion counter
func (m *Metrics) IncrementCardDeleted() {
	m.safeExecute("IncrementCardDeleted", func() {
		m.CardDeletedTotal.Inc()
	})
}

// SetWorkspacesTotal sets total workspaces gauge
func (m *Metrics) SetWorkspacesTotal(count int64) {
	m.safeExecute("SetWorkspacesTotal", func() {
		m.WorkspacesTotal.Set(float64(count))
	})
}

// IncrementBroadcastSent increments delivered realtime event counter
func (m *Metrics) IncrementBroadcastSent(event string) {
	m.safeExecute("IncrementBroadcastSent", func() {
		m.BroadcastsSentTotal.WithLabelValues(event).Inc()
	})
}

// IncrementBroadcastDropped increments dropped realtime event counter
func (m *Metrics) IncrementBroadcastDropped() {
	m.safeExecute("IncrementBroadcastDropped", func() {
		m.BroadcastsDroppedTotal.Inc()
	})
}

// IncrementCatalogCacheHit increments catalog cache hit counter
func (m *Metrics) IncrementCatalogCacheHit() {
	m.safeExecute("IncrementCatalogCacheHit", func() {
		m.CatalogCacheHitsTotal.Inc()
	})
}

// IncrementCatalogCacheMiss increments catalog cache miss counter
func (m *Metrics) IncrementCatalogCacheMiss() {
	m.safeExecute("IncrementCatalogCacheMiss", func() {
		m.CatalogCacheMissTotal.Inc()
	})
}
