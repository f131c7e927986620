package scene

// LayerCollection is the view-layer node for one collection. Excluded
// collections (and everything beneath them) are hidden from the view.
type LayerCollection struct {
	Collection *Collection
	Exclude    bool

	children []*LayerCollection
}

// Children returns the direct child layer nodes.
func (lc *LayerCollection) Children() []*LayerCollection {
	out := make([]*LayerCollection, len(lc.children))
	copy(out, lc.children)
	return out
}

// FindLayerCollection searches the layer tree rooted at lc, depth-first,
// for the node whose collection has the given name. Returns nil when the
// name is not present in the layer.
func FindLayerCollection(lc *LayerCollection, name string) *LayerCollection {
	if lc == nil {
		return nil
	}
	if lc.Collection.Name == name {
		return lc
	}
	for _, child := range lc.children {
		if found := FindLayerCollection(child, name); found != nil {
			return found
		}
	}
	return nil
}

// syncLayer rebuilds the layer subtree for col, preserving exclusion flags
// of collections that are still present.
func syncLayer(col *Collection, exclude map[*Collection]bool) *LayerCollection {
	lc := &LayerCollection{
		Collection: col,
		Exclude:    exclude[col],
	}
	for _, child := range col.children {
		lc.children = append(lc.children, syncLayer(child, exclude))
	}
	return lc
}
