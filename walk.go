package hview

// nodeInfo is one entry of a tree enumeration.
type nodeInfo struct {
	Path string
	Kind NodeKind
}

// WalkPaths lists the full path of every node below the root of c,
// depth-first and pre-order: each child's path is reported before the
// contents of that child. Sibling order is the container's own iteration
// order. Containers are trees, not graphs, so the walk always terminates.
func WalkPaths(c Container) ([]string, error) {
	nodes, err := walkNodes(c, "")
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(nodes))
	for i, n := range nodes {
		paths[i] = n.Path
	}
	return paths, nil
}

func walkNodes(c Container, prefix string) ([]nodeInfo, error) {
	children, err := c.Children(prefix)
	if err != nil {
		return nil, err
	}
	var nodes []nodeInfo
	for _, child := range children {
		path := child.Name
		if prefix != "" {
			path = prefix + "/" + child.Name
		}
		nodes = append(nodes, nodeInfo{Path: path, Kind: child.Kind})
		if child.Kind == GroupNode {
			sub, err := walkNodes(c, path)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, sub...)
		}
	}
	return nodes, nil
}
