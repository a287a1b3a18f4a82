package domain

// DealerForest is an adjacency view over all dealers, loaded once per operation.
type DealerForest struct {
	byID     map[int64]*Dealer
	children map[int64][]*Dealer
}

// NewDealerForest indexes dealers by id and by parent. Children keep the input order.
func NewDealerForest(dealers []*Dealer) *DealerForest {
	f := &DealerForest{
		byID:     make(map[int64]*Dealer, len(dealers)),
		children: make(map[int64][]*Dealer),
	}
	for _, d := range dealers {
		f.byID[d.ID] = d
	}
	for _, d := range dealers {
		if d.ParentID != nil {
			f.children[*d.ParentID] = append(f.children[*d.ParentID], d)
		}
	}
	return f
}

func (f *DealerForest) Get(id int64) (*Dealer, bool) {
	d, ok := f.byID[id]
	return d, ok
}

func (f *DealerForest) Len() int {
	return len(f.byID)
}

// Ancestors returns up to maxLevels ancestors of dealerID, nearest first.
// The walk stops at a root, at a dangling parent reference, or when an id repeats.
func (f *DealerForest) Ancestors(dealerID int64, maxLevels int) []*Dealer {
	start, ok := f.byID[dealerID]
	if !ok || maxLevels <= 0 {
		return nil
	}

	chain := make([]*Dealer, 0, maxLevels)
	visited := map[int64]struct{}{start.ID: {}}
	current := start

	for i := 0; i < maxLevels && current.ParentID != nil; i++ {
		parent, ok := f.byID[*current.ParentID]
		if !ok {
			break
		}
		if _, seen := visited[parent.ID]; seen {
			break
		}
		visited[parent.ID] = struct{}{}
		chain = append(chain, parent)
		current = parent
	}

	return chain
}

// Subtree materialises the tree rooted at rootID down to maxDepth levels (root is depth 1)
// and fills the rolled-up totals bottom-up. It fails with ErrTreeTooDeep when more than
// maxNodes nodes would be built or a cycle is found.
func (f *DealerForest) Subtree(rootID int64, maxDepth, maxNodes int) (*DealerNode, error) {
	root, ok := f.byID[rootID]
	if !ok {
		return nil, ErrDealerNotFound
	}

	rootNode := &DealerNode{Dealer: root, Depth: 1}
	// order is BFS order, so walking it backwards visits children before parents
	order := []*DealerNode{rootNode}
	visited := map[int64]struct{}{root.ID: {}}

	for i := 0; i < len(order); i++ {
		node := order[i]
		if node.Depth >= maxDepth {
			continue
		}
		for _, child := range f.children[node.Dealer.ID] {
			if _, seen := visited[child.ID]; seen {
				return nil, ErrTreeTooDeep
			}
			if len(order) >= maxNodes {
				return nil, ErrTreeTooDeep
			}
			visited[child.ID] = struct{}{}
			childNode := &DealerNode{Dealer: child, Depth: node.Depth + 1}
			node.Children = append(node.Children, childNode)
			order = append(order, childNode)
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		node.TotalDescendantCount = 1
		node.TotalCommissionRollup = node.Dealer.Commission
		for _, c := range node.Children {
			node.TotalDescendantCount += c.TotalDescendantCount
			node.TotalCommissionRollup = node.TotalCommissionRollup.Add(c.TotalCommissionRollup)
		}
	}

	return rootNode, nil
}

// Flatten returns the nodes of the tree in depth-first pre-order.
func (n *DealerNode) Flatten() []*DealerNode {
	out := make([]*DealerNode, 0, n.TotalDescendantCount)
	stack := []*DealerNode{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, top)
		for i := len(top.Children) - 1; i >= 0; i-- {
			stack = append(stack, top.Children[i])
		}
	}
	return out
}
