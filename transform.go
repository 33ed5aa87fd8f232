package spineflow

// Composition order for a node's local transform:
//
//	Scale -> Rotate -> Translate(Position)
//
// World transforms compose parent * local. Non-uniform parent scale is applied
// component-wise before the parent rotation, so sheared frames are not
// representable; no component in this package needs them.

// UpdateWorldTransforms recomputes world transforms for n and its subtree.
// Call it on the root once per frame, after components have written their
// local transforms.
func (n *Node) UpdateWorldTransforms() {
	updateWorldTransform(n, Vec3{}, QuatIdentity, Vec3{1, 1, 1}, 1, false)
}

// updateWorldTransform recomputes a node's world transform and alpha.
// parentRecomputed forces recomputation of clean children of a dirty parent.
func updateWorldTransform(n *Node, pPos Vec3, pRot Quat, pScale Vec3, pAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldPosition = pPos.Add(pRot.Rotate(n.Position.Mul(pScale)))
		n.worldRotation = pRot.Mul(n.Rotation).Normalize()
		n.worldScale = pScale.Mul(n.Scale)
		n.worldAlpha = pAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldPosition, n.worldRotation, n.worldScale, n.worldAlpha, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the local position and marks the node dirty.
func (n *Node) SetPosition(p Vec3) {
	n.Position = p
	n.transformDirty = true
}

// SetRotation sets the local rotation and marks the node dirty.
func (n *Node) SetRotation(q Quat) {
	n.Rotation = q
	n.transformDirty = true
}

// SetScale sets the local scale and marks the node dirty.
func (n *Node) SetScale(s Vec3) {
	n.Scale = s
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty forces recomputation on the next UpdateWorldTransforms. Useful
// after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- World-space accessors (valid after UpdateWorldTransforms) ---

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 { return n.worldPosition }

// WorldRotation returns the accumulated rotation.
func (n *Node) WorldRotation() Quat { return n.worldRotation }

// WorldScale returns the accumulated scale.
func (n *Node) WorldScale() Vec3 { return n.worldScale }

// WorldAlpha returns the accumulated alpha.
func (n *Node) WorldAlpha() float64 { return n.worldAlpha }

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return n.worldPosition.Add(n.worldRotation.Rotate(p.Mul(n.worldScale)))
}
