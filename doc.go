// Package spineflow bends a mesh along a 3D spine threaded through page
// layout anchors and drives it from scroll progress.
//
// Each anchor rectangle marks one scroll screen. A [PathBuilder] maps the
// anchors into a centered, Y-up mesh space, pushes each one down by a
// synthetic spacing unit, and joins them into a [CurvePath]: a straight
// [Line] over every anchor and a [CubicBezier] bridging each pair. A
// [SpineFlow] binds a plane mesh to that spine, a [CurveFollower] tracks
// where the mesh sits, and a handful of secondary layers map the same
// progress onto dash offsets, opacity, scale and tints.
//
// # Quick start
//
// A [Coordinator] assembles everything from a [Layout]:
//
//	c, err := spineflow.NewCoordinator(spineflow.DefaultLayout(), spineflow.Config{})
//	if err != nil {
//		return err
//	}
//	// on scroll events:
//	c.OnScroll(scrollY / (scrollHeight - viewportHeight))
//	// once per rendered frame:
//	params, changed := c.Frame(0)
//
// Scroll events only set a target. [Coordinator.Frame] smooths it once and
// hands that single value to every consumer, so no layer ever reads a stale
// progress. When nothing is converging, Frame skips the geometry work.
//
// # Scene tree
//
// Components own [Node] values and the coordinator composes them into one
// tree rooted at [Coordinator.Root]: backdrops, the motion line, the flow
// mesh, and the follower carrying the ingredient sprites. Nodes hold spatial
// state only. Frontends walk the tree after each frame; see the render and
// snapshot packages.
//
// # Rebuilds
//
// [Coordinator.Rebuild] builds a complete new spine, flow and follower before
// releasing the old ones, and leaves the current scene untouched on error.
// When to rebuild (debouncing, thresholds) is up to the host.
//
// # Parameters
//
// Every frame's outputs are published as [Params] under stable names such as
// "pathOffset" and "dashOffset". An [Inspector] installed with
// [Coordinator.SetInspector] sees and may override them before they reach
// the scene.
package spineflow
