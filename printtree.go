package wad

import (
	"fmt"
	"io"
)

// subSectorFlag marks a node child that is a subsector rather than a node.
const subSectorFlag = 0x8000

type BoundBox struct {
	Top, Bottom, Left, Right int16
}

// Node is an internal node of the BSP tree.
type Node struct {
	X, Y           int16 // Partition line start
	DX, DY         int16 // Partition line direction
	BBoxR, BBoxL   BoundBox
	ChildR, ChildL uint16
}

// Child returns the child index for a side (0 right, 1 left) and whether it
// refers to a subsector.
func (n *Node) Child(side int) (index int, isSubSector bool) {
	child := n.ChildR
	if side != 0 {
		child = n.ChildL
	}
	if child&subSectorFlag != 0 {
		return int(child &^ subSectorFlag), true
	}
	return int(child), false
}

// Return bound box for side
func (n *Node) BoundBox(side int) *BoundBox {
	if side == 0 {
		return &n.BBoxR
	}
	return &n.BBoxL
}

// RootNode returns the index of the BSP root, or -1 for a level without nodes.
func (l *Level) RootNode() int {
	return len(l.Nodes) - 1
}

// FprintTree writes the level's BSP tree to w, one member per line.
func FprintTree(w io.Writer, l *Level) error {
	// A well-formed tree reaches every node once
	visited := make(map[int]bool, len(l.Nodes))
	var printRecursive func(int, bool, string) error
	printRecursive = func(index int, isSubSector bool, prefix string) error {
		if isSubSector {
			ss, ok := l.SubSector(index)
			if !ok {
				_, err := fmt.Fprintf(w, "%s- subsector %d (missing)\n", prefix, index)
				return err
			}
			_, err := fmt.Fprintf(w, "%s- subsector %d: %d segs from %d\n", prefix, index, ss.NumSegs, ss.FirstSeg)
			return err
		}
		if index < 0 || index >= len(l.Nodes) {
			_, err := fmt.Fprintf(w, "%s- node %d (missing)\n", prefix, index)
			return err
		}
		if visited[index] {
			_, err := fmt.Fprintf(w, "%s- node %d (cycle)\n", prefix, index)
			return err
		}
		visited[index] = true
		n := &l.Nodes[index]
		if _, err := fmt.Fprintf(w, "%s- node %d: (%d,%d) +(%d,%d)\n", prefix, index, n.X, n.Y, n.DX, n.DY); err != nil {
			return err
		}
		for side := range 2 {
			child, leaf := n.Child(side)
			if err := printRecursive(child, leaf, prefix+"   "); err != nil {
				return err
			}
		}
		return nil
	}

	// A level with a single subsector has no nodes
	if len(l.Nodes) == 0 {
		if len(l.SubSectors) == 0 {
			return nil
		}
		return printRecursive(0, true, "")
	}
	return printRecursive(l.RootNode(), false, "")
}
