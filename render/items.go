package render

import (
	"strings"

	"github.com/Drolfothesgnir/bbpost/bbcode"
)

// splitItems cuts the children of a list into items at the literal [*] markers.
// The content before the first marker is an item only when it is not blank.
// Blank nodes and surrounding white space of every item are dropped.
func splitItems[T bbcode.Text[T]](children []bbcode.Node[T]) [][]bbcode.Node[T] {
	var (
		items   [][]bbcode.Node[T]
		cur     []bbcode.Node[T]
		started bool
	)

	flush := func() {
		if started || !isBlank(cur) {
			items = append(items, trimItem(cur))
		}
		cur = nil
		started = true
	}

	for _, c := range children {
		if !c.IsText() {
			cur = append(cur, c)
			continue
		}

		p := c.Payload
		src := p.String()
		off := 0

		for {
			k := strings.Index(src[off:], bbcode.ListItemMarker)
			if k < 0 {
				break
			}

			if k > 0 {
				cur = append(cur, bbcode.NewText(p.Slice(off, off+k)))
			}
			flush()

			off += k + len(bbcode.ListItemMarker)
		}

		if off < len(src) {
			cur = append(cur, bbcode.NewText(p.Slice(off, len(src))))
		}
	}

	if started || !isBlank(cur) {
		items = append(items, trimItem(cur))
	}

	return items
}

func isBlank[T bbcode.Text[T]](nodes []bbcode.Node[T]) bool {
	for _, n := range nodes {
		if !n.IsEmptyText() {
			return false
		}
	}
	return true
}

func trimItem[T bbcode.Text[T]](nodes []bbcode.Node[T]) []bbcode.Node[T] {
	for len(nodes) > 0 && nodes[0].IsEmptyText() {
		nodes = nodes[1:]
	}
	for len(nodes) > 0 && nodes[len(nodes)-1].IsEmptyText() {
		nodes = nodes[:len(nodes)-1]
	}

	if len(nodes) == 0 {
		return nil
	}

	out := make([]bbcode.Node[T], len(nodes))
	copy(out, nodes)

	if first := out[0]; first.IsText() {
		s := first.Payload.String()
		start := len(s) - len(strings.TrimLeft(s, " \t\r\n"))
		out[0] = bbcode.NewText(first.Payload.Slice(start, len(s)))
	}

	if last := out[len(out)-1]; last.IsText() {
		s := last.Payload.String()
		end := len(strings.TrimRight(s, " \t\r\n"))
		out[len(out)-1] = bbcode.NewText(last.Payload.Slice(0, end))
	}

	return out
}
