/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package pattern

// inlineEdges is the number of direct child slots tried before falling
// back to the sparse map. Subscription sets are usually narrow (a
// handful of topic prefixes per socket), so most nodes never need the
// map at all.
const inlineEdges = 8

type edge struct {
	b    byte
	node *subnode
}

type subnode struct {
	inline   [inlineEdges]edge
	inlineN  int
	children map[byte]*subnode
	refcount int
}

func (n *subnode) child(b byte) *subnode {
	for i := 0; i < n.inlineN; i++ {
		if n.inline[i].b == b {
			return n.inline[i].node
		}
	}
	if n.children != nil {
		return n.children[b]
	}
	return nil
}

func (n *subnode) childOrCreate(b byte) *subnode {
	if c := n.child(b); c != nil {
		return c
	}
	c := &subnode{}
	if n.inlineN < inlineEdges {
		n.inline[n.inlineN] = edge{b: b, node: c}
		n.inlineN++
		return c
	}
	if n.children == nil {
		n.children = make(map[byte]*subnode)
	}
	n.children[b] = c
	return c
}

func (n *subnode) removeChild(b byte) {
	for i := 0; i < n.inlineN; i++ {
		if n.inline[i].b == b {
			n.inline[i] = n.inline[n.inlineN-1]
			n.inlineN--
			return
		}
	}
	if n.children != nil {
		delete(n.children, b)
	}
}

// SubTrie holds the set of subscribed topic prefixes for a SUB or BUS
// pipe. Subscriptions are refcounted so the same prefix can be subscribed
// through more than one call (e.g. re-subscribe on reconnect) without
// losing the original subscription when one of them unsubscribes.
type SubTrie struct {
	root *subnode
}

func NewSubTrie() *SubTrie {
	return &SubTrie{root: &subnode{}}
}

// Subscribe adds topic to the subscribed set, incrementing its refcount
// if already present.
func (t *SubTrie) Subscribe(topic []byte) {
	n := t.root
	for _, b := range topic {
		n = n.childOrCreate(b)
	}
	n.refcount++
}

// Unsubscribe decrements topic's refcount, removing the path once it
// reaches zero. Unsubscribing a topic that was never subscribed is a
// no-op.
func (t *SubTrie) Unsubscribe(topic []byte) {
	path := make([]*subnode, 0, len(topic)+1)
	path = append(path, t.root)

	n := t.root
	for _, b := range topic {
		c := n.child(b)
		if c == nil {
			return
		}
		path = append(path, c)
		n = c
	}

	if n.refcount == 0 {
		return
	}
	n.refcount--
	if n.refcount > 0 {
		return
	}

	for i := len(topic); i > 0; i-- {
		node := path[i]
		if node.refcount > 0 || node.inlineN > 0 || len(node.children) > 0 {
			break
		}
		path[i-1].removeChild(topic[i-1])
	}
}

// Match reports whether data starts with any currently subscribed topic,
// including the zero-length subscription (subscribe-to-everything). The
// walk is O(len of the shortest matching prefix).
func (t *SubTrie) Match(data []byte) bool {
	n := t.root
	if n.refcount > 0 {
		return true
	}
	for _, b := range data {
		n = n.child(b)
		if n == nil {
			return false
		}
		if n.refcount > 0 {
			return true
		}
	}
	return false
}
