package btsp

// llist is a minimal singly linked list used as the tour representation
// of the randomized insertion heuristic, where nodes are inserted between
// arbitrary neighbors all the time. The edge from the tail back to the
// head closes the cycle.
type llistItem struct {
	value int
	next  *llistItem
}

type llist struct {
	head *llistItem
	tail *llistItem
	size int
}

func (l *llist) insertTail(value int) *llistItem {
	item := &llistItem{value: value}
	if l.tail == nil {
		l.head = item
	} else {
		l.tail.next = item
	}
	l.tail = item
	l.size++
	return item
}

// insertAfter places value directly behind item. A nil item inserts at
// the head.
func (l *llist) insertAfter(item *llistItem, value int) *llistItem {
	if item == nil {
		ins := &llistItem{value: value, next: l.head}
		l.head = ins
		if l.tail == nil {
			l.tail = ins
		}
		l.size++
		return ins
	}
	ins := &llistItem{value: value, next: item.next}
	item.next = ins
	if l.tail == item {
		l.tail = ins
	}
	l.size++
	return ins
}

// toArray writes the list values into out, which must hold size entries.
func (l *llist) toArray(out []int) {
	i := 0
	for item := l.head; item != nil; item = item.next {
		out[i] = item.value
		i++
	}
}

func (l *llist) reset() {
	l.head = nil
	l.tail = nil
	l.size = 0
}

// swap exchanges the contents of two lists in O(1), used to promote a
// candidate tour over the current one without copying.
func (l *llist) swap(other *llist) {
	l.head, other.head = other.head, l.head
	l.tail, other.tail = other.tail, l.tail
	l.size, other.size = other.size, l.size
}
